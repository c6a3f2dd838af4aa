// SPDX-License-Identifier: MPL-2.0

// Package opcmd compiles an operation's command definition into the argument
// vector and environment used to launch it.
//
// A Definition holds an argument template, an environment template and
// per-parameter FlagOverride rules. Generate combines it with runtime flag
// values and resolve parameters:
//
//	def, err := opcmd.FromRecord(opcmd.Record{
//	    "args": []any{"python", "train.py", "--data", "${data_dir}", opcmd.FlagArgsMarker},
//	    "env":  map[string]any{"MODE": "train"},
//	    "flags": map[string]any{
//	        "verbose": map[string]any{"arg-switch": true},
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	res, err := opcmd.Generate(def,
//	    map[string]any{"lr": 0.1, "verbose": true},
//	    map[string]any{"data_dir": "/data"},
//	)
//	// res.Args: [python train.py --data /data --lr 0.1 --verbose]
//	// res.Env:  MODE=train FLAG_LR=0.1 FLAG_VERBOSE=true
//
// Flag arguments are emitted in lexicographic order of parameter name. A flag
// whose --name already appears as a literal before the marker is dropped and
// reported as a Warning matching ErrShadowedFlag. Generation has no side
// effects; a Definition may be shared between goroutines.
package opcmd
