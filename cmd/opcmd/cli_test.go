// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"testing"

	"github.com/opcmd/opcmd/internal/testutil"
)

const trainYAML = `args: [python, train.py, --cfg, "${run_dir}/cfg.yaml", __flag_args__]
env:
  MODE: train
flags:
  learning_rate:
    arg-name: lr
    env-name: LR
  debug:
    arg-switch: true
  seed:
    arg-skip: true
`

// runCLI executes the root command with args against an isolated config
// directory and returns what it wrote to stdout and stderr.
func runCLI(t *testing.T, configDir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	if configDir == "" {
		configDir = t.TempDir()
	}
	var out, errOut bytes.Buffer
	app := NewApp(Dependencies{ConfigDir: configDir, Stdout: &out, Stderr: &errOut})
	root := NewRootCommand(app)
	root.SetArgs(args)
	err = root.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

// writeDefinitions creates a search directory holding the given files.
func writeDefinitions(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		testutil.WriteFile(t, dir, name, content)
	}
	return dir
}
