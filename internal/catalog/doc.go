// SPDX-License-Identifier: MPL-2.0

// Package catalog locates operation definitions by name along an ordered
// search path of directories.
//
// A name such as "train" matches the first of train.cue, train.yaml,
// train.yml, train.toml, train.json and train.jsonc found in the earliest
// directory that has one. SearchPath values are immutable; Prepend and Append
// return new values.
package catalog
