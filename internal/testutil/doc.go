// SPDX-License-Identifier: MPL-2.0

// Package testutil provides fixture helpers shared by opcmd tests: writing
// definition and config files into temporary directories and pointing the
// process at a throwaway home directory.
package testutil
