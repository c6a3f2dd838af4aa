// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/opcmd/opcmd/cmd/opcmd"

func main() {
	cmd.Execute()
}
