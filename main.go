// SPDX-License-Identifier: MPL-2.0

// pomctl manages Maven project descriptors from the command line.
package main

import cmd "github.com/pomctl/pomctl/cmd/pomctl"

func main() {
	cmd.Execute()
}
