// SPDX-License-Identifier: MPL-2.0

package main

import cmd "dtinspect/cmd/dtinspect"

func main() {
	cmd.Execute()
}
