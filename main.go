// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import "github.com/gsub-org/gsub/cmd"

func main() {
	cmd.Execute()
}
