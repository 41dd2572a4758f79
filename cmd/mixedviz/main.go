// SPDX-License-Identifier: MIT

// Command mixedviz prints random-effect diagnostics (caterpillar and
// shrinkage tables) for a simulated linear mixed model.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
