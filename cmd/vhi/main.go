// Command vhi reconstructs a plausible version-history tree from a set of
// unordered directory or file snapshots of the same project.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vhi:", err)
		os.Exit(1)
	}
}
