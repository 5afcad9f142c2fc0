// Package main implements the dolphinn CLI: a cobra command tree that
// loads a reference pointset, builds an in-memory hypercube index, and
// runs radius/nearest-neighbor queries or a brute-force recall comparison
// against it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dolphinn",
	Short: "Hamming-hypercube approximate nearest-neighbor search",
	Long: `dolphinn builds a randomized Hamming-hypercube embedding of a fixed
reference pointset and answers radius and nearest-neighbor queries against
it with a bounded candidate-examination budget.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
