// Command llmcc is the external CLI host for the core engine (spec.md §6):
// it resolves file paths, builds a CompileCtxt, runs the pipeline, and
// prints the requested DOT artifact. The core itself never imports this
// package.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "llmcc",
	Short: "Multi-language static-analysis engine producing ranked dependency graphs",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
