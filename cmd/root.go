// Package cmd wires the codebook CLI.
package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "codebook",
	Short:         "Build literate tutorials that generate real code",
	Long:          `Codebook runs the code-generation directives embedded in tutorial chapters, accumulating each generated file's fragments and keeping every printed listing consistent with the file on disk.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
