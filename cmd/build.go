package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/codebook/internal/book"
)

var buildCmd = &cobra.Command{
	Use:   "build [book-dir]",
	Short: "Run every chapter's directives and write the generated project and rendered markdown",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		m, err := book.LoadManifest(filepath.Join(root, book.ManifestName))
		if err != nil {
			return err
		}

		projectFS := osfs.New(filepath.Join(root, m.Build.Project))
		outputFS := osfs.New(filepath.Join(root, m.Build.Output))
		b := book.NewBuilder(root, m, projectFS, outputFS)

		ok := color.New(color.FgGreen).Sprint("✓")
		b.Progress = func(chapter string, directives int) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d directives)\n", ok, chapter, directives)
		}

		if err := b.Build(); err != nil {
			return err
		}

		title := m.Book.Title
		if title == "" {
			title = root
		}
		fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", color.New(color.Bold).Sprint(title))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
