package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/codebook/internal/book"
	"github.com/agentic-research/codebook/internal/fragment"
)

var stateQuery string

var stateCmd = &cobra.Command{
	Use:   "state [book-dir]",
	Short: "Dry-run the book in memory and dump the accumulated fragment state as JSON",
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

		// Nothing touches disk: both the generated project and the
		// rendered markdown land in memory.
		b := book.NewBuilder(root, m, memfs.New(), memfs.New())
		if err := b.Build(); err != nil {
			return err
		}

		dump := stateDump(b.Engine().Store())
		if stateQuery != "" {
			x, err := jp.ParseString(stateQuery)
			if err != nil {
				return fmt.Errorf("invalid jsonpath %q: %w", stateQuery, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(x.Get(dump), 2))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(dump, 2))
		return nil
	},
}

// stateDump flattens the registry into plain maps for JSON output:
// file path -> section name -> fragment texts in insertion order.
func stateDump(st *fragment.Store) map[string]any {
	files := make(map[string]any)
	for _, path := range st.Paths() {
		fs := st.Get(path)
		sections := make(map[string]any)
		for _, s := range fragment.Canonical {
			frags := fs.Section(s)
			if len(frags) == 0 {
				continue
			}
			texts := make([]any, len(frags))
			for i, f := range frags {
				texts[i] = string(f)
			}
			sections[string(s)] = texts
		}
		files[path] = sections
	}
	return map[string]any{"files": files}
}

func init() {
	stateCmd.Flags().StringVar(&stateQuery, "query", "", "JSONPath filter over the state dump")
	rootCmd.AddCommand(stateCmd)
}
