// Package book assembles a tutorial: it loads the manifest, runs every
// chapter's directives through one shared engine, and writes both the
// generated project files and the processed chapter markdown.
package book

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	billy "github.com/go-git/go-billy/v5"

	"github.com/agentic-research/codebook/internal/engine"
	"github.com/agentic-research/codebook/internal/fragment"
	"github.com/agentic-research/codebook/internal/writeback"
)

// Builder runs one book build. Chapters are processed in sorted filename
// order against a single engine, so state accumulates across chapters the
// same way it accumulates across steps.
type Builder struct {
	root     string
	manifest *Manifest
	eng      *engine.Engine
	output   *writeback.Writer

	// Progress, when set, is called after each chapter completes.
	Progress func(chapter string, directives int)
}

// NewBuilder wires a builder for the book rooted at root. Generated
// project files go to projectFS and processed markdown to outputFS; both
// are billy filesystems so builds can target disk or memory.
func NewBuilder(root string, m *Manifest, projectFS, outputFS billy.Filesystem) *Builder {
	project := writeback.NewWriter(projectFS)
	if m.Build.FormatGo {
		project.SetFormat(writeback.FormatGo)
	}
	return &Builder{
		root:     root,
		manifest: m,
		eng:      engine.New(fragment.NewStore(), project),
		output:   writeback.NewWriter(outputFS),
	}
}

// Engine exposes the shared engine, mainly for state inspection.
func (b *Builder) Engine() *engine.Engine { return b.eng }

// Build processes every chapter. The first directive error aborts the
// build; files persisted by earlier directives are left in place, matching
// the author-driven fix-and-rerun model.
func (b *Builder) Build() error {
	chapters, err := b.chapters()
	if err != nil {
		return err
	}
	for _, ch := range chapters {
		src, err := os.ReadFile(filepath.Join(b.root, b.manifest.Build.Source, ch))
		if err != nil {
			return fmt.Errorf("read chapter: %w", err)
		}
		processed, executed, err := processChapter(b.eng, ch, src)
		if err != nil {
			return err
		}
		if err := b.output.Write(ch, processed); err != nil {
			return fmt.Errorf("write chapter %s: %w", ch, err)
		}
		if b.Progress != nil {
			b.Progress(ch, executed)
		}
	}
	return nil
}

// chapters lists markdown files in the source directory, sorted.
func (b *Builder) chapters() ([]string, error) {
	dir := filepath.Join(b.root, b.manifest.Build.Source)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
