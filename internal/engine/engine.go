// Package engine implements the mutation surface of the literate-code
// renderer: append, prepend and match-replace over a fragment store. Every
// mutation persists the full deterministic rendering of the touched file
// and returns a display snippet covering only what the mutation changed.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentic-research/codebook/internal/fragment"
	"github.com/agentic-research/codebook/internal/render"
)

// ErrNoMatch is returned by Replace when no fragment in the target section
// satisfies the matcher. The file state is left completely unchanged.
var ErrNoMatch = errors.New("no matching fragment")

// Persister writes the rendered file contents. The production implementation
// is writeback.Writer; tests substitute an in-memory filesystem.
type Persister interface {
	Write(path string, content []byte) error
}

// Payload is the per-section content one authoring step contributes.
type Payload map[fragment.Section][]fragment.Fragment

// Engine binds a fragment store to a persister. It is single-writer:
// directives execute strictly sequentially, and each mutation completes its
// store update and file write before the next one starts.
type Engine struct {
	store  *fragment.Store
	writer Persister
}

// New returns an engine over store that persists through writer.
func New(store *fragment.Store, writer Persister) *Engine {
	return &Engine{store: store, writer: writer}
}

// Store exposes the underlying registry for read-only inspection.
func (e *Engine) Store() *fragment.Store { return e.store }

// Append adds the payload to the end of each targeted section of path,
// persists the full file, and returns a snippet rendering only this call's
// contribution. An empty payload still re-renders and re-persists.
func (e *Engine) Append(path string, p Payload) (string, error) {
	return e.accumulate(path, p, func(fs *fragment.FileState, s fragment.Section, frags []fragment.Fragment) {
		fs.Append(s, frags...)
	})
}

// Prepend mirrors Append but inserts at the front of each targeted
// section, for content that must precede what earlier steps added.
func (e *Engine) Prepend(path string, p Payload) (string, error) {
	return e.accumulate(path, p, func(fs *fragment.FileState, s fragment.Section, frags []fragment.Fragment) {
		fs.Prepend(s, frags...)
	})
}

func (e *Engine) accumulate(path string, p Payload, apply func(*fragment.FileState, fragment.Section, []fragment.Fragment)) (string, error) {
	fs := e.store.Get(path)
	supplied := make(map[fragment.Section][]fragment.Fragment)
	for _, s := range fragment.Canonical {
		frags := nonEmpty(p[s])
		if len(frags) == 0 {
			continue
		}
		apply(fs, s, frags)
		supplied[s] = frags
	}
	if err := e.persist(fs); err != nil {
		return "", err
	}
	return render.Render(render.DeltaView(fs, supplied)), nil
}

// ReplaceResult carries the two halves of a replace display plus the
// composed string. Before and After are kept separate so a caller can
// fence them individually around the transition prose.
type ReplaceResult struct {
	Before  string
	After   string
	Between string
	Display string
}

// Replace locates the first fragment of section s that m accepts,
// substitutes repl at the same position, persists the file, and returns
// before/after snippets joined by the author's transition prose. When
// several fragments match, the first in insertion order wins; that policy
// is deliberate and fixed. No match is an error and mutates nothing.
func (e *Engine) Replace(path string, s fragment.Section, m Matcher, repl fragment.Fragment, between string) (*ReplaceResult, error) {
	fs := e.store.Get(path)
	idx := -1
	for i, f := range fs.Section(s) {
		if m.Match(f) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("replace in %s: section %q has no fragment matching %s: %w", path, s, m, ErrNoMatch)
	}

	old := fs.Section(s)[idx]
	before := render.Render(render.SnippetView(fs, s, old))
	fs.ReplaceAt(s, idx, repl)
	after := render.Render(render.SnippetView(fs, s, repl))

	if err := e.persist(fs); err != nil {
		return nil, err
	}

	parts := []string{strings.TrimRight(before, "\n")}
	if between != "" {
		parts = append(parts, between)
	}
	parts = append(parts, strings.TrimRight(after, "\n"))
	return &ReplaceResult{
		Before:  before,
		After:   after,
		Between: between,
		Display: strings.Join(parts, "\n\n") + "\n",
	}, nil
}

func (e *Engine) persist(fs *fragment.FileState) error {
	content := render.Render(render.FullView(fs))
	if err := e.writer.Write(fs.Path(), []byte(content)); err != nil {
		return fmt.Errorf("persist %s: %w", fs.Path(), err)
	}
	return nil
}

func nonEmpty(frags []fragment.Fragment) []fragment.Fragment {
	kept := frags[:0:0]
	for _, f := range frags {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return kept
}
