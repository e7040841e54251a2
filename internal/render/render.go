// Package render turns accumulated fragment state into text. Render is a
// pure function over an explicit FileView, so the same view always yields
// byte-identical output. A view marks each section as full or partial;
// partial sections carry an elision placeholder so a reader can tell a
// snippet apart from the whole file.
package render

import (
	"strings"

	"github.com/agentic-research/codebook/internal/fragment"
)

// SectionView is one section's contribution to a render: the fragments to
// show and whether they are only part of the accumulated state.
type SectionView struct {
	Fragments []fragment.Fragment
	Partial   bool
}

// FileView is everything one render call sees. Sections absent from the
// map are not emitted at all.
type FileView struct {
	Path     string
	Profile  Profile
	Sections map[fragment.Section]SectionView
}

// FullView projects the entire accumulated state of fs: every non-empty
// section, none of them partial. Rendering it produces the bytes persisted
// to disk.
func FullView(fs *fragment.FileState) FileView {
	v := FileView{
		Path:     fs.Path(),
		Profile:  ForPath(fs.Path()),
		Sections: make(map[fragment.Section]SectionView),
	}
	for _, s := range fragment.Canonical {
		frags := fs.Section(s)
		if len(frags) == 0 {
			continue
		}
		v.Sections[s] = SectionView{Fragments: frags}
	}
	return v
}

// DeltaView projects only the fragments supplied by the current mutation.
// A section is partial unless the supplied fragments are exactly the
// accumulated content, which happens on the first contribution to a fresh
// section and keeps the very first snippet free of elision markers.
func DeltaView(fs *fragment.FileState, supplied map[fragment.Section][]fragment.Fragment) FileView {
	v := FileView{
		Path:     fs.Path(),
		Profile:  ForPath(fs.Path()),
		Sections: make(map[fragment.Section]SectionView),
	}
	for _, s := range fragment.Canonical {
		frags := supplied[s]
		if len(frags) == 0 {
			continue
		}
		v.Sections[s] = SectionView{
			Fragments: frags,
			Partial:   !sequenceEqual(frags, fs.Section(s)),
		}
	}
	return v
}

// SnippetView projects a single fragment of a single section, used for the
// before/after halves of a replace display.
func SnippetView(fs *fragment.FileState, s fragment.Section, f fragment.Fragment) FileView {
	return DeltaView(fs, map[fragment.Section][]fragment.Fragment{s: {f}})
}

func sequenceEqual(a, b []fragment.Fragment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Render assembles the view into text.
//
// Layout, fixed for determinism: a header line naming the file; module
// docs attached directly under the header; mod declarations and imports as
// one contiguous block; a labeled code block; then, if either test section
// is present, a single synthetic test module wrapping both. Top-level
// blocks are separated by one blank line. Partial sections emit the
// elision placeholder once, before their content.
func Render(v FileView) string {
	p := v.Profile
	var blocks []string

	head := p.header(v.Path)
	if body, ok := sectionText(v, fragment.ModuleDocs, "\n\n"); ok {
		head += "\n" + body
	}
	blocks = append(blocks, head)

	var decl []string
	if body, ok := sectionText(v, fragment.ModDeclarations, "\n"); ok {
		decl = append(decl, body)
	}
	if body, ok := sectionText(v, fragment.Imports, "\n"); ok {
		decl = append(decl, body)
	}
	if len(decl) > 0 {
		blocks = append(blocks, strings.Join(decl, "\n"))
	}

	if body, ok := sectionText(v, fragment.Code, "\n\n"); ok {
		blocks = append(blocks, p.label("Code")+"\n"+body)
	}

	if block, ok := testBlock(v); ok {
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n") + "\n"
}

// sectionText renders one section's fragments joined by sep, preceded by
// the elision marker when the view is partial. ok is false for absent or
// empty sections.
func sectionText(v FileView, s fragment.Section, sep string) (string, bool) {
	sv, ok := v.Sections[s]
	if !ok || len(sv.Fragments) == 0 {
		return "", false
	}
	parts := make([]string, 0, len(sv.Fragments))
	for _, f := range sv.Fragments {
		parts = append(parts, strings.TrimRight(string(f), "\n"))
	}
	body := strings.Join(parts, sep)
	if sv.Partial {
		body = v.Profile.elision() + "\n" + body
	}
	return body, true
}

// testBlock renders the synthetic test module. Both test sections share
// one wrapper; each keeps its own label and its own elision decision.
func testBlock(v FileView) (string, bool) {
	p := v.Profile
	var inner []string
	if body, ok := sectionText(v, fragment.TestImports, "\n"); ok {
		inner = append(inner, p.label("Test use"), body)
	}
	if body, ok := sectionText(v, fragment.TestCode, "\n\n"); ok {
		inner = append(inner, p.label("Test code"), body)
	}
	if len(inner) == 0 {
		return "", false
	}
	content := strings.Join(inner, "\n")
	if len(p.TestOpen) == 0 {
		return content, true
	}
	var b strings.Builder
	for _, line := range p.TestOpen {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(indent(content, p.Indent))
	b.WriteString("\n")
	b.WriteString(p.TestClose)
	return b.String(), true
}

// indent prefixes every non-empty line.
func indent(text, prefix string) string {
	if prefix == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
