// Package fragment holds the accumulated source fragments for every file a
// tutorial generates. Fragments are opaque text blocks; the store never
// parses them, it only preserves the order in which authoring steps
// contributed them.
package fragment

import "fmt"

// Section is a named category of content within one generated file.
type Section string

const (
	ModuleDocs      Section = "module_docs"
	ModDeclarations Section = "mod_declarations"
	Imports         Section = "imports"
	Code            Section = "code"
	TestImports     Section = "test_imports"
	TestCode        Section = "test_code"
)

// Canonical is the fixed emission order used by every render.
var Canonical = []Section{
	ModuleDocs,
	ModDeclarations,
	Imports,
	Code,
	TestImports,
	TestCode,
}

// ParseSection maps a directive string to a Section.
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case ModuleDocs, ModDeclarations, Imports, Code, TestImports, TestCode:
		return Section(s), nil
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// IsTest reports whether the section renders inside the test-module wrapper.
func (s Section) IsTest() bool {
	return s == TestImports || s == TestCode
}

// Fragment is one atomic block of text contributed by a single authoring
// step. Fragments are immutable and compared only by exact text equality.
type Fragment string

// FileState is the complete accumulated record for one output file.
// It is mutated only through Append, Prepend and ReplaceAt.
type FileState struct {
	path     string
	sections map[Section][]Fragment
}

// NewFileState returns an empty state for path. Callers normally go through
// Store.Get instead.
func NewFileState(path string) *FileState {
	return &FileState{
		path:     path,
		sections: make(map[Section][]Fragment),
	}
}

// Path returns the output file path this state accumulates content for.
func (fs *FileState) Path() string { return fs.path }

// Section returns the accumulated fragments for s in insertion order.
// The returned slice is shared; callers must not modify it.
func (fs *FileState) Section(s Section) []Fragment {
	return fs.sections[s]
}

// Append adds fragments to the end of section s, preserving argument order.
// Empty fragments contribute nothing.
func (fs *FileState) Append(s Section, frags ...Fragment) {
	for _, f := range frags {
		if f == "" {
			continue
		}
		fs.sections[s] = append(fs.sections[s], f)
	}
}

// Prepend inserts fragments at the front of section s. The supplied
// fragments keep their relative order, ahead of everything already present.
func (fs *FileState) Prepend(s Section, frags ...Fragment) {
	kept := frags[:0:0]
	for _, f := range frags {
		if f != "" {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return
	}
	fs.sections[s] = append(kept, fs.sections[s]...)
}

// ReplaceAt substitutes the fragment at index i of section s in place.
// The index must come from a prior scan of the same section.
func (fs *FileState) ReplaceAt(s Section, i int, f Fragment) {
	fs.sections[s][i] = f
}

// Empty reports whether no section holds any fragment.
func (fs *FileState) Empty() bool {
	for _, frags := range fs.sections {
		if len(frags) > 0 {
			return false
		}
	}
	return true
}
