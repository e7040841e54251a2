// Package api defines the directive schema authors write inside tutorial
// chapters. Directives are HCL blocks; these structs are their decoded
// form and carry no behavior.
package api

// AccumulateDirective is the body of an `append` or `prepend` block: a
// target file plus one or more section payloads. Every section attribute
// is optional; heredocs are the usual way to supply multi-line fragments.
type AccumulateDirective struct {
	// File is the generated file this directive contributes to, relative
	// to the book's project root.
	File string `hcl:"file"`

	ModuleDocs      []string `hcl:"module_docs,optional"`
	ModDeclarations []string `hcl:"mod_declarations,optional"`
	Imports         []string `hcl:"imports,optional"`
	Code            []string `hcl:"code,optional"`
	TestImports     []string `hcl:"test_imports,optional"`
	TestCode        []string `hcl:"test_code,optional"`
}

// ReplaceDirective is the body of a `replace` block: locate one existing
// fragment by pattern and substitute a new one at the same position.
type ReplaceDirective struct {
	File    string `hcl:"file"`
	Section string `hcl:"section"`
	// Match is the pattern locating the fragment to rewrite. Interpreted
	// as a regular expression unless Literal is set.
	Match   string `hcl:"match"`
	Literal bool   `hcl:"literal,optional"`
	// With is the replacement fragment.
	With string `hcl:"with"`
	// Between is transition prose printed between the before and after
	// snippets in the rendered documentation.
	Between string `hcl:"between,optional"`
}
