package render

import (
	"path/filepath"
	"strings"
)

// Profile carries the per-language constants a render needs: the line
// comment leader for the header, section labels and elision marker, the
// fence label used when a snippet is embedded in markdown, and the
// synthetic test-module wrapper. Languages without an inline test-module
// convention leave TestOpen empty and get plain labeled test sections.
type Profile struct {
	Name      string   // fence label, e.g. "rust"
	Comment   string   // line comment leader, e.g. "//"
	Indent    string   // indentation inside the test wrapper
	TestOpen  []string // lines opening the synthetic test module
	TestClose string   // line closing it
}

var rustProfile = Profile{
	Name:      "rust",
	Comment:   "//",
	Indent:    "    ",
	TestOpen:  []string{"#[cfg(test)]", "mod tests {"},
	TestClose: "}",
}

// ForPath selects a profile by file extension. Rust is the default: the
// tutorials this tool grew out of generate Cargo projects.
func ForPath(path string) Profile {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return Profile{Name: "go", Comment: "//", Indent: "\t"}
	case ".py":
		return Profile{Name: "python", Comment: "#", Indent: "    "}
	case ".toml":
		return Profile{Name: "toml", Comment: "#", Indent: ""}
	default:
		return rustProfile
	}
}

// header returns the traceability line emitted at the top of every render.
func (p Profile) header(path string) string {
	return p.Comment + " File: `" + path + "`"
}

// label returns a section label comment such as "// Code".
func (p Profile) label(text string) string {
	return p.Comment + " " + text
}

// elision is the placeholder comment marking content that exists in the
// real file but is not shown in this snippet.
func (p Profile) elision() string {
	return p.Comment + " ..."
}
