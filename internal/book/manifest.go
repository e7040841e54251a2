package book

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ManifestName is the fixed manifest filename at a book's root.
const ManifestName = "book.toml"

// Manifest is the decoded book.toml.
type Manifest struct {
	Book  BookInfo  `toml:"book"`
	Build BuildInfo `toml:"build"`
}

// BookInfo describes the tutorial itself.
type BookInfo struct {
	Title   string   `toml:"title"`
	Authors []string `toml:"authors"`
}

// BuildInfo locates inputs and outputs, all relative to the book root.
type BuildInfo struct {
	// Source is the directory of chapter markdown files.
	Source string `toml:"source"`
	// Output is where processed chapter markdown is written.
	Output string `toml:"output"`
	// Project is the root the generated code files are written under.
	Project string `toml:"project"`
	// FormatGo runs gofumpt over generated .go files before writing.
	FormatGo bool `toml:"format_go"`
}

// LoadManifest reads and decodes path, applying defaults for absent keys.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("load manifest %s: %w", path, err)
	}
	if m.Build.Source == "" {
		m.Build.Source = "chapters"
	}
	if m.Build.Output == "" {
		m.Build.Output = "book"
	}
	if m.Build.Project == "" {
		m.Build.Project = "project"
	}
	return &m, nil
}
