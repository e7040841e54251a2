package writeback

import (
	"strings"

	"mvdan.cc/gofumpt/format"
)

// FormatGo formats Go source in-memory using gofumpt. Non-Go paths and
// unparseable buffers pass through unchanged, so installing this hook can
// never reject a write. Opt-in via the book manifest.
func FormatGo(content []byte, path string) []byte {
	if !strings.HasSuffix(path, ".go") {
		return content
	}
	formatted, err := format.Source(content, format.Options{})
	if err != nil {
		return content // formatting failed — return original
	}
	return formatted
}
