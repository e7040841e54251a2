package writeback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatGo_FormatsGo(t *testing.T) {
	// gofumpt enforces consistent formatting — use a full Go file
	// with inconsistent spacing that gofumpt will fix
	input := []byte("package main\n\nfunc A()  {\nreturn\n}\n")
	got := FormatGo(input, "main.go")
	expected := "package main\n\nfunc A() {\n\treturn\n}\n"
	assert.Equal(t, expected, string(got))
}

func TestFormatGo_NonGoPassthrough(t *testing.T) {
	input := []byte("fn main() {}\n")
	got := FormatGo(input, "src/main.rs")
	assert.Equal(t, input, got, "non-Go files should pass through unchanged")
}

func TestFormatGo_InvalidGoPassthrough(t *testing.T) {
	input := []byte("func broken {{{")
	got := FormatGo(input, "main.go")
	assert.Equal(t, input, got, "unparseable Go should return original buffer")
}
