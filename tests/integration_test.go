package tests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/codebook/internal/book"
)

const manifest = `
[book]
title   = "Writing a derive macro"
authors = ["Rin"]

[build]
source  = "chapters"
output  = "rendered"
project = "project"
`

const chapterOne = "# A tiny library\n" +
	"\n" +
	"Start with a greeting:\n" +
	"\n" +
	"```codebook\n" +
	"append {\n" +
	"  file = \"src/lib.rs\"\n" +
	"\n" +
	"  module_docs = [\"//! A tiny library\"]\n" +
	"  code = [<<-EOT\n" +
	"    pub fn greet() -> String {\n" +
	"        \"hello\".to_string()\n" +
	"    }\n" +
	"  EOT\n" +
	"  ]\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"Add a second function; the listing shows only the new part:\n" +
	"\n" +
	"```codebook\n" +
	"append {\n" +
	"  file = \"src/lib.rs\"\n" +
	"  code = [\"pub fn shout() -> String {\\n    greet().to_uppercase()\\n}\"]\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"And a test, silently:\n" +
	"\n" +
	"```codebook hidden\n" +
	"append {\n" +
	"  file = \"src/lib.rs\"\n" +
	"  test_imports = [\"use super::*;\"]\n" +
	"  test_code = [\"#[test]\\nfn test_greet() {\\n    assert_eq!(\\\"hello\\\", greet());\\n}\"]\n" +
	"}\n" +
	"```\n"

const chapterTwo = "# Changing course\n" +
	"\n" +
	"```codebook\n" +
	"replace {\n" +
	"  file    = \"src/lib.rs\"\n" +
	"  section = \"code\"\n" +
	"  match   = \"fn greet\"\n" +
	"  with    = \"pub fn greet() -> String {\\n    \\\"hi\\\".to_string()\\n}\"\n" +
	"  between = \"Shorter:\"\n" +
	"}\n" +
	"```\n"

// setupBook lays out a complete two-chapter book on disk and returns its
// root plus a wired builder, mirroring what `codebook build` does.
func setupBook(t *testing.T) (string, *book.Builder) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "chapters"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, book.ManifestName), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "chapters", "01-intro.md"), []byte(chapterOne), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "chapters", "02-replace.md"), []byte(chapterTwo), 0o644))

	m, err := book.LoadManifest(filepath.Join(root, book.ManifestName))
	require.NoError(t, err)

	b := book.NewBuilder(root, m,
		osfs.New(filepath.Join(root, m.Build.Project)),
		osfs.New(filepath.Join(root, m.Build.Output)))
	return root, b
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBuild_GeneratedProjectAccumulatesAcrossChapters(t *testing.T) {
	root, b := setupBook(t)
	require.NoError(t, b.Build())

	lib := readFile(t, filepath.Join(root, "project", "src", "lib.rs"))

	assert.True(t, strings.HasPrefix(lib, "// File: `src/lib.rs`\n//! A tiny library\n"), "header and docs lead the file: %s", lib)
	assert.Contains(t, lib, "pub fn shout()")
	assert.Contains(t, lib, "\"hi\".to_string()", "chapter two's replace landed")
	assert.NotContains(t, lib, "\"hello\".to_string()", "replaced fragment is gone")
	assert.Contains(t, lib, "#[cfg(test)]\nmod tests {")
	assert.Contains(t, lib, "    fn test_greet()")
	assert.Equal(t, 1, strings.Count(lib, "#[cfg(test)]"))
	assert.NotContains(t, lib, "// ...", "the persisted file is never elided")

	// Functions keep insertion order.
	assert.Less(t, strings.Index(lib, "fn greet"), strings.Index(lib, "fn shout"))
}

func TestBuild_RenderedChaptersEmbedSnippets(t *testing.T) {
	root, b := setupBook(t)
	require.NoError(t, b.Build())

	ch1 := readFile(t, filepath.Join(root, "rendered", "01-intro.md"))
	assert.Contains(t, ch1, "Start with a greeting:")
	assert.NotContains(t, ch1, "```codebook")
	assert.NotContains(t, ch1, "append {")

	// First listing shows everything it added, no elision.
	first := ch1[:strings.Index(ch1, "second function")]
	assert.Contains(t, first, "```rust\n// File: `src/lib.rs`")
	assert.NotContains(t, first, "// ...")

	// Second listing shows only the new function, with the marker.
	rest := ch1[strings.Index(ch1, "second function"):]
	assert.Contains(t, rest, "// ...")
	assert.Contains(t, rest, "pub fn shout()")
	assert.NotContains(t, rest, "pub fn greet()")

	// Hidden block left no trace in the prose.
	assert.NotContains(t, ch1, "test_greet")

	ch2 := readFile(t, filepath.Join(root, "rendered", "02-replace.md"))
	iBefore := strings.Index(ch2, "\"hello\".to_string()")
	iProse := strings.Index(ch2, "Shorter:")
	iAfter := strings.Index(ch2, "\"hi\".to_string()")
	require.True(t, iBefore >= 0 && iProse >= 0 && iAfter >= 0, "before/prose/after all present: %s", ch2)
	assert.Less(t, iBefore, iProse)
	assert.Less(t, iProse, iAfter)
}

func TestBuild_ProgressReportsEveryChapter(t *testing.T) {
	_, b := setupBook(t)

	var got []string
	b.Progress = func(chapter string, directives int) {
		got = append(got, chapter)
		assert.Positive(t, directives)
	}
	require.NoError(t, b.Build())
	assert.Equal(t, []string{"01-intro.md", "02-replace.md"}, got)
}

func TestBuild_RerunFromCleanStateIsDeterministic(t *testing.T) {
	root, b := setupBook(t)
	require.NoError(t, b.Build())
	lib := readFile(t, filepath.Join(root, "project", "src", "lib.rs"))
	ch1 := readFile(t, filepath.Join(root, "rendered", "01-intro.md"))

	// Rebuild with a fresh builder over the same inputs.
	m, err := book.LoadManifest(filepath.Join(root, book.ManifestName))
	require.NoError(t, err)
	b2 := book.NewBuilder(root, m,
		osfs.New(filepath.Join(root, m.Build.Project)),
		osfs.New(filepath.Join(root, m.Build.Output)))
	require.NoError(t, b2.Build())

	assert.Equal(t, lib, readFile(t, filepath.Join(root, "project", "src", "lib.rs")))
	assert.Equal(t, ch1, readFile(t, filepath.Join(root, "rendered", "01-intro.md")))
}
