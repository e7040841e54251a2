package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrCreate(t *testing.T) {
	st := NewStore()
	fs := st.Get("src/lib.rs")
	require.NotNil(t, fs)
	assert.True(t, fs.Empty())
	assert.Equal(t, "src/lib.rs", fs.Path())

	// Same path returns the same state, not a fresh one.
	fs.Append(Code, "fn a() {}")
	assert.Same(t, fs, st.Get("src/lib.rs"))
	assert.False(t, st.Get("src/lib.rs").Empty())
}

func TestStore_PathsSorted(t *testing.T) {
	st := NewStore()
	st.Get("b.rs")
	st.Get("a.rs")
	st.Get("c/d.rs")
	assert.Equal(t, []string{"a.rs", "b.rs", "c/d.rs"}, st.Paths())
}

func TestFileState_AppendOrder(t *testing.T) {
	fs := NewFileState("x.rs")
	fs.Append(Code, "fn a() {}")
	fs.Append(Code, "fn b() {}", "fn c() {}")
	assert.Equal(t, []Fragment{"fn a() {}", "fn b() {}", "fn c() {}"}, fs.Section(Code))
}

func TestFileState_PrependInsertsAtFront(t *testing.T) {
	fs := NewFileState("x.rs")
	fs.Append(Imports, "use b;")
	fs.Prepend(Imports, "use a1;", "use a2;")
	assert.Equal(t, []Fragment{"use a1;", "use a2;", "use b;"}, fs.Section(Imports))
}

func TestFileState_ReplaceAt(t *testing.T) {
	fs := NewFileState("x.rs")
	fs.Append(Code, "A", "B", "C")
	fs.ReplaceAt(Code, 1, "D")
	assert.Equal(t, []Fragment{"A", "D", "C"}, fs.Section(Code))
}

func TestFileState_EmptyFragmentsDropped(t *testing.T) {
	fs := NewFileState("x.rs")
	fs.Append(Code, "", "fn a() {}", "")
	fs.Prepend(Code, "")
	assert.Equal(t, []Fragment{"fn a() {}"}, fs.Section(Code))
}

func TestParseSection(t *testing.T) {
	for _, s := range Canonical {
		got, err := ParseSection(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseSection("docs")
	assert.Error(t, err)
}

func TestSection_IsTest(t *testing.T) {
	assert.True(t, TestImports.IsTest())
	assert.True(t, TestCode.IsTest())
	assert.False(t, Code.IsTest())
	assert.False(t, ModuleDocs.IsTest())
}
