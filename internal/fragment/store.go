package fragment

import "sort"

// Store is the registry mapping output file paths to their accumulated
// state. One Store is shared by a whole authoring session; it is an
// explicit value handed to the engine rather than ambient global state.
// There is exactly one writer by construction, so no locking.
type Store struct {
	files map[string]*FileState
}

// NewStore returns an empty registry.
func NewStore() *Store {
	return &Store{files: make(map[string]*FileState)}
}

// Get returns the state for path, creating an empty one on first
// reference. An unknown path is never an error.
func (st *Store) Get(path string) *FileState {
	fs, ok := st.files[path]
	if !ok {
		fs = NewFileState(path)
		st.files[path] = fs
	}
	return fs
}

// Paths returns every registered file path in sorted order.
func (st *Store) Paths() []string {
	paths := make([]string, 0, len(st.files))
	for p := range st.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
