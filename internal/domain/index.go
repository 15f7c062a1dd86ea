package domain

import "sort"

// Index is an immutable view over one loaded mapping document. It is built in
// full by BuildIndex and never mutated afterwards, so it is safe to share
// between goroutines.
type Index struct {
	byPath     map[string]string
	byFilename map[string][]string
	order      []string // paths in first-seen order
}

// EmptyIndex returns an index with no entries
func EmptyIndex() *Index {
	return &Index{
		byPath:     map[string]string{},
		byFilename: map[string][]string{},
	}
}

// BuildIndex builds a fresh index from entries in document order. A path
// seen more than once keeps the id of its last occurrence.
func BuildIndex(entries []AssetEntry) *Index {
	idx := &Index{
		byPath:     make(map[string]string, len(entries)),
		byFilename: make(map[string][]string),
		order:      make([]string, 0, len(entries)),
	}

	for _, e := range entries {
		if _, seen := idx.byPath[e.Path]; !seen {
			idx.order = append(idx.order, e.Path)
			name := Basename(e.Path)
			idx.byFilename[name] = append(idx.byFilename[name], e.Path)
		}
		idx.byPath[e.Path] = e.ID
	}

	return idx
}

// Len returns the number of distinct asset paths
func (idx *Index) Len() int {
	return len(idx.byPath)
}

// Lookup returns the id for an exact asset path
func (idx *Index) Lookup(assetPath string) (string, bool) {
	id, ok := idx.byPath[assetPath]
	return id, ok
}

// Candidates returns the asset paths whose filename equals name, in the
// order they were first declared. The returned slice must not be modified.
func (idx *Index) Candidates(name string) []string {
	return idx.byFilename[name]
}

// Entries returns every entry in first-seen order, each carrying its final id
func (idx *Index) Entries() []AssetEntry {
	out := make([]AssetEntry, 0, len(idx.order))
	for _, p := range idx.order {
		out = append(out, AssetEntry{Path: p, ID: idx.byPath[p]})
	}
	return out
}

// SortedEntries returns every entry ordered by path
func (idx *Index) SortedEntries() []AssetEntry {
	out := idx.Entries()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}
