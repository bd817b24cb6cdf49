package index

import (
	"cmp"
	"iter"
	"slices"

	"github.com/meigma/faidx/internal/faitype"
)

// Index maps record names to their layout entries.
//
// An Index is not safe for concurrent mutation. Once it has been handed to
// a reader it is treated as immutable and may be read concurrently.
type Index struct {
	entries map[string]faitype.Entry
}

// New returns an empty index.
func New() *Index {
	return &Index{entries: make(map[string]faitype.Entry)}
}

// Insert adds e, replacing any entry with the same name.
func (idx *Index) Insert(e faitype.Entry) {
	idx.entries[e.Name] = e
}

// Lookup returns the entry for name.
func (idx *Index) Lookup(name string) (faitype.Entry, bool) {
	e, ok := idx.entries[name]
	return e, ok
}

// Len returns the number of records in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Names returns all record names in lexical order.
func (idx *Index) Names() []string {
	names := make([]string, 0, len(idx.entries))
	for name := range idx.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Entries returns an iterator over all entries in file order.
func (idx *Index) Entries() iter.Seq[faitype.Entry] {
	sorted := make([]faitype.Entry, 0, len(idx.entries))
	for _, e := range idx.entries {
		sorted = append(sorted, e)
	}
	slices.SortFunc(sorted, func(a, b faitype.Entry) int {
		if c := cmp.Compare(a.Offset, b.Offset); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return slices.Values(sorted)
}
