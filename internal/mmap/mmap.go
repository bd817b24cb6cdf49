// Package mmap exposes a file's contents as a read-only byte slice.
//
// On unix systems the file is memory-mapped; elsewhere its contents are
// read into memory once. Either way the slice must not be modified and
// is invalid after Close.
package mmap

import (
	"fmt"
	"os"

	"github.com/meigma/faidx/internal/faitype"
	"github.com/meigma/faidx/internal/sizing"
)

// Mapping is a read-only view of a file.
type Mapping struct {
	data   []byte
	unmap  func([]byte) error
	closed bool
}

// Map returns a read-only view of the full contents of f.
//
// The mapping does not retain f; callers may close the file after Map
// returns, although keeping it open is harmless.
func Map(f *os.File) (*Mapping, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", f.Name(), err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("map %s: not a regular file", f.Name())
	}
	size, err := sizing.ToInt(uint64(info.Size()), faitype.ErrSizeOverflow)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", f.Name(), err)
	}
	if size == 0 {
		return &Mapping{}, nil
	}
	data, unmap, err := mapFile(f, size)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", f.Name(), err)
	}
	return &Mapping{data: data, unmap: unmap}, nil
}

// Bytes returns the mapped contents. The slice aliases the mapping.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Len returns the number of mapped bytes.
func (m *Mapping) Len() int {
	return len(m.data)
}

// Close releases the mapping. It is safe to call more than once.
func (m *Mapping) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	data := m.data
	m.data = nil
	if m.unmap == nil || data == nil {
		return nil
	}
	return m.unmap(data)
}
