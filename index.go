package faidx

import (
	"io"

	"github.com/meigma/faidx/internal/faitype"
	"github.com/meigma/faidx/internal/index"
	"github.com/meigma/faidx/internal/locate"
)

// Re-export types from internal packages for the public API.
type (
	// Entry describes the layout of one sequence record.
	Entry = faitype.Entry

	// Index maps record names to entries.
	Index = index.Index

	// ParseError describes a malformed index line.
	ParseError = faitype.ParseError

	// Compression identifies how an index stream is encoded.
	Compression = faitype.Compression

	// Span is a physical byte range in the sequence file.
	Span = locate.Span
)

// Re-export compression constants.
const (
	CompressionNone = faitype.CompressionNone
	CompressionGzip = faitype.CompressionGzip
	CompressionZstd = faitype.CompressionZstd
)

// NewIndex returns an empty index for callers assembling entries by hand.
func NewIndex() *Index {
	return index.New()
}

// DecodeIndex reads an index from r. Gzip and zstd compressed streams are
// detected and decompressed transparently.
//
// Records with duplicate names are resolved last-write-wins. The first
// malformed line aborts the decode with a *ParseError.
func DecodeIndex(r io.Reader) (*Index, error) {
	return index.DecodeStream(r)
}

// ReadIndexFile reads and decodes the index file at path.
func ReadIndexFile(path string) (*Index, error) {
	return index.DecodeFile(path)
}

// Translate maps the interval [start, end) of e to a physical byte span.
//
// Translate performs no validation: callers must ensure start < end,
// start < e.Length and e.LineBases > 0.
func Translate(e Entry, start, end uint64) Span {
	return locate.Translate(e, start, end)
}
