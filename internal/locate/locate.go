// Package locate translates logical base intervals into physical byte spans.
//
// A FASTA record is stored as fixed-width lines of LineBases bases, each
// followed by a single-byte terminator. Translation assumes exactly one
// terminator byte per line (LineWidth == LineBases+1); indexes that record
// a wider terminator produce spans that are short by the extra bytes.
package locate

import (
	"github.com/meigma/faidx/internal/faitype"
	"github.com/meigma/faidx/internal/sizing"
)

// Span is a physical byte range in the sequence file.
type Span struct {
	// Offset is the absolute byte offset of the first requested base.
	Offset uint64

	// Length is the number of bytes covering the requested bases,
	// including every terminator crossed.
	Length uint64

	// Trailing is true when the last byte of the span is a terminator,
	// which happens when the interval ends exactly on a line boundary.
	Trailing bool
}

// End returns the exclusive end offset of the span.
func (s Span) End() uint64 {
	return s.Offset + s.Length
}

// Translate maps the half-open interval [start, end) of entry e to a
// physical span.
//
// Translate performs no validation. Callers must ensure start < end,
// start < e.Length and e.LineBases > 0.
func Translate(e faitype.Entry, start, end uint64) Span {
	size := end - start
	rowPos := (start / e.LineBases) * e.LineWidth
	colPos := start % e.LineBases
	numLines := (size + colPos) / e.LineBases
	return Span{
		Offset:   e.Offset + rowPos + colPos,
		Length:   size + numLines,
		Trailing: numLines > 0 && (size+colPos)%e.LineBases == 0,
	}
}

// TranslateChecked is Translate with overflow detection. ok is false when
// any intermediate value exceeds the uint64 range, which only happens for
// corrupt index entries.
func TranslateChecked(e faitype.Entry, start, end uint64) (span Span, ok bool) {
	if e.LineBases == 0 || end < start {
		return Span{}, false
	}
	size := end - start
	rowPos, ok := sizing.MulUint64(start/e.LineBases, e.LineWidth)
	if !ok {
		return Span{}, false
	}
	colPos := start % e.LineBases
	sum, ok := sizing.AddUint64(size, colPos)
	if !ok {
		return Span{}, false
	}
	numLines := sum / e.LineBases
	length, ok := sizing.AddUint64(size, numLines)
	if !ok {
		return Span{}, false
	}
	off, ok := sizing.AddUint64(e.Offset, rowPos)
	if !ok {
		return Span{}, false
	}
	off, ok = sizing.AddUint64(off, colPos)
	if !ok {
		return Span{}, false
	}
	if _, ok := sizing.AddUint64(off, length); !ok {
		return Span{}, false
	}
	return Span{
		Offset:   off,
		Length:   length,
		Trailing: numLines > 0 && sum%e.LineBases == 0,
	}, true
}

// Extent returns the span covering the entire record.
// ok is false for an empty record or a corrupt entry.
func Extent(e faitype.Entry) (Span, bool) {
	if e.Length == 0 {
		return Span{}, false
	}
	return TranslateChecked(e, 0, e.Length)
}
