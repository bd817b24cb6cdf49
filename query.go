package faidx

import (
	"bytes"
	"fmt"

	"github.com/meigma/faidx/internal/locate"
)

const terminator = '\n'

// Query returns bases [start, end) of the named record with line
// terminators removed.
//
// The result aliases a buffer owned by f and is overwritten by the next
// call to Query, QueryTruncated or Sequence. Query is not safe for
// concurrent use; see AppendQuery for a concurrent alternative.
//
// Query fails with ErrNotFound, ErrEmptyInterval, ErrStartOutOfRange or
// ErrEndOutOfRange.
func (f *Fasta) Query(name string, start, end uint64) ([]byte, error) {
	raw, err := f.locate("query", name, start, end, true)
	if err != nil {
		return nil, err
	}
	f.buf = appendStripped(f.buf[:0], raw)
	return f.buf, nil
}

// QueryTruncated is like Query but clamps end to the record length
// instead of failing with ErrEndOutOfRange.
func (f *Fasta) QueryTruncated(name string, start, end uint64) ([]byte, error) {
	raw, err := f.locate("query", name, start, end, false)
	if err != nil {
		return nil, err
	}
	f.buf = appendStripped(f.buf[:0], raw)
	return f.buf, nil
}

// View returns the bytes of the sequence file covering bases [start, end)
// of the named record, without copying.
//
// The result is a read-only slice of the mapping and still contains any
// line terminators crossed by the interval, including one that directly
// follows the final base. It must not be modified and is invalid after
// Close. View is safe for concurrent use.
func (f *Fasta) View(name string, start, end uint64) ([]byte, error) {
	return f.locate("view", name, start, end, true)
}

// ViewTruncated is like View but clamps end to the record length instead
// of failing with ErrEndOutOfRange.
func (f *Fasta) ViewTruncated(name string, start, end uint64) ([]byte, error) {
	return f.locate("view", name, start, end, false)
}

// AppendQuery appends bases [start, end) of the named record, with line
// terminators removed, to dst and returns the extended slice.
// It validates the interval like Query and is safe for concurrent use.
func (f *Fasta) AppendQuery(dst []byte, name string, start, end uint64) ([]byte, error) {
	raw, err := f.locate("query", name, start, end, true)
	if err != nil {
		return dst, err
	}
	return appendStripped(dst, raw), nil
}

// AppendQueryTruncated is like AppendQuery but clamps end to the record length.
func (f *Fasta) AppendQueryTruncated(dst []byte, name string, start, end uint64) ([]byte, error) {
	raw, err := f.locate("query", name, start, end, false)
	if err != nil {
		return dst, err
	}
	return appendStripped(dst, raw), nil
}

// Sequence returns all bases of the named record with line terminators
// removed. The result shares the buffer used by Query.
func (f *Fasta) Sequence(name string) ([]byte, error) {
	if f.closed {
		return nil, fmt.Errorf("sequence %s: %w", name, ErrClosed)
	}
	e, ok := f.idx.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("sequence %s: %w", name, ErrNotFound)
	}
	if e.Length == 0 {
		f.buf = f.buf[:0]
		return f.buf, nil
	}
	return f.Query(name, 0, e.Length)
}

// locate validates the interval and returns the matching slice of the mapping.
func (f *Fasta) locate(op, name string, start, end uint64, bounded bool) ([]byte, error) {
	if f.closed {
		return nil, queryError(op, name, start, end, ErrClosed)
	}
	e, ok := f.idx.Lookup(name)
	if !ok {
		return nil, queryError(op, name, start, end, ErrNotFound)
	}
	switch {
	case start >= end:
		return nil, queryError(op, name, start, end, ErrEmptyInterval)
	case start >= e.Length:
		return nil, queryError(op, name, start, end, ErrStartOutOfRange)
	case end > e.Length:
		if bounded {
			return nil, queryError(op, name, start, end, ErrEndOutOfRange)
		}
		end = e.Length
	}

	span, ok := locate.TranslateChecked(e, start, end)
	if !ok {
		return nil, queryError(op, name, start, end, ErrSizeOverflow)
	}
	lo, hi, ok := f.bounds(span)
	if !ok {
		return nil, queryError(op, name, start, end, ErrLayoutMismatch)
	}
	return f.data[lo:hi:hi], nil
}

func queryError(op, name string, start, end uint64, err error) error {
	return fmt.Errorf("%s %s:%d-%d: %w", op, name, start, end, err)
}

// appendStripped appends src to dst, dropping line terminators.
func appendStripped(dst, src []byte) []byte {
	for len(src) > 0 {
		i := bytes.IndexByte(src, terminator)
		if i < 0 {
			return append(dst, src...)
		}
		dst = append(dst, src[:i]...)
		src = src[i+1:]
	}
	return dst
}
