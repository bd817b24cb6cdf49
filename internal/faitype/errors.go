package faitype

import (
	"errors"
	"fmt"
)

// Sentinel errors for index and query operations.
var (
	// ErrMalformedIndex is matched by every index decode failure.
	ErrMalformedIndex = errors.New("faidx: malformed index")

	// ErrNotFound is returned when a record name is absent from the index.
	ErrNotFound = errors.New("faidx: record not found")

	// ErrEmptyInterval is returned when start >= end.
	ErrEmptyInterval = errors.New("faidx: empty or inverted interval")

	// ErrStartOutOfRange is returned when start is at or beyond the record length.
	ErrStartOutOfRange = errors.New("faidx: start beyond record end")

	// ErrEndOutOfRange is returned by bounded queries when end exceeds the record length.
	ErrEndOutOfRange = errors.New("faidx: end beyond record end")

	// ErrLayoutMismatch is returned when an index entry points outside the sequence file.
	ErrLayoutMismatch = errors.New("faidx: index does not match sequence file")

	// ErrSizeOverflow is returned when byte counts exceed supported limits.
	ErrSizeOverflow = errors.New("faidx: size overflow")

	// ErrClosed is returned when querying a closed sequence file.
	ErrClosed = errors.New("faidx: sequence file closed")
)

// ParseError describes a malformed line in an index stream.
type ParseError struct {
	// Line is the 1-based line number of the offending record.
	Line int

	// Field names the offending column, or is empty when the whole
	// record is at fault (for example a wrong field count).
	Field string

	// Err is the underlying cause.
	Err error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("faidx: index line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("faidx: index line %d: field %s: %v", e.Line, e.Field, e.Err)
}

// Unwrap exposes both ErrMalformedIndex and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedIndex, e.Err}
}
