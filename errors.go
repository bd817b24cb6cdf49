package faidx

import (
	"errors"

	"github.com/meigma/faidx/internal/faitype"
)

// Errors re-exported from internal/faitype.
var (
	// ErrMalformedIndex is matched by every index decode failure.
	ErrMalformedIndex = faitype.ErrMalformedIndex

	// ErrNotFound is returned when a record name is absent from the index.
	ErrNotFound = faitype.ErrNotFound

	// ErrEmptyInterval is returned when start >= end.
	ErrEmptyInterval = faitype.ErrEmptyInterval

	// ErrStartOutOfRange is returned when start is at or beyond the record length.
	ErrStartOutOfRange = faitype.ErrStartOutOfRange

	// ErrEndOutOfRange is returned by bounded queries when end exceeds the record length.
	ErrEndOutOfRange = faitype.ErrEndOutOfRange

	// ErrLayoutMismatch is returned when an index entry points outside the sequence file.
	ErrLayoutMismatch = faitype.ErrLayoutMismatch

	// ErrSizeOverflow is returned when byte counts exceed supported limits.
	ErrSizeOverflow = faitype.ErrSizeOverflow

	// ErrClosed is returned when querying a closed Fasta.
	ErrClosed = faitype.ErrClosed
)

// Sentinel errors specific to the faidx package.
var (
	// ErrLocked is returned by Open when WithSharedLock is set and another
	// process holds an exclusive lock on the sequence file.
	ErrLocked = errors.New("faidx: sequence file is locked")

	// ErrDigestUnavailable is returned when the configured digest algorithm
	// is not linked into the binary.
	ErrDigestUnavailable = errors.New("faidx: digest algorithm unavailable")
)
