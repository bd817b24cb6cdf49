package faidx

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gofrs/flock"
	"github.com/opencontainers/go-digest"

	"github.com/meigma/faidx/internal/index"
	"github.com/meigma/faidx/internal/locate"
	"github.com/meigma/faidx/internal/mmap"
	"github.com/meigma/faidx/internal/sizing"
)

// Fasta provides random access to the records of an indexed FASTA file.
//
// The index and the memory-mapped sequence file are immutable for the
// lifetime of a Fasta. View, ViewTruncated, AppendQuery,
// AppendQueryTruncated, Digest and Digests are safe for concurrent use.
// Query, QueryTruncated and Sequence share an internal buffer and require
// exclusive access. Close must not run concurrently with any query.
type Fasta struct {
	idx               *index.Index
	path              string
	mapping           *mmap.Mapping
	data              []byte
	buf               []byte
	lock              *flock.Flock
	closed            bool
	layoutCheck       bool
	sharedLock        bool
	bufSize           int
	digestAlg         digest.Algorithm
	digestConcurrency int
	logger            *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (f *Fasta) log() *slog.Logger {
	if f.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.logger
}

// New maps the sequence file at path and returns a Fasta that answers
// queries using idx.
//
// The Fasta takes ownership of idx; callers must not modify it afterwards.
// Errors opening or mapping the file are returned here and never from
// queries.
func New(idx *Index, path string, opts ...Option) (*Fasta, error) {
	if idx == nil {
		idx = index.New()
	}
	f := &Fasta{
		idx:       idx,
		path:      path,
		digestAlg: digest.Canonical,
	}
	for _, opt := range opts {
		opt(f)
	}
	if !f.digestAlg.Available() {
		return nil, fmt.Errorf("%w: %q", ErrDigestUnavailable, f.digestAlg)
	}

	file, err := os.Open(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("open sequence file: %w", err)
	}
	defer file.Close()

	if f.sharedLock {
		if err := f.acquireLock(); err != nil {
			return nil, err
		}
	}

	m, err := mmap.Map(file)
	if err != nil {
		_ = f.releaseLock()
		return nil, fmt.Errorf("map sequence file: %w", err)
	}
	f.mapping = m
	f.data = m.Bytes()
	if f.bufSize > 0 {
		f.buf = make([]byte, 0, f.bufSize)
	}

	f.warnTerminators()
	if f.layoutCheck {
		if err := f.checkLayout(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.log().Debug("opened sequence file", "path", path, "records", idx.Len(), "bytes", len(f.data))
	return f, nil
}

func (f *Fasta) acquireLock() error {
	lk := flock.New(f.path)
	ok, err := lk.TryRLock()
	if err != nil {
		return fmt.Errorf("lock sequence file: %w", err)
	}
	if !ok {
		return fmt.Errorf("lock sequence file %s: %w", f.path, ErrLocked)
	}
	f.lock = lk
	return nil
}

func (f *Fasta) releaseLock() error {
	if f.lock == nil {
		return nil
	}
	lk := f.lock
	f.lock = nil
	return errors.Join(lk.Unlock(), lk.Close())
}

// warnTerminators logs wrapped records whose line width implies a
// terminator longer than one byte.
func (f *Fasta) warnTerminators() {
	var count int
	var first Entry
	for e := range f.idx.Entries() {
		if e.Multiline() && e.LineWidth-e.LineBases != 1 {
			if count == 0 {
				first = e
			}
			count++
		}
	}
	if count == 0 {
		return
	}
	f.log().Warn("index implies multi-byte line terminators; spans assume one byte per line",
		"records", count,
		"first", first.Name,
		"line_bases", first.LineBases,
		"line_width", first.LineWidth,
	)
}

// checkLayout verifies every record lies within the mapped file.
func (f *Fasta) checkLayout() error {
	for e := range f.idx.Entries() {
		if e.Length == 0 {
			if e.Offset > uint64(len(f.data)) {
				return fmt.Errorf("check layout of %s: %w", e.Name, ErrLayoutMismatch)
			}
			continue
		}
		span, ok := locate.Extent(e)
		if !ok {
			return fmt.Errorf("check layout of %s: %w", e.Name, ErrSizeOverflow)
		}
		if _, _, ok := f.bounds(span); !ok {
			return fmt.Errorf("check layout of %s: record ends at byte %d, file has %d: %w",
				e.Name, span.End(), len(f.data), ErrLayoutMismatch)
		}
	}
	return nil
}

// bounds converts a span into slice bounds of the mapping. A span whose
// final byte is a line terminator may end one byte past the mapping, which
// happens when the file lacks a trailing newline.
func (f *Fasta) bounds(span locate.Span) (lo, hi int, ok bool) {
	lo, hi, ok = sizing.Slice(span.Offset, span.Length, len(f.data))
	if !ok && span.Trailing {
		lo, hi, ok = sizing.Slice(span.Offset, span.Length-1, len(f.data))
	}
	return lo, hi, ok
}

// Close releases the mapping and any lock. Slices returned by View and
// ViewTruncated must not be used after Close. Close is idempotent.
func (f *Fasta) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.data = nil
	f.buf = nil
	var errs []error
	if f.mapping != nil {
		errs = append(errs, f.mapping.Close())
	}
	errs = append(errs, f.releaseLock())
	f.log().Debug("closed sequence file", "path", f.path)
	return errors.Join(errs...)
}

// Path returns the path of the sequence file.
func (f *Fasta) Path() string {
	return f.path
}

// Size returns the size of the mapped sequence file in bytes.
func (f *Fasta) Size() int64 {
	return int64(len(f.data))
}

// Index returns the index backing f. It must be treated as read-only.
func (f *Fasta) Index() *Index {
	return f.idx
}

// Len returns the number of records in the index.
func (f *Fasta) Len() int {
	return f.idx.Len()
}

// Names returns all record names in lexical order.
func (f *Fasta) Names() []string {
	return f.idx.Names()
}

// Entry returns the index entry for name.
func (f *Fasta) Entry(name string) (Entry, bool) {
	return f.idx.Lookup(name)
}

// Interface compliance.
var _ interface{ Close() error } = (*Fasta)(nil)
