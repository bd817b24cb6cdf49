package faidx

import (
	"log/slog"

	"github.com/opencontainers/go-digest"
)

// Option configures a Fasta.
type Option func(*Fasta)

// WithLogger sets the logger for open, close and layout diagnostics.
// A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fasta) {
		f.logger = logger
	}
}

// WithLayoutCheck controls whether New verifies that every index entry
// fits inside the sequence file (default: false).
//
// When enabled, New fails with ErrLayoutMismatch if any record extends
// past the end of the file. Queries always bounds-check their own span.
func WithLayoutCheck(enabled bool) Option {
	return func(f *Fasta) {
		f.layoutCheck = enabled
	}
}

// WithSharedLock takes a shared advisory lock on the sequence file for the
// lifetime of the Fasta (default: false).
//
// Writers that take an exclusive lock before rewriting the file will then
// wait until the Fasta is closed. New fails with ErrLocked if a writer
// already holds the lock.
func WithSharedLock(enabled bool) Option {
	return func(f *Fasta) {
		f.sharedLock = enabled
	}
}

// WithBufferSize sets the initial capacity of the query buffer.
// Values <= 0 leave the buffer to grow on demand.
func WithBufferSize(n int) Option {
	return func(f *Fasta) {
		if n < 0 {
			n = 0
		}
		f.bufSize = n
	}
}

// WithDigestAlgorithm sets the algorithm used by Digest and Digests
// (default: digest.Canonical, sha256).
func WithDigestAlgorithm(alg digest.Algorithm) Option {
	return func(f *Fasta) {
		f.digestAlg = alg
	}
}

// WithDigestConcurrency sets how many records Digests hashes at once.
// Values <= 0 use GOMAXPROCS.
func WithDigestConcurrency(n int) Option {
	return func(f *Fasta) {
		f.digestConcurrency = n
	}
}
