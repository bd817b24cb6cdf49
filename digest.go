package faidx

import (
	"bytes"
	"context"
	_ "crypto/sha256" // register digest.SHA256
	_ "crypto/sha512" // register digest.SHA384 and digest.SHA512
	"fmt"
	"io"
	"runtime"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/faidx/internal/locate"
)

// Digest returns the content digest of the named record's bases, with line
// terminators removed. Two records with identical bases have identical
// digests regardless of how their lines are wrapped.
//
// The record is hashed straight from the mapping without copying.
// Digest is safe for concurrent use.
func (f *Fasta) Digest(name string) (digest.Digest, error) {
	if f.closed {
		return "", fmt.Errorf("digest %s: %w", name, ErrClosed)
	}
	e, ok := f.idx.Lookup(name)
	if !ok {
		return "", fmt.Errorf("digest %s: %w", name, ErrNotFound)
	}

	d := f.digestAlg.Digester()
	if e.Length == 0 {
		return d.Digest(), nil
	}

	span, ok := locate.Extent(e)
	if !ok {
		return "", fmt.Errorf("digest %s: %w", name, ErrSizeOverflow)
	}
	lo, hi, ok := f.bounds(span)
	if !ok {
		return "", fmt.Errorf("digest %s: %w", name, ErrLayoutMismatch)
	}
	if err := writeStripped(d.Hash(), f.data[lo:hi]); err != nil {
		return "", fmt.Errorf("digest %s: %w", name, err)
	}
	return d.Digest(), nil
}

// Digests returns the digest of every record, keyed by name.
//
// Records are hashed concurrently, bounded by WithDigestConcurrency.
// The first failure cancels the remaining work.
func (f *Fasta) Digests(ctx context.Context) (map[string]digest.Digest, error) {
	names := f.idx.Names()
	results := make([]digest.Digest, len(names))

	limit := f.digestConcurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, name := range names {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dgst, err := f.Digest(name)
			if err != nil {
				return err
			}
			results[i] = dgst
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]digest.Digest, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	f.log().Debug("digested records", "records", len(out), "algorithm", f.digestAlg)
	return out, nil
}

// writeStripped writes src to w, dropping line terminators.
func writeStripped(w io.Writer, src []byte) error {
	for len(src) > 0 {
		i := bytes.IndexByte(src, terminator)
		if i < 0 {
			_, err := w.Write(src)
			return err
		}
		if i > 0 {
			if _, err := w.Write(src[:i]); err != nil {
				return err
			}
		}
		src = src[i+1:]
	}
	return nil
}
