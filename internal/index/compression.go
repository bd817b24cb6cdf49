package index

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/meigma/faidx/internal/faitype"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectCompression identifies the stream encoding from its leading bytes.
func DetectCompression(header []byte) faitype.Compression {
	switch {
	case bytes.HasPrefix(header, zstdMagic):
		return faitype.CompressionZstd
	case bytes.HasPrefix(header, gzipMagic):
		return faitype.CompressionGzip
	default:
		return faitype.CompressionNone
	}
}

// Decompress wraps r in a decoder matching its leading bytes.
// Plain streams are returned unchanged. The caller must close the result.
func Decompress(r io.Reader) (io.ReadCloser, faitype.Compression, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, faitype.CompressionNone, fmt.Errorf("read index header: %w", err)
	}

	c := DetectCompression(header)
	switch c {
	case faitype.CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("open gzip index: %w", err)
		}
		return zr, c, nil
	case faitype.CompressionZstd:
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, c, fmt.Errorf("open zstd index: %w", err)
		}
		return zr.IOReadCloser(), c, nil
	default:
		return io.NopCloser(br), c, nil
	}
}

// DecodeStream decodes an index from r, transparently decompressing
// gzip and zstd streams.
func DecodeStream(r io.Reader) (*Index, error) {
	rc, c, err := Decompress(r)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	idx, err := Decode(rc)
	if err != nil {
		if c != faitype.CompressionNone {
			return nil, fmt.Errorf("decode %s index: %w", c, err)
		}
		return nil, err
	}
	return idx, nil
}

// DecodeFile reads and decodes the index file at path.
func DecodeFile(path string) (*Index, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()

	idx, err := DecodeStream(f)
	if err != nil {
		return nil, fmt.Errorf("read index file %s: %w", path, err)
	}
	return idx, nil
}
