package index

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/meigma/faidx/internal/faitype"
)

const (
	numFields = 5

	// maxLineSize bounds a single index line; record names are short in practice.
	maxLineSize = 1 << 20
)

var (
	errFieldCount = fmt.Errorf("expected %d tab-separated fields", numFields)
	errEmptyName  = errors.New("empty record name")
	errZeroBases  = errors.New("line_bases must be positive")
	errNarrowLine = errors.New("line_width must exceed line_bases")
)

// Decode reads a plain-text index from r.
//
// Records with duplicate names are resolved last-write-wins. On the first
// malformed line Decode returns a *faitype.ParseError and no index.
func Decode(r io.Reader) (*Index, error) {
	idx := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			continue
		}
		e, err := parseLine(text, line)
		if err != nil {
			return nil, err
		}
		idx.Insert(e)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &faitype.ParseError{Line: line + 1, Err: err}
		}
		return nil, fmt.Errorf("read index: %w", err)
	}
	return idx, nil
}

func parseLine(text string, line int) (faitype.Entry, error) {
	fields := strings.Split(text, "\t")
	if len(fields) != numFields {
		return faitype.Entry{}, &faitype.ParseError{
			Line: line,
			Err:  fmt.Errorf("%w, got %d", errFieldCount, len(fields)),
		}
	}
	if fields[0] == "" {
		return faitype.Entry{}, &faitype.ParseError{Line: line, Field: "name", Err: errEmptyName}
	}

	e := faitype.Entry{Name: fields[0]}
	for i, dst := range [...]*uint64{&e.Length, &e.Offset, &e.LineBases, &e.LineWidth} {
		v, err := strconv.ParseUint(fields[i+1], 10, 64)
		if err != nil {
			return faitype.Entry{}, &faitype.ParseError{Line: line, Field: fieldNames[i+1], Err: err}
		}
		*dst = v
	}

	if e.LineBases == 0 {
		return faitype.Entry{}, &faitype.ParseError{Line: line, Field: "line_bases", Err: errZeroBases}
	}
	if e.Multiline() && e.LineWidth <= e.LineBases {
		return faitype.Entry{}, &faitype.ParseError{Line: line, Field: "line_width", Err: errNarrowLine}
	}
	return e, nil
}

var fieldNames = [numFields]string{"name", "length", "offset", "line_bases", "line_width"}
