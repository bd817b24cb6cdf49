package faitype

import "strconv"

// Entry describes the physical layout of one named sequence in a FASTA file.
type Entry struct {
	// Name is the record identifier (the first word of the FASTA header).
	Name string

	// Length is the number of bases in the record, excluding line terminators.
	Length uint64

	// Offset is the absolute byte offset of the record's first base.
	Offset uint64

	// LineBases is the number of bases on each full line.
	LineBases uint64

	// LineWidth is the number of bytes on each full line, including the terminator.
	LineWidth uint64
}

// Lines returns the number of wrapped lines the record occupies.
// A record with no bases occupies no lines.
func (e Entry) Lines() uint64 {
	if e.LineBases == 0 || e.Length == 0 {
		return 0
	}
	return (e.Length + e.LineBases - 1) / e.LineBases
}

// Multiline reports whether the record wraps onto more than one line.
func (e Entry) Multiline() bool {
	return e.Lines() > 1
}

// String encodes the entry as a single tab-separated index line,
// without the trailing newline.
func (e Entry) String() string {
	b := make([]byte, 0, len(e.Name)+48)
	b = append(b, e.Name...)
	for _, v := range [...]uint64{e.Length, e.Offset, e.LineBases, e.LineWidth} {
		b = append(b, '\t')
		b = strconv.AppendUint(b, v, 10)
	}
	return string(b)
}
