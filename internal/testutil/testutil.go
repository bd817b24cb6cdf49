// Package testutil builds FASTA and index fixtures for tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meigma/faidx/internal/faitype"
)

// ExampleFasta is a two-record FASTA file wrapped at 28 bases per line.
const ExampleFasta = `>chr1
ACCTACGATCGACTGATCGTAGCTAGCT
CATCGATCGTACGGACGATCGATCGGTT
CACACCGGGCATGACTGATCGGGGGCCC
ACGTGTGTGCAGCGCGCGGCGCGCGCGG
>chr2
TTTTGATCGATCGGCGGGCGCGCGCGGC
CAGATTCGGGCGCGATTATATATTAGCT
CGACGGCGACTCGAGCTACACGTCGGGC
GCGAGCGGGACGCGCGGCGCGCGCGGCC
AAAAAAATTTTTATATATTATTACGCGC
CGACTCAGTCGACTGGGGGCGCGCGCGC
AAACCACA
`

// ExampleIndex is the index matching ExampleFasta.
const ExampleIndex = "chr1\t112\t6\t28\t29\nchr2\t176\t128\t28\t29\n"

// Record is a named sequence used to build fixtures.
type Record struct {
	Name  string
	Bases []byte
}

// BuildFasta lays out records as a FASTA file wrapped at lineBases bases
// per line and returns the file contents with the matching index entries.
func BuildFasta(records []Record, lineBases int) ([]byte, []faitype.Entry) {
	var buf bytes.Buffer
	entries := make([]faitype.Entry, 0, len(records))
	for _, r := range records {
		buf.WriteString(">" + r.Name + "\n")
		entries = append(entries, faitype.Entry{
			Name:      r.Name,
			Length:    uint64(len(r.Bases)),
			Offset:    uint64(buf.Len()), //nolint:gosec // non-negative
			LineBases: uint64(lineBases),
			LineWidth: uint64(lineBases + 1),
		})
		for i := 0; i < len(r.Bases); i += lineBases {
			end := min(i+lineBases, len(r.Bases))
			buf.Write(r.Bases[i:end])
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), entries
}

// EncodeIndex renders entries in the tab-separated index format.
func EncodeIndex(entries []faitype.Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SyntheticBases returns a deterministic base sequence of length n.
func SyntheticBases(n int, seed int) []byte {
	const alphabet = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[(i*7+i/3+seed)%len(alphabet)]
	}
	return b
}

// WriteFiles writes a FASTA file and its index into a temp directory
// and returns their paths.
func WriteFiles(tb testing.TB, fasta []byte, index string) (fastaPath, indexPath string) {
	tb.Helper()
	dir := tb.TempDir()
	fastaPath = filepath.Join(dir, "seq.fa")
	indexPath = fastaPath + ".fai"
	if err := os.WriteFile(fastaPath, fasta, 0o644); err != nil {
		tb.Fatalf("write fasta: %v", err)
	}
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		tb.Fatalf("write index: %v", err)
	}
	return fastaPath, indexPath
}

// WriteExample writes ExampleFasta and ExampleIndex into a temp directory.
func WriteExample(tb testing.TB) (fastaPath, indexPath string) {
	tb.Helper()
	return WriteFiles(tb, []byte(ExampleFasta), ExampleIndex)
}
