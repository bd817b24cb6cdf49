package faidx

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/faidx/internal/testutil"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	fa := openExample(t)
	tests := []struct {
		name       string
		record     string
		start, end uint64
		want       string
	}{
		{"chr1 head", "chr1", 0, 10, "ACCTACGATC"},
		{"chr2 head", "chr2", 0, 10, "TTTTGATCGA"},
		{"chr1 over newline", "chr1", 20, 30, "AGCTAGCTCA"},
		{"chr2 over newline", "chr2", 20, 30, "CGCGCGGCCA"},
		{"chr1 tail", "chr1", 100, 112, "CGGCGCGCGCGG"},
		{"chr2 partial last line", "chr2", 170, 176, "ACCACA"},
		{"chr1 middle", "chr1", 50, 80, "TCGGTTCACACCGGGCATGACTGATCGGGG"},
		{"single base", "chr1", 27, 28, "T"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Query shares a buffer; subtests run serially.
			got, err := fa.Query(tt.record, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestQuery_NoTerminators(t *testing.T) {
	t.Parallel()

	fa := openExample(t)
	seq, err := fa.Query("chr1", 0, 40)
	require.NoError(t, err)
	assert.Len(t, seq, 40)
	assert.Equal(t, 0, bytes.Count(seq, []byte{'\n'}))
}

func TestView(t *testing.T) {
	t.Parallel()

	fa := openExample(t)

	seq, err := fa.View("chr1", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []byte("ACCTACGATC"), seq)

	seq, err = fa.View("chr1", 20, 30)
	require.NoError(t, err)
	assert.Equal(t, []byte("AGCTAGCT\nCA"), seq)
	assert.Len(t, seq, 11)
	assert.Equal(t, byte('\n'), seq[8])
	assert.Equal(t, 1, bytes.Count(seq, []byte{'\n'}))

	seq, err = fa.View("chr2", 20, 30)
	require.NoError(t, err)
	assert.Equal(t, []byte("CGCGCGGC\nCA"), seq)

	seq, err = fa.View("chr1", 0, 40)
	require.NoError(t, err)
	assert.Len(t, seq, 41)

	seq, err = fa.View("chr1", 50, 80)
	require.NoError(t, err)
	assert.Len(t, seq, 31)
	assert.Len(t, bytes.ReplaceAll(seq, []byte{'\n'}, nil), 30)
}

func TestView_CapacityLimited(t *testing.T) {
	t.Parallel()

	fa := openExample(t)
	seq, err := fa.View("chr1", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, len(seq), cap(seq), "appending must not write into the mapping")
}

func TestTruncated(t *testing.T) {
	t.Parallel()

	fa := openExample(t)

	_, err := fa.Query("chr1", 100, 150)
	require.ErrorIs(t, err, ErrEndOutOfRange)
	_, err = fa.View("chr1", 100, 150)
	require.ErrorIs(t, err, ErrEndOutOfRange)

	seq, err := fa.QueryTruncated("chr1", 100, 150)
	require.NoError(t, err)
	assert.Len(t, seq, 12)
	assert.Equal(t, "CGGCGCGCGCGG", string(seq))

	view, err := fa.ViewTruncated("chr1", 100, 150)
	require.NoError(t, err)
	assert.Len(t, view, 13)
	assert.Equal(t, 1, bytes.Count(view, []byte{'\n'}))
	assert.Equal(t, 12, len(view)-bytes.Count(view, []byte{'\n'}))

	// Within bounds truncating and bounded variants agree.
	seq, err = fa.QueryTruncated("chr2", 20, 30)
	require.NoError(t, err)
	assert.Equal(t, "CGCGCGGCCA", string(seq))
}

func TestQuery_Errors(t *testing.T) {
	t.Parallel()

	fa := openExample(t)
	tests := []struct {
		name       string
		record     string
		start, end uint64
		bounded    error
		truncating error
	}{
		{"start past end", "chr1", 130, 150, ErrStartOutOfRange, ErrStartOutOfRange},
		{"start at length", "chr1", 112, 113, ErrStartOutOfRange, ErrStartOutOfRange},
		{"end past length", "chr1", 100, 150, ErrEndOutOfRange, nil},
		{"inverted", "chr1", 130, 120, ErrEmptyInterval, ErrEmptyInterval},
		{"inverted in range", "chr1", 20, 10, ErrEmptyInterval, ErrEmptyInterval},
		{"empty in range", "chr1", 10, 10, ErrEmptyInterval, ErrEmptyInterval},
		{"empty out of range", "chr1", 130, 130, ErrEmptyInterval, ErrEmptyInterval},
		{"missing record", "chr3", 130, 150, ErrNotFound, ErrNotFound},
		{"missing record valid interval", "chr3", 0, 10, ErrNotFound, ErrNotFound},
		{"missing record empty interval", "chr3", 5, 5, ErrNotFound, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fa.Query(tt.record, tt.start, tt.end)
			assertErr(t, tt.bounded, err)
			_, err = fa.View(tt.record, tt.start, tt.end)
			assertErr(t, tt.bounded, err)
			_, err = fa.AppendQuery(nil, tt.record, tt.start, tt.end)
			assertErr(t, tt.bounded, err)

			_, err = fa.QueryTruncated(tt.record, tt.start, tt.end)
			assertErr(t, tt.truncating, err)
			_, err = fa.ViewTruncated(tt.record, tt.start, tt.end)
			assertErr(t, tt.truncating, err)
			_, err = fa.AppendQueryTruncated(nil, tt.record, tt.start, tt.end)
			assertErr(t, tt.truncating, err)
		})
	}
}

func assertErr(t *testing.T, want, got error) {
	t.Helper()
	if want == nil {
		assert.NoError(t, got)
		return
	}
	assert.ErrorIs(t, got, want)
}

func TestQuery_ErrorMessage(t *testing.T) {
	t.Parallel()

	fa := openExample(t)
	_, err := fa.View("chr1", 100, 150)
	require.Error(t, err)
	assert.Equal(t, "view chr1:100-150: faidx: end beyond record end", err.Error())
}

func TestQuery_UsableAfterError(t *testing.T) {
	t.Parallel()

	fa := openExample(t)
	_, err := fa.Query("chr3", 0, 10)
	require.ErrorIs(t, err, ErrNotFound)

	seq, err := fa.Query("chr1", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "ACCTACGATC", string(seq))
}

func TestQuery_BufferReuse(t *testing.T) {
	t.Parallel()

	fa := openExample(t)
	first, err := fa.Query("chr1", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "ACCTACGATC", string(first))

	second, err := fa.Query("chr2", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "TTTTGATCGA", string(second))
	assert.Equal(t, "TTTTGATCGA", string(first), "earlier results alias the shared buffer")
}

func TestAppendQuery(t *testing.T) {
	t.Parallel()

	fa := openExample(t)

	dst := []byte("prefix:")
	dst, err := fa.AppendQuery(dst, "chr1", 20, 30)
	require.NoError(t, err)
	assert.Equal(t, "prefix:AGCTAGCTCA", string(dst))

	dst, err = fa.AppendQueryTruncated(dst, "chr1", 100, 150)
	require.NoError(t, err)
	assert.Equal(t, "prefix:AGCTAGCTCACGGCGCGCGCGG", string(dst))

	before := string(dst)
	out, err := fa.AppendQuery(dst, "chr1", 100, 150)
	require.ErrorIs(t, err, ErrEndOutOfRange)
	assert.Equal(t, before, string(out), "dst returned unchanged on error")
}

func TestSequence(t *testing.T) {
	t.Parallel()

	fa := openExample(t)
	seq, err := fa.Sequence("chr2")
	require.NoError(t, err)
	assert.Len(t, seq, 176)
	assert.True(t, bytes.HasPrefix(seq, []byte("TTTTGATCGA")))
	assert.True(t, bytes.HasSuffix(seq, []byte("AAACCACA")))

	_, err = fa.Sequence("chr3")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSequence_EmptyRecord(t *testing.T) {
	t.Parallel()

	fastaPath, indexPath := testutil.WriteFiles(t, []byte(">empty\n>r\nAC\n"), "empty\t0\t7\t60\t61\nr\t2\t10\t60\t61\n")
	fa, err := Open(indexPath, fastaPath)
	require.NoError(t, err)
	defer fa.Close()

	seq, err := fa.Sequence("empty")
	require.NoError(t, err)
	assert.Empty(t, seq)

	_, err = fa.Query("empty", 0, 1)
	require.ErrorIs(t, err, ErrStartOutOfRange)
}

// TestQuery_Properties checks the documented laws over every interval of
// several synthetic records.
func TestQuery_Properties(t *testing.T) {
	t.Parallel()

	for _, lineBases := range []int{1, 3, 8, 60} {
		t.Run(fmt.Sprintf("bases=%d", lineBases), func(t *testing.T) {
			t.Parallel()
			records := []testutil.Record{
				{Name: "a", Bases: testutil.SyntheticBases(17, 0)},
				{Name: "b", Bases: testutil.SyntheticBases(24, 1)},
			}
			fa := openRecords(t, records, lineBases)

			for _, r := range records {
				n := uint64(len(r.Bases))
				for start := uint64(0); start < n; start++ {
					_, err := fa.Query(r.Name, start, start)
					require.ErrorIs(t, err, ErrEmptyInterval)

					for end := start + 1; end <= n; end++ {
						seq, err := fa.Query(r.Name, start, end)
						require.NoError(t, err)
						require.Equal(t, r.Bases[start:end], seq)
						copied := bytes.Clone(seq)

						view, err := fa.View(r.Name, start, end)
						require.NoError(t, err)
						crossings := bytes.Count(view, []byte{'\n'})
						require.Len(t, view, len(copied)+crossings)
						require.Equal(t, copied, bytes.ReplaceAll(view, []byte{'\n'}, nil))
					}

					over := n + 5
					truncated, err := fa.QueryTruncated(r.Name, start, over)
					require.NoError(t, err)
					truncCopy := bytes.Clone(truncated)
					bounded, err := fa.Query(r.Name, start, n)
					require.NoError(t, err)
					require.Equal(t, bounded, truncCopy)

					tv, err := fa.ViewTruncated(r.Name, start, over)
					require.NoError(t, err)
					bv, err := fa.View(r.Name, start, n)
					require.NoError(t, err)
					require.Equal(t, bv, tv)
				}

				for _, start := range []uint64{n, n + 1, n + 100} {
					_, err := fa.Query(r.Name, start, start+1)
					require.ErrorIs(t, err, ErrStartOutOfRange)
					_, err = fa.QueryTruncated(r.Name, start, start+1)
					require.ErrorIs(t, err, ErrStartOutOfRange)
				}
			}
		})
	}
}

func TestView_Concurrent(t *testing.T) {
	t.Parallel()

	records := []testutil.Record{
		{Name: "a", Bases: testutil.SyntheticBases(1000, 0)},
		{Name: "b", Bases: testutil.SyntheticBases(777, 2)},
	}
	fa := openRecords(t, records, 60)

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := records[w%len(records)]
			var dst []byte
			for start := uint64(w); start < uint64(len(r.Bases)); start += 37 {
				end := min(start+90, uint64(len(r.Bases)))
				view, err := fa.View(r.Name, start, end)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, r.Bases[start:end], bytes.ReplaceAll(view, []byte{'\n'}, nil))

				dst, err = fa.AppendQuery(dst[:0], r.Name, start, end)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, r.Bases[start:end], dst)
			}
		}()
	}
	wg.Wait()
}

func TestAppendStripped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"ACGT", "ACGT"},
		{"AC\nGT", "ACGT"},
		{"\nACGT\n", "ACGT"},
		{"\n\n", ""},
		{"A\r\nC", "A\rC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(appendStripped(nil, []byte(tt.in))), "input %q", tt.in)
	}
}
