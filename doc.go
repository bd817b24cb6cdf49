// Package faidx provides random access to subsequences of large FASTA files
// through a samtools-style positional index (.fai).
//
// A FASTA file stores each record as fixed-width lines of bases. The index
// records, per sequence, its length, the byte offset of its first base, and
// the number of bases and bytes on each full line. With that layout a base
// interval translates directly into a byte range, so queries never scan the
// sequence file. The file is memory-mapped once and every query slices the
// mapping.
//
// # Quick Start
//
//	fa, err := faidx.Open("ref.fa.fai", "ref.fa")
//	if err != nil {
//	    return err
//	}
//	defer fa.Close()
//
//	seq, err := fa.Query("chr1", 1000, 1050)
//
// # Query Variants
//
// Queries come in two families. [Fasta.Query] and [Fasta.QueryTruncated]
// copy the bases into a buffer owned by the Fasta, dropping line
// terminators; the returned slice is overwritten by the next such call, so
// these methods are not safe for concurrent use. [Fasta.View] and
// [Fasta.ViewTruncated] return a slice of the mapping itself, line
// terminators included, and are safe for concurrent use.
// [Fasta.AppendQuery] copies into a caller-supplied buffer and is also
// safe for concurrent use.
//
// Bounded variants fail with [ErrEndOutOfRange] when the interval runs
// past the record; truncating variants clamp the end to the record length.
//
// # Line Terminators
//
// Offsets are computed assuming a single-byte line terminator
// (LineWidth == LineBases+1). Indexes of CRLF files are accepted but spans
// computed from them are short by one byte per line crossed.
package faidx
