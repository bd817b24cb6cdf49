// Package index holds the name-to-layout table of a FASTA index and
// decodes it from the tab-separated text format written by samtools faidx.
//
// An index line carries five columns in fixed order:
//
//	name	length	offset	line_bases	line_width
//
// There is no header row. Decoding is all or nothing: the first malformed
// line aborts the decode with a *faitype.ParseError.
package index
