package faidx

import "fmt"

// IndexSuffix is appended to a FASTA path to locate its companion index.
const IndexSuffix = ".fai"

// Open reads the index file at indexPath and maps the sequence file at
// fastaPath. The returned Fasta must be closed to release the mapping.
func Open(indexPath, fastaPath string, opts ...Option) (*Fasta, error) {
	idx, err := ReadIndexFile(indexPath)
	if err != nil {
		return nil, err
	}
	f, err := New(idx, fastaPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fastaPath, err)
	}
	return f, nil
}

// OpenFasta opens fastaPath using the index at fastaPath + ".fai".
func OpenFasta(fastaPath string, opts ...Option) (*Fasta, error) {
	return Open(fastaPath+IndexSuffix, fastaPath, opts...)
}
