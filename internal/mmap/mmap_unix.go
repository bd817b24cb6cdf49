//go:build unix

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED) //nolint:gosec // fd fits in int
	if err != nil {
		return nil, nil, err
	}
	// Access is driven by index lookups, not sequential scans.
	_ = unix.Madvise(data, unix.MADV_RANDOM) //nolint:errcheck // advisory only
	return data, unix.Munmap, nil
}
