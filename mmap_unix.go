//go:build unix

package extractous

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps the file read-only and returns the view plus an unmap
// func. The view is valid only until unmap runs; callers must finish the
// extraction call before releasing it. A concurrent external writer to
// the mapped file is undefined behavior at the OS level.
func mapFile(f *os.File, size int64) ([]byte, func(), error) {
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, func() { _ = unix.Munmap(data) }, nil
}
