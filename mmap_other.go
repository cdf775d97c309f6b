//go:build !unix

package extractous

import (
	"io"
	"os"
)

// mapFile falls back to a plain read on platforms without mmap support.
func mapFile(f *os.File, size int64) ([]byte, func(), error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}
