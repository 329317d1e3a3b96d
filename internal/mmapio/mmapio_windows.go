//go:build windows

package mmapio

import (
	"io"
	"os"

	"github.com/puzzlef/gocsr/internal/errs"
)

// mapReadOnly falls back to a full read on Windows, matching the
// teacher's own common/mmap_windows.go TODO ("Fallback to ReadAll on
// Windows for now to avoid unsafe pointer arithmetic complexity without
// external lib"). Throughput on this path does not match the mmap path,
// same as the teacher's documented limitation.
func mapReadOnly(f *os.File, size int64) (ByteView, func() error, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, errs.ErrResourceExhausted
	}
	return ByteView(data), func() error { return nil }, nil
}

// allocScratch falls back to a plain make(), since anonymous mmap has no
// simple cross-Windows-version equivalent without cgo.
func allocScratch[T any](n int) ([]T, func(), error) {
	return make([]T, n), func() {}, nil
}
