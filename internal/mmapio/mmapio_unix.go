//go:build unix

package mmapio

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/puzzlef/gocsr/internal/errs"
)

func mapReadOnly(f *os.File, size int64) (ByteView, func() error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, errs.ErrResourceExhausted
	}
	// Best-effort read-ahead hint; failure here is not fatal to the map.
	_ = unix.Madvise(data, unix.MADV_WILLNEED)

	released := false
	release := func() error {
		if released {
			return nil
		}
		released = true
		return unix.Munmap(data)
	}
	return ByteView(data), release, nil
}

func allocScratch[T any](n int) ([]T, func(), error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	size := n * elemSize

	raw, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, nil, errs.ErrResourceExhausted
	}

	slice := unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)

	released := false
	free := func() {
		if released {
			return
		}
		released = true
		_ = unix.Munmap(raw)
	}
	return slice, free, nil
}
