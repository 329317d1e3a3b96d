// Package mmapio implements spec §4.I: acquiring a read-only byte view of
// the input file and allocating large zero-backed output buffers outside
// the small-object heap. It is the Go rendition of
// original_source/main.cxx's mapFileToMemory/allocateMemoryMmap.
package mmapio

import (
	"os"

	"github.com/puzzlef/gocsr/internal/errs"
)

// ByteView is an immutable, contiguous, read-only view of the mapped
// input file, shared freely across workers (spec §3/§5).
type ByteView []byte

// MapReadOnly maps f read-only, private, and advises the kernel the
// pages will be needed sequentially (best effort, matching
// madvise(MADV_WILLNEED) in original_source/main.cxx). The returned
// release function must be called exactly once to unmap.
func MapReadOnly(f *os.File) (ByteView, func() error, error) {
	st, err := f.Stat()
	if err != nil {
		return nil, nil, errs.ErrResourceExhausted
	}
	if st.Size() == 0 {
		return ByteView{}, func() error { return nil }, nil
	}
	return mapReadOnly(f, st.Size())
}

// OpenAndMap opens path read-only and maps it, reporting any os.Open
// failure as errs.ErrNotFound per spec §7 (the os.Open error itself is
// not kept).
func OpenAndMap(path string) (ByteView, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errs.ErrNotFound
	}
	view, release, merr := MapReadOnly(f)
	// The file descriptor is not needed once the mapping is established;
	// the kernel keeps the backing pages alive independently of fd.
	_ = f.Close()
	if merr != nil {
		return nil, nil, merr
	}
	return view, release, nil
}

// AllocScratch allocates n elements of T as anonymous read-write memory,
// bypassing the small-object allocator the way the CSR arrays and
// per-worker scratch buffers need to (spec §4.I) so huge allocations can
// be released wholesale rather than fragmenting the Go heap.
func AllocScratch[T any](n int) ([]T, func(), error) {
	if n <= 0 {
		return []T{}, func() {}, nil
	}
	return allocScratch[T](n)
}
