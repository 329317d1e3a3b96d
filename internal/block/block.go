// Package block implements spec §4.E: splitting the mapped edge-list body
// into gap-free, overlap-free, line-aligned ranges so each can be handed
// to an independent worker. It is grounded on
// internal/indexer/scanner.go's Scan/findSafeRecordBoundary, simplified
// to newline-only alignment since edge-list bodies have no quoted,
// multi-line records to account for.
package block

import (
	"github.com/puzzlef/gocsr/internal/token"
)

// Range is a half-open byte range [Begin, End) aligned so that End is
// either len(data) or the position immediately after a newline.
type Range struct {
	Begin int
	End   int
}

// Split partitions data[bodyOffset:] into at most n gap-free, line-aligned
// ranges. Boundaries are computed up front from the whole buffer before
// any worker starts, per spec §5 ("no worker ever crosses another
// worker's boundary, and no byte is skipped or double-counted"). Empty
// trailing ranges (more partitions requested than there is data to
// split) are omitted from the result.
func Split(data []byte, bodyOffset int, n int) []Range {
	if n < 1 {
		n = 1
	}
	size := len(data)
	if bodyOffset >= size {
		return nil
	}

	bodyLen := size - bodyOffset
	chunkSize := bodyLen / n
	if chunkSize == 0 {
		chunkSize = 1
	}

	bounds := make([]int, n+1)
	bounds[0] = bodyOffset
	bounds[n] = size

	for i := 1; i < n; i++ {
		hint := bodyOffset + i*chunkSize
		if hint >= size {
			bounds[i] = size
		} else {
			bounds[i] = alignToLineStart(data, hint, size)
		}
	}

	ranges := make([]Range, 0, n)
	for i := 0; i < n; i++ {
		begin, end := bounds[i], bounds[i+1]
		if begin >= end {
			continue
		}
		ranges = append(ranges, Range{Begin: begin, End: end})
	}
	return ranges
}

// alignToLineStart advances hint to the first byte following the next
// newline at or after hint, i.e. the start of a whole line. Returns size
// if there is no further newline.
func alignToLineStart(data []byte, hint, size int) int {
	nl := token.FindNextLine(data, hint, size)
	return nl
}
