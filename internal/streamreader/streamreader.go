// Package streamreader is the non-mmap fallback for inputs that cannot
// be mapped — a pipe, a socket, stdin — or that are small enough that
// mmap setup cost outweighs its benefit (spec §9 "Streaming fallback").
// It is grounded on original_source/inc/io.hxx's serial
// readEdgelistFormatStreamDo: a single getline loop feeding the body
// callback, as opposed to its #ifdef OPENMP sibling
// readEdgelistFormatStreamDoOmp. It shares internal/token (via
// internal/edgereader's block-level parsers, reused here a batch at a
// time) and internal/csrbuild with the mmap path; it does not share
// internal/block or the parallel scheduler, since there is exactly one
// goroutine here.
package streamreader

import (
	"bufio"
	"io"

	"github.com/puzzlef/gocsr/internal/edgereader"
	"github.com/puzzlef/gocsr/internal/token"
)

// BatchLines is the read-ahead batch size, carried over from the
// original's OpenMP variant, which parses READ lines per
// io.hxx:"const int LINES = 128 * 1024" batch (doubled here since this
// path has no thread pool to keep fed, only a buffer to amortize
// bufio.Scanner's per-line overhead).
const BatchLines = 256 * 1024

// Options mirrors edgereader.Options minus the parallel-only knobs
// (Partitions, MaxThreads, BlockSize): there is one worker and one
// degree-histogram partition.
type Options struct {
	Symmetric bool
	Weighted  bool
	Rebase    bool
	Checked   bool
	Separator byte
	Rows      uint64
	Cols      uint64
}

// Read scans r line by line, batching up to BatchLines lines at a time
// into a single buffer reused across batches, then hands each batch to
// edgereader's existing checked/unchecked block parser — the same code
// the mmap path runs per block, just run here on one goroutine against
// one buffer instead of many goroutines against many mmap slices.
func Read[K token.Unsigned, W token.Float](r io.Reader, opts Options) (edgereader.Result[K, W], error) {
	degrees := make([][]uint64, 1)
	degrees[0] = make([]uint64, opts.Rows)
	var ws edgereader.WorkerScratch[K, W]

	emit := func(u, v K, w W) {
		ws.Sources = append(ws.Sources, u)
		ws.Targets = append(ws.Targets, v)
		if opts.Weighted {
			ws.Weights = append(ws.Weights, w)
		}
		ws.Count++
		if uu := uint64(u); uu < opts.Rows {
			degrees[0][uu]++
		}
	}

	eopts := edgereader.Options{
		Symmetric: opts.Symmetric,
		Weighted:  opts.Weighted,
		Rebase:    opts.Rebase,
		Checked:   opts.Checked,
		Separator: opts.Separator,
		Rows:      opts.Rows,
		Cols:      opts.Cols,
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)

	var buf []byte
	lines := 0
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if opts.Checked {
			if err := edgereader.ReadBlockChecked[K, W](buf, 0, len(buf), eopts, emit); err != nil {
				return err
			}
		} else {
			edgereader.ReadBlockUnchecked[K, W](buf, 0, len(buf), eopts, emit)
		}
		buf = buf[:0]
		lines = 0
		return nil
	}

	for sc.Scan() {
		buf = append(buf, sc.Bytes()...)
		buf = append(buf, '\n')
		lines++
		if lines >= BatchLines {
			if err := flush(); err != nil {
				return edgereader.Result[K, W]{}, err
			}
		}
	}
	if err := flush(); err != nil {
		return edgereader.Result[K, W]{}, err
	}
	if err := sc.Err(); err != nil {
		return edgereader.Result[K, W]{}, err
	}

	return edgereader.Result[K, W]{
		Scratch:      []edgereader.WorkerScratch[K, W]{ws},
		Degrees:      degrees,
		EdgesWritten: int64(ws.Count),
	}, nil
}
