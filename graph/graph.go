// Package graph is the loader's public façade (spec §2's "public
// façade" row): it wires the header reader, block splitter, parallel
// edgelist reader, and CSR builder into the single entry point
// Load/LoadBytes. It is grounded on internal/indexer/indexer.go's
// Indexer/IndexerConfig/Run() shape — a config struct driving a single
// orchestration call — and its fmt.Errorf("...: %w", err) wrapping
// idiom.
package graph

import (
	"fmt"

	"github.com/puzzlef/gocsr/internal/csrbuild"
	"github.com/puzzlef/gocsr/internal/edgereader"
	"github.com/puzzlef/gocsr/internal/errs"
	"github.com/puzzlef/gocsr/internal/header"
	"github.com/puzzlef/gocsr/internal/logging"
	"github.com/puzzlef/gocsr/internal/mmapio"
	"github.com/puzzlef/gocsr/internal/token"
)

// Unsigned and Float re-export the tokenizer's numeric-width constraints
// so callers of Load never need to import internal/token directly.
type Unsigned = token.Unsigned
type Float = token.Float

// CSR is the loader's output graph (spec §3/§6): Offsets has length
// Rows+1; EdgeKeys has length Offsets[Rows]; EdgeValues mirrors it when
// the graph is weighted and is nil otherwise. Neighbor ordering within a
// vertex is unspecified.
type CSR[K Unsigned, W Float] = csrbuild.CSR[K, W]

// Options controls every tunable spec.md names across §4.F/§4.G/§6.
type Options struct {
	// Weighted parses a trailing edge weight on each body line; when
	// false every edge gets weight 1 and EdgeValues stays nil.
	Weighted bool
	// Partitions is the degree-histogram partition count P (spec §4.G);
	// 0 defaults to 1 (no partitioning).
	Partitions int
	// MaxThreads overrides runtime.GOMAXPROCS(0); 0 uses the default.
	MaxThreads int
	// Checked selects the checked body reader over the unchecked one
	// (spec §4.F).
	Checked bool
	// Format selects the input's header convention; FormatAuto detects
	// it from the leading bytes.
	Format Format
	// Separator is an extra field-separator byte for EdgeList/CSV
	// bodies, e.g. ','. 0 or ' ' means none.
	Separator byte
	// BlockSize overrides edgereader.DefaultBlockSize; 0 uses it.
	BlockSize int
	// OneBased overrides whether vertex ids are rebased by subtracting 1
	// (spec §4.F). Nil defaults to the format's convention: MTX and COO
	// are 1-based, EdgeList/CSV is 0-based; either can declare the other
	// convention explicitly (spec §8 scenario 3: a 1-based EdgeList).
	OneBased *bool
}

// Load opens, maps, and parses the graph at path, per Options. The
// mapping is released before Load returns; the returned CSR owns its own
// backing arrays.
func Load[K Unsigned, W Float](path string, opts Options) (*CSR[K, W], error) {
	view, release, err := mmapio.OpenAndMap(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer release()

	csr, err := LoadBytes[K, W](view, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return csr, nil
}

// LoadBytes runs the same pipeline as Load directly against an
// in-memory byte view, letting tests and streaming callers bypass the
// mmap step.
func LoadBytes[K Unsigned, W Float](data []byte, opts Options) (*CSR[K, W], error) {
	log := logging.Default()

	format := opts.Format
	if format == FormatAuto {
		format = detectFormat(data)
	}

	var h header.Header
	switch format {
	case FormatMTX, FormatCOO:
		var err error
		h, err = header.Read(data)
		if err != nil {
			return nil, err
		}
	case FormatEdgeList:
		h = header.Header{BodyOffset: 0}
	default:
		return nil, fmt.Errorf("%w: unrecognized format %v", errs.ErrBadHeader, format)
	}

	rebase := format == FormatMTX || format == FormatCOO
	if opts.OneBased != nil {
		rebase = *opts.OneBased
	}
	partitions := opts.Partitions
	if partitions <= 0 {
		partitions = 1
	}

	readOpts := edgereader.Options{
		Symmetric:  h.Symmetric,
		Weighted:   opts.Weighted,
		Rebase:     rebase,
		Checked:    opts.Checked,
		Separator:  opts.Separator,
		BlockSize:  opts.BlockSize,
		Partitions: partitions,
		MaxThreads: opts.MaxThreads,
		Rows:       h.Rows,
		Cols:       h.Cols,
	}

	log.Info("loading graph", "format", format, "rows", h.Rows, "cols", h.Cols,
		"weighted", opts.Weighted, "checked", opts.Checked)

	res, err := edgereader.ReadParallel[K, W](data, h.BodyOffset, h.Rows, readOpts)
	if err != nil {
		return nil, err
	}

	rows, cols := h.Rows, h.Cols
	if rows == 0 {
		// EdgeList/CSV bodies declare no size line (spec §6); derive
		// the bounds from the edges actually seen, then rebuild the
		// degree histogram against the now-known row count — the
		// second of this builder's two passes over the edge stream.
		rows, cols = discoverBounds(res)
		res.Degrees = rebuildDegrees(res, rows, partitions)
	}

	csr := csrbuild.Build[K, W](rows, cols, opts.Weighted, res)
	log.Info("loaded graph", "rows", csr.Rows, "edges", len(csr.EdgeKeys))
	return csr, nil
}

func discoverBounds[K Unsigned, W Float](res edgereader.Result[K, W]) (rows, cols uint64) {
	var maxID uint64
	for _, ws := range res.Scratch {
		for i := 0; i < ws.Count; i++ {
			if u := uint64(ws.Sources[i]); u > maxID {
				maxID = u
			}
			if v := uint64(ws.Targets[i]); v > maxID {
				maxID = v
			}
		}
	}
	return maxID + 1, maxID + 1
}

func rebuildDegrees[K Unsigned, W Float](res edgereader.Result[K, W], rows uint64, partitions int) [][]uint64 {
	degrees := make([][]uint64, partitions)
	for i := range degrees {
		degrees[i] = make([]uint64, rows)
	}
	for t := range res.Scratch {
		ws := &res.Scratch[t]
		part := t % partitions
		for i := 0; i < ws.Count; i++ {
			degrees[part][uint64(ws.Sources[i])]++
		}
	}
	return degrees
}
