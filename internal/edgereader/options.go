// Package edgereader implements spec §4.F/§4.G: parsing edge-list body
// lines from a mapped byte range, both as a single block (checked or
// unchecked) and as a dynamically scheduled parallel sweep over many
// blocks. It is grounded on internal/indexer/scanner.go's Scan goroutine
// dispatch and on original_source/inc/io.hxx's
// readEdgelistFormatStreamDo/readEdgelistFormatStreamDoOmp.
package edgereader

// DefaultBlockSize is the block granularity spec §4.G names as a
// compile-time constant sized to amortize goroutine dispatch against L2.
const DefaultBlockSize = 256 * 1024

// estimatedBytesPerEdge seeds the initial capacity of each worker's
// append-only scratch slices; it is a heuristic, not a hard bound, since
// scratch slices grow by append when an estimate undershoots.
const estimatedBytesPerEdge = 8

// Options controls the parsing strategy shared by the per-block readers
// (§4.F) and the parallel scheduler (§4.G).
type Options struct {
	Symmetric bool
	Weighted  bool
	// Rebase subtracts 1 from every parsed id before it is emitted,
	// matching the 1-based MTX convention.
	Rebase bool
	// Checked selects the checked reader (ReadBlockChecked) over the
	// unchecked one (ReadBlockUnchecked).
	Checked bool
	// Separator is an extra field-separator byte treated as blank, e.g.
	// ',' for CSV bodies. 0 or ' ' means no extra separator.
	Separator byte
	// BlockSize overrides DefaultBlockSize; 0 uses the default.
	BlockSize int
	// Partitions is P, the degree-histogram partition count; 0 means 1.
	Partitions int
	// MaxThreads overrides runtime.GOMAXPROCS(0); 0 uses the default.
	MaxThreads int
	// Rows and Cols are the declared bounds from the header (spec §3:
	// "every (u,v) written satisfies 0 <= u < rows, 0 <= v < cols after
	// rebase"). The checked reader enforces them as a BadBody condition
	// when non-zero; 0 means "unknown, do not bounds-check".
	Rows, Cols uint64
}
