// Package csrbuild implements spec §4.H: turning the parallel reader's
// per-worker scratch and degree histogram into a single contiguous CSR
// graph via an exclusive prefix sum and a concurrent atomic-fetch-add
// scatter. The prefix-sum shape is grounded on
// Tingshow-liu-Cluster-BFS-Golang/graphutils.ReadBytePD's
// "offsets[i]=sum; sum+=d" loop; the atomic scatter counter is grounded
// on internal/indexer/sorter.go's sync/atomic.AddInt64 usage.
package csrbuild

import (
	"sync"
	"sync/atomic"

	"github.com/puzzlef/gocsr/internal/edgereader"
	"github.com/puzzlef/gocsr/internal/token"
)

// CSR is the loader's output graph (spec §3): Offsets has length Rows+1
// and is monotonically non-decreasing with Offsets[0]=0 and
// Offsets[Rows]=len(EdgeKeys); EdgeValues is nil when the graph is
// unweighted. Neighbor ordering within a vertex is unspecified (spec
// §3/§5).
type CSR[K token.Unsigned, W token.Float] struct {
	Offsets    []uint64
	EdgeKeys   []K
	EdgeValues []W
	Rows, Cols uint64
}

// Build implements spec §4.H in full: the standard single-scatter path
// when the reader used one partition, or the partitioned build-then-
// merge path (BuildPartitioned) when it used more than one. Edge count
// is derived from the histogram, never trusted from a declared header
// size, per spec §4.H "Numeric semantics".
func Build[K token.Unsigned, W token.Float](rows, cols uint64, weighted bool, res edgereader.Result[K, W]) *CSR[K, W] {
	if len(res.Degrees) > 1 {
		return BuildPartitioned(rows, cols, weighted, res)
	}
	return buildSingle(rows, cols, weighted, res)
}

func buildSingle[K token.Unsigned, W token.Float](rows, cols uint64, weighted bool, res edgereader.Result[K, W]) *CSR[K, W] {
	degrees := mergeDegrees(res.Degrees, rows)
	offsets := prefixSum(degrees)
	m := offsets[rows]

	edgeKeys := make([]K, m)
	var edgeValues []W
	if weighted {
		edgeValues = make([]W, m)
	}

	// A separate cursor copy is scattered into, rather than mutating
	// offsets in place and shifting it back afterward (spec §4.H's
	// "shift the scratch copy right by one" trick) — functionally
	// equivalent, one allocation simpler, and leaves offsets untouched
	// throughout the scatter so it can't be read mid-build by mistake.
	cursor := make([]uint64, rows)
	copy(cursor, offsets[:rows])

	scatterScratch(res.Scratch, weighted, func(u K, v K, w W) int {
		j := atomic.AddUint64(&cursor[uint64(u)], 1) - 1
		edgeKeys[j] = v
		if weighted {
			edgeValues[j] = w
		}
		return int(j)
	})

	return &CSR[K, W]{Offsets: offsets, EdgeKeys: edgeKeys, EdgeValues: edgeValues, Rows: rows, Cols: cols}
}

// scatterScratch runs one goroutine per non-empty worker scratch buffer,
// calling place for every edge it holds. place performs the atomic
// fetch-add into the shared cursor and the actual array write; the
// return value is unused here but keeps the callback shape reusable.
func scatterScratch[K token.Unsigned, W token.Float](scratch []edgereader.WorkerScratch[K, W], weighted bool, place func(u, v K, w W) int) {
	var wg sync.WaitGroup
	for t := range scratch {
		ws := &scratch[t]
		if ws.Count == 0 {
			continue
		}
		wg.Add(1)
		go func(ws *edgereader.WorkerScratch[K, W]) {
			defer wg.Done()
			for i := 0; i < ws.Count; i++ {
				var w W
				if weighted {
					w = ws.Weights[i]
				}
				place(ws.Sources[i], ws.Targets[i], w)
			}
		}(ws)
	}
	wg.Wait()
}

func mergeDegrees(partitioned [][]uint64, rows uint64) []uint64 {
	merged := make([]uint64, rows)
	for _, d := range partitioned {
		for u, c := range d {
			merged[u] += c
		}
	}
	return merged
}

// prefixSum computes the exclusive prefix sum over degrees, returning a
// slice of length len(degrees)+1 with offsets[0]=0 and
// offsets[len(degrees)] = total degree, using a uint64 accumulator to
// avoid overflow on large graphs (spec §4.H "Numeric semantics").
func prefixSum(degrees []uint64) []uint64 {
	rows := len(degrees)
	offsets := make([]uint64, rows+1)
	var sum uint64
	for u := 0; u < rows; u++ {
		offsets[u] = sum
		sum += degrees[u]
	}
	offsets[rows] = sum
	return offsets
}
