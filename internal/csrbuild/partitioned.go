package csrbuild

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/puzzlef/gocsr/internal/edgereader"
	"github.com/puzzlef/gocsr/internal/token"
)

// BuildPartitioned implements spec §4.H's partitioned variant: each
// partition p scatters into its own local (poffsets[p], pEdgeKeys[p],
// pEdgeValues[p]) using an atomic increment local to that partition, so
// workers mapped to different partitions never contend on the same
// counter. A merge pass then reduces the per-partition degree
// histograms into the global Offsets and gathers each vertex's
// partition-local segments into the final contiguous CSR in u-major
// order, parallelized over static vertex ranges (spec §4.H "Merge is
// parallel over vertices with static scheduling").
func BuildPartitioned[K token.Unsigned, W token.Float](rows, cols uint64, weighted bool, res edgereader.Result[K, W]) *CSR[K, W] {
	p := len(res.Degrees)
	if p == 0 {
		p = 1
	}

	poffsets := make([][]uint64, p)
	pCursor := make([][]uint64, p)
	pEdgeKeys := make([][]K, p)
	pEdgeValues := make([][]W, p)
	for part := 0; part < p; part++ {
		degrees := res.Degrees[part]
		if degrees == nil {
			degrees = make([]uint64, rows)
		}
		poffsets[part] = prefixSum(degrees)
		m := poffsets[part][rows]
		pEdgeKeys[part] = make([]K, m)
		if weighted {
			pEdgeValues[part] = make([]W, m)
		}
		pCursor[part] = make([]uint64, rows)
		copy(pCursor[part], poffsets[part][:rows])
	}

	var wg sync.WaitGroup
	for t := range res.Scratch {
		ws := &res.Scratch[t]
		if ws.Count == 0 {
			continue
		}
		part := t % p
		wg.Add(1)
		go func(ws *edgereader.WorkerScratch[K, W], part int) {
			defer wg.Done()
			cursor := pCursor[part]
			keys := pEdgeKeys[part]
			values := pEdgeValues[part]
			for i := 0; i < ws.Count; i++ {
				u := ws.Sources[i]
				j := atomic.AddUint64(&cursor[uint64(u)], 1) - 1
				keys[j] = ws.Targets[i]
				if weighted {
					values[j] = ws.Weights[i]
				}
			}
		}(ws, part)
	}
	wg.Wait()

	merged := mergeDegrees(res.Degrees, rows)
	offsets := prefixSum(merged)
	m := offsets[rows]
	edgeKeys := make([]K, m)
	var edgeValues []W
	if weighted {
		edgeValues = make([]W, m)
	}

	parallelOverVertices(rows, func(uBegin, uEnd uint64) {
		for u := uBegin; u < uEnd; u++ {
			dst := offsets[u]
			for part := 0; part < p; part++ {
				segBegin, segEnd := poffsets[part][u], poffsets[part][u+1]
				n := segEnd - segBegin
				if n == 0 {
					continue
				}
				copy(edgeKeys[dst:dst+n], pEdgeKeys[part][segBegin:segEnd])
				if weighted {
					copy(edgeValues[dst:dst+n], pEdgeValues[part][segBegin:segEnd])
				}
				dst += n
			}
		}
	})

	return &CSR[K, W]{Offsets: offsets, EdgeKeys: edgeKeys, EdgeValues: edgeValues, Rows: rows, Cols: cols}
}

// parallelOverVertices splits [0, rows) into GOMAXPROCS(0) static,
// contiguous ranges and runs fn over each concurrently.
func parallelOverVertices(rows uint64, fn func(begin, end uint64)) {
	if rows == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	workers = max(workers, 1)
	if uint64(workers) > rows {
		workers = int(rows)
	}
	chunk := (rows + uint64(workers) - 1) / uint64(workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		begin := uint64(w) * chunk
		if begin >= rows {
			break
		}
		end := begin + chunk
		if end > rows {
			end = rows
		}
		wg.Add(1)
		go func(b, e uint64) {
			defer wg.Done()
			fn(b, e)
		}(begin, end)
	}
	wg.Wait()
}
