package csrbuild

import (
	"sort"
	"testing"

	"github.com/puzzlef/gocsr/internal/edgereader"
	"github.com/puzzlef/gocsr/internal/token"
)

// buildResult assembles a Result by hand, as if the parallel reader had
// populated it, so the builder can be tested independent of parsing.
func buildResult(rows uint64, partitions int, edges [][2]uint32) edgereader.Result[uint32, float32] {
	degrees := make([][]uint64, partitions)
	for p := range degrees {
		degrees[p] = make([]uint64, rows)
	}
	var ws edgereader.WorkerScratch[uint32, float32]
	for i, e := range edges {
		ws.Sources = append(ws.Sources, e[0])
		ws.Targets = append(ws.Targets, e[1])
		ws.Weights = append(ws.Weights, float32(i)+1)
		ws.Count++
		degrees[0][e[0]]++
	}
	return edgereader.Result[uint32, float32]{
		Scratch:      []edgereader.WorkerScratch[uint32, float32]{ws},
		Degrees:      degrees,
		EdgesWritten: int64(len(edges)),
	}
}

func neighbors[K token.Unsigned](csr *CSR[K, float32], u uint64) []K {
	var out []K
	for i := csr.Offsets[u]; i < csr.Offsets[u+1]; i++ {
		out = append(out, csr.EdgeKeys[i])
	}
	return out
}

func TestBuildSingleBasicInvariants(t *testing.T) {
	res := buildResult(4, 1, [][2]uint32{{0, 1}, {0, 2}, {1, 2}, {3, 0}})
	csr := Build[uint32, float32](4, 4, true, res)

	if csr.Offsets[0] != 0 {
		t.Errorf("Offsets[0]=%d, want 0", csr.Offsets[0])
	}
	if csr.Offsets[4] != uint64(len(csr.EdgeKeys)) {
		t.Errorf("Offsets[rows]=%d, want %d", csr.Offsets[4], len(csr.EdgeKeys))
	}
	for i := 0; i < 4; i++ {
		if csr.Offsets[i] > csr.Offsets[i+1] {
			t.Errorf("Offsets not monotonic at %d: %d > %d", i, csr.Offsets[i], csr.Offsets[i+1])
		}
	}
	if len(csr.EdgeKeys) != 4 {
		t.Fatalf("got %d edges, want 4", len(csr.EdgeKeys))
	}
	if len(csr.EdgeValues) != 4 {
		t.Fatalf("got %d weights, want 4", len(csr.EdgeValues))
	}
}

func TestBuildSingleNeighborHistogram(t *testing.T) {
	res := buildResult(3, 1, [][2]uint32{{0, 1}, {0, 2}, {1, 2}, {0, 1}})
	csr := Build[uint32, float32](3, 3, false, res)

	got := neighbors[uint32](csr, 0)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []uint32{1, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestBuildSingleUnweightedHasNoValues(t *testing.T) {
	res := buildResult(2, 1, [][2]uint32{{0, 1}})
	csr := Build[uint32, float32](2, 2, false, res)
	if csr.EdgeValues != nil {
		t.Errorf("expected nil EdgeValues for unweighted build, got %v", csr.EdgeValues)
	}
}

func TestBuildPartitionedMatchesSingle(t *testing.T) {
	edges := [][2]uint32{{0, 1}, {0, 2}, {1, 0}, {2, 1}, {2, 2}, {3, 0}}

	single := buildResult(4, 1, edges)
	csrSingle := Build[uint32, float32](4, 4, true, single)

	// Re-derive a 2-partition histogram as if worker 0 had read the
	// even-source edges and worker 1 the odd-source ones; ReadParallel
	// with Partitions=2 maps worker t to partition t%2.
	degrees := make([][]uint64, 2)
	degrees[0] = make([]uint64, 4)
	degrees[1] = make([]uint64, 4)
	var ws0, ws1 edgereader.WorkerScratch[uint32, float32]
	for i, e := range edges {
		w := float32(i) + 1
		if e[0]%2 == 0 {
			ws0.Sources = append(ws0.Sources, e[0])
			ws0.Targets = append(ws0.Targets, e[1])
			ws0.Weights = append(ws0.Weights, w)
			ws0.Count++
			degrees[0][e[0]]++
		} else {
			ws1.Sources = append(ws1.Sources, e[0])
			ws1.Targets = append(ws1.Targets, e[1])
			ws1.Weights = append(ws1.Weights, w)
			ws1.Count++
			degrees[1][e[0]]++
		}
	}
	partitioned := edgereader.Result[uint32, float32]{
		Scratch: []edgereader.WorkerScratch[uint32, float32]{ws0, ws1},
		Degrees: degrees,
	}
	csrPart := BuildPartitioned[uint32, float32](4, 4, true, partitioned)

	if len(csrPart.EdgeKeys) != len(csrSingle.EdgeKeys) {
		t.Fatalf("got %d edges, want %d", len(csrPart.EdgeKeys), len(csrSingle.EdgeKeys))
	}
	for u := uint64(0); u < 4; u++ {
		a := neighbors[uint32](csrSingle, u)
		b := neighbors[uint32](csrPart, u)
		sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
		sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
		if len(a) != len(b) {
			t.Fatalf("vertex %d: got %v, want %v", u, b, a)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("vertex %d: got %v, want %v", u, b, a)
			}
		}
	}
}

func TestBuildEmptyGraph(t *testing.T) {
	res := buildResult(5, 1, nil)
	csr := Build[uint32, float32](5, 5, false, res)
	if len(csr.EdgeKeys) != 0 {
		t.Errorf("got %d edges, want 0", len(csr.EdgeKeys))
	}
	for i, o := range csr.Offsets {
		if o != 0 {
			t.Errorf("Offsets[%d]=%d, want 0", i, o)
		}
	}
}
