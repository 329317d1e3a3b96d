package graph

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/puzzlef/gocsr/internal/errs"
	"github.com/stretchr/testify/require"
)

type edge struct {
	u, v uint32
	w    float32
}

func edges(csr *CSR[uint32, float32]) []edge {
	var out []edge
	for u := uint64(0); u < csr.Rows; u++ {
		for i := csr.Offsets[u]; i < csr.Offsets[u+1]; i++ {
			var w float32 = 1
			if csr.EdgeValues != nil {
				w = csr.EdgeValues[i]
			}
			out = append(out, edge{uint32(u), uint32(csr.EdgeKeys[i]), w})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].u != out[j].u {
			return out[i].u < out[j].u
		}
		return out[i].v < out[j].v
	})
	return out
}

// Scenario 1 (spec §8.1): MTX, pattern, symmetric.
func TestLoadMTXSymmetric(t *testing.T) {
	data := []byte("%%MatrixMarket matrix coordinate pattern symmetric\n3 3 2\n1 2\n2 3\n")
	csr, err := LoadBytes[uint32, float32](data, Options{})
	require.NoError(t, err)
	require.EqualValues(t, 3, csr.Rows)
	require.Len(t, csr.EdgeKeys, 4)

	want := []edge{{0, 1, 1}, {1, 0, 1}, {1, 2, 1}, {2, 1, 1}}
	got := edges(csr)
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].u, got[i].u, "edge %d source", i)
		require.Equal(t, want[i].v, got[i].v, "edge %d target", i)
	}
	require.Equal(t, []uint64{0, 1, 3, 4}, csr.Offsets)
}

// Scenario 2 (spec §8.2): MTX, general, weighted.
func TestLoadMTXWeightedGeneral(t *testing.T) {
	data := []byte("%%MatrixMarket matrix coordinate real general\n2 2 2\n1 2 0.5\n2 1 1.5\n")
	csr, err := LoadBytes[uint32, float32](data, Options{Weighted: true})
	require.NoError(t, err)
	require.Len(t, csr.EdgeKeys, 2)

	got := edges(csr)
	want := []edge{{0, 1, 0.5}, {1, 0, 1.5}}
	require.Equal(t, want, got)
	require.Equal(t, []uint64{0, 1, 2}, csr.Offsets)
}

// Scenario 3 (spec §8.3): EdgeList/CSV with a leading comment, 1-based,
// unweighted. The third field on the second data line is a weight
// column present in the file but unused because Weighted is false.
func TestLoadEdgeListCSVWithComment(t *testing.T) {
	data := []byte("# sample\n1,2\n2,3,3.14\n")
	oneBased := true
	csr, err := LoadBytes[uint32, float32](data, Options{
		Format:    FormatEdgeList,
		Separator: ',',
		Checked:   true,
		OneBased:  &oneBased,
	})
	require.NoError(t, err)

	got := edges(csr)
	want := []edge{{0, 1, 1}, {1, 2, 1}}
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].u, got[i].u, "edge %d source", i)
		require.Equal(t, want[i].v, got[i].v, "edge %d target", i)
	}
}

// Scenario 4 (spec §8.4): malformed body in checked mode.
func TestLoadMalformedBodyChecked(t *testing.T) {
	data := []byte("%%MatrixMarket matrix coordinate pattern general\n2 2 1\n1 foo\n")
	_, err := LoadBytes[uint32, float32](data, Options{Checked: true})
	var bbe *errs.BadBodyError
	require.ErrorAs(t, err, &bbe)
}

// Scenario 5 (spec §8.5): a large body spanning many blocks must produce
// the same edge multiset as a single-worker run.
func TestLoadLargeFileMultiBlockConsistency(t *testing.T) {
	var body []byte
	n := 4000
	for i := 0; i < n; i++ {
		body = append(body, []byte("1 2\n")...)
	}
	data := append([]byte("%%MatrixMarket matrix coordinate pattern general\n3 3 4000\n"), body...)

	multi, err := LoadBytes[uint32, float32](data, Options{BlockSize: 64, MaxThreads: 4})
	require.NoError(t, err)
	single, err := LoadBytes[uint32, float32](data, Options{MaxThreads: 1})
	require.NoError(t, err)

	require.Len(t, multi.EdgeKeys, len(single.EdgeKeys))
	require.Len(t, multi.EdgeKeys, n)
	require.Equal(t, edges(single), edges(multi))
}

// Scenario 6 (spec §8.6): a negative id fails in checked mode and must
// not crash in unchecked mode.
func TestLoadNegativeID(t *testing.T) {
	data := []byte("%%MatrixMarket matrix coordinate pattern general\n3 3 1\n-1 2\n")

	_, err := LoadBytes[uint32, float32](data, Options{Checked: true})
	var bbe *errs.BadBodyError
	require.ErrorAs(t, err, &bbe)

	_, err = LoadBytes[uint32, float32](data, Options{Checked: false})
	require.NoError(t, err)
}

// Boundary behavior: header-only input yields an all-zero offsets array
// and no edges.
func TestLoadZeroEdgeFile(t *testing.T) {
	data := []byte("%%MatrixMarket matrix coordinate pattern general\n3 3 0\n")
	csr, err := LoadBytes[uint32, float32](data, Options{})
	require.NoError(t, err)
	require.Empty(t, csr.EdgeKeys)
	require.Equal(t, []uint64{0, 0, 0, 0}, csr.Offsets)
}

// Boundary behavior: a final line with no trailing newline still parses.
func TestLoadNoTrailingNewline(t *testing.T) {
	data := []byte("%%MatrixMarket matrix coordinate pattern general\n2 2 1\n1 2")
	csr, err := LoadBytes[uint32, float32](data, Options{})
	require.NoError(t, err)
	require.Len(t, csr.EdgeKeys, 1)
}

// EdgeList input with unknown rows/cols derives its bounds from the
// largest vertex id seen (the two-pass discovery path).
func TestLoadEdgeListDerivesBounds(t *testing.T) {
	data := []byte("0 1\n1 2\n2 4\n")
	csr, err := LoadBytes[uint32, float32](data, Options{Format: FormatEdgeList})
	require.NoError(t, err)
	require.EqualValues(t, 5, csr.Rows)
	require.EqualValues(t, 5, csr.Cols)
	require.Len(t, csr.EdgeKeys, 3)
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		data []byte
		want Format
	}{
		{[]byte("%%MatrixMarket matrix coordinate pattern general\n1 1 0\n"), FormatMTX},
		{[]byte("% just a comment\n1 1 0\n"), FormatCOO},
		{[]byte("# just a comment\n1 1 0\n"), FormatCOO},
		{[]byte("1 2\n3 4\n"), FormatEdgeList},
		{[]byte(""), FormatEdgeList},
	}
	for _, c := range cases {
		require.Equal(t, c.want, detectFormat(c.data), "detectFormat(%q)", c.data)
	}
}

// End-to-end fixture-file test, modeled on the teacher's
// internal/indexer/pipeline_test.go: write a real file to a temp
// directory and drive it through Load rather than LoadBytes.
func TestLoadEndToEndFixtureFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "graph.mtx")

	content := "%%MatrixMarket matrix coordinate real symmetric\n4 4 3\n1 2 1.0\n2 3 2.0\n3 4 3.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	csr, err := Load[uint32, float32](path, Options{Weighted: true})
	require.NoError(t, err)

	require.EqualValues(t, 4, csr.Rows)
	require.Len(t, csr.EdgeKeys, 6) // 3 lines, each mirrored (u != v every time)

	got := edges(csr)
	want := []edge{
		{0, 1, 1.0}, {1, 0, 1.0},
		{1, 2, 2.0}, {2, 1, 2.0},
		{2, 3, 3.0}, {3, 2, 3.0},
	}
	require.Equal(t, want, got)
}
