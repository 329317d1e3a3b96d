// Command gocsrbench generates a synthetic edge-list file of a
// requested size and loads it through graph.Load, reporting the
// resulting throughput. It is the illustrative CLI consumer of the
// loader, adapted from cmd/benchmark/main.go's synthetic-file generator
// and internal/indexer.go's "Rate: %.0f rows/sec" report format.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/puzzlef/gocsr/graph"
	"github.com/puzzlef/gocsr/internal/config"
)

func main() {
	sizeMB := flag.Int("size-mb", 200, "approximate size of the generated edge list, in MiB")
	rowsN := flag.Int("rows", 1_000_000, "number of vertices in the generated graph")
	weighted := flag.Bool("weighted", false, "generate and load a weighted graph")
	threads := flag.Int("threads", runtime.GOMAXPROCS(0), "worker count passed to graph.Load")
	checked := flag.Bool("checked", false, "use the checked edge-list reader")
	keep := flag.String("keep", "", "if set, write the generated file here instead of a temp file")
	flag.Parse()

	path := *keep
	if path == "" {
		tmp, err := os.CreateTemp("", "gocsrbench-*.edges")
		if err != nil {
			fmt.Fprintln(os.Stderr, "gocsrbench:", err)
			os.Exit(1)
		}
		path = tmp.Name()
		tmp.Close()
		defer os.Remove(path)
	}

	bytesWritten, edgeCount, err := generateEdgeList(path, *sizeMB, *rowsN, *weighted)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gocsrbench:", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d edges over %d vertices (%.2f MB)\n", edgeCount, *rowsN, float64(bytesWritten)/1024/1024)

	cfg := config.New(
		config.WithInputPath(path),
		config.WithWeighted(*weighted),
		config.WithChecked(*checked),
		config.WithMaxThreads(*threads),
	)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "gocsrbench:", err)
		os.Exit(1)
	}

	fmt.Println("Loading...")
	start := time.Now()
	csr, err := graph.Load[uint32, float32](cfg.InputPath, graph.Options{
		Format:     graph.FormatEdgeList,
		Weighted:   cfg.Weighted,
		Checked:    cfg.Checked,
		MaxThreads: cfg.MaxThreads,
		Separator:  cfg.Separator,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "gocsrbench:", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	fmt.Printf("\nStatistics:\n")
	fmt.Printf("  Rows:  %d\n", csr.Rows)
	fmt.Printf("  Edges: %d\n", len(csr.EdgeKeys))
	fmt.Printf("  Time:  %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("  Rate:  %.0f rows/sec\n", float64(csr.Rows)/elapsed.Seconds())
}

// generateEdgeList writes "u v [w]" lines to path until bytesWritten
// reaches sizeMB, picking endpoints uniformly over [0, rows).
func generateEdgeList(path string, sizeMB, rows int, weighted bool) (bytesWritten int64, edgeCount int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 64*1024)
	limit := int64(sizeMB) * 1024 * 1024
	rng := rand.New(rand.NewSource(123))
	buf := make([]byte, 0, 64)

	for bytesWritten < limit {
		u, v := rng.Intn(rows), rng.Intn(rows)
		buf = buf[:0]
		if weighted {
			buf = fmt.Appendf(buf, "%d %d %.4f\n", u, v, rng.Float64()*10)
		} else {
			buf = fmt.Appendf(buf, "%d %d\n", u, v)
		}
		n, werr := w.Write(buf)
		if werr != nil {
			return bytesWritten, edgeCount, werr
		}
		bytesWritten += int64(n)
		edgeCount++
	}
	if err := w.Flush(); err != nil {
		return bytesWritten, edgeCount, err
	}
	return bytesWritten, edgeCount, nil
}
