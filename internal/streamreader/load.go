package streamreader

import (
	"bufio"
	"fmt"
	"io"

	"github.com/puzzlef/gocsr/internal/csrbuild"
	"github.com/puzzlef/gocsr/internal/edgereader"
	"github.com/puzzlef/gocsr/internal/errs"
	"github.com/puzzlef/gocsr/internal/header"
	"github.com/puzzlef/gocsr/internal/token"
)

// maxHeaderPeek bounds how far Load will grow its peek buffer looking
// for the end of the banner/size-line header before giving up. Real
// headers are a handful of short lines; this is generous headroom for
// pathological comment blocks.
const maxHeaderPeek = 1 << 20

// LoadConfig mirrors graph.Options' header-relevant fields: Load needs
// to know whether to expect a header at all, since an io.Reader cannot
// be sniffed and rewound the way a mapped byte slice can.
type LoadConfig struct {
	HasHeader bool // true for MTX/COO, false for EdgeList/CSV
	Weighted  bool
	Checked   bool
	Separator byte
	OneBased  *bool // nil defaults to HasHeader's convention
}

// Load reads a header (if LoadConfig.HasHeader) and body from r and
// builds a CSR graph on a single goroutine, per spec §9's streaming
// fallback. r is consumed once, forward-only. A headerless load derives
// its bounds from the largest vertex id seen, by a second pass over the
// collected scratch after the body is read, the same way graph.LoadBytes
// handles a headerless EdgeList.
func Load[K token.Unsigned, W token.Float](r io.Reader, cfg LoadConfig) (*csrbuild.CSR[K, W], error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var h header.Header
	if cfg.HasHeader {
		peeked, err := peekHeaderBytes(br)
		if err != nil {
			return nil, err
		}
		h, err = header.Read(peeked)
		if err != nil {
			return nil, err
		}
		if _, err := br.Discard(h.BodyOffset); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrBadHeader, err)
		}
	}

	rebase := cfg.HasHeader
	if cfg.OneBased != nil {
		rebase = *cfg.OneBased
	}

	res, err := Read[K, W](br, Options{
		Symmetric: h.Symmetric,
		Weighted:  cfg.Weighted,
		Rebase:    rebase,
		Checked:   cfg.Checked,
		Separator: cfg.Separator,
		Rows:      h.Rows,
		Cols:      h.Cols,
	})
	if err != nil {
		return nil, err
	}

	rows, cols := h.Rows, h.Cols
	if rows == 0 {
		rows, cols = discoverBounds(res)
		res.Degrees[0] = rebuildDegrees(res, rows)
	}

	return csrbuild.Build[K, W](rows, cols, cfg.Weighted, res), nil
}

// peekHeaderBytes grows a peek window until header.Read can parse it or
// the window exceeds maxHeaderPeek. Peek never advances br, so the
// caller discards exactly the bytes header.Read reports consuming.
func peekHeaderBytes(br *bufio.Reader) ([]byte, error) {
	for n := 4096; n <= maxHeaderPeek; n *= 4 {
		peeked, err := br.Peek(n)
		if len(peeked) > 0 {
			if h, herr := header.Read(peeked); herr == nil && (h.BodyOffset < len(peeked) || err != nil) {
				// BodyOffset < len(peeked) means the size line's newline
				// fell strictly inside the window, not at its cut edge —
				// so the header wasn't truncated mid-line. err != nil
				// means this is all the input there is, so a BodyOffset
				// landing exactly on the edge is still the true end.
				return peeked, nil
			}
		}
		if err != nil {
			// Reached EOF or a read error with the whole available input
			// peeked; header.Read's own error (surfaced by the retry
			// above) already explains a short, malformed header, so
			// return the peeked bytes and let header.Read's verdict win.
			return peeked, nil
		}
	}
	return nil, fmt.Errorf("%w: header exceeds %d bytes", errs.ErrBadHeader, maxHeaderPeek)
}

func discoverBounds[K token.Unsigned, W token.Float](res edgereader.Result[K, W]) (rows, cols uint64) {
	var maxID uint64
	ws := res.Scratch[0]
	for i := 0; i < ws.Count; i++ {
		if u := uint64(ws.Sources[i]); u > maxID {
			maxID = u
		}
		if v := uint64(ws.Targets[i]); v > maxID {
			maxID = v
		}
	}
	return maxID + 1, maxID + 1
}

func rebuildDegrees[K token.Unsigned, W token.Float](res edgereader.Result[K, W], rows uint64) []uint64 {
	degrees := make([]uint64, rows)
	ws := res.Scratch[0]
	for i := 0; i < ws.Count; i++ {
		degrees[uint64(ws.Sources[i])]++
	}
	return degrees
}
