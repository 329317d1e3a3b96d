package graph

// Format selects which of spec §6's supported file formats governs
// header parsing and id rebasing.
type Format int

const (
	// FormatAuto inspects the input and picks MTX, COO, or EdgeList.
	FormatAuto Format = iota
	// FormatMTX expects a leading "%%MatrixMarket matrix coordinate ..."
	// banner, '%'-prefixed comments, and a rows/cols/nnz size line.
	FormatMTX
	// FormatCOO expects '%'/'#'-prefixed comments and a rows/cols/nnz
	// size line, with no banner.
	FormatCOO
	// FormatEdgeList expects body lines only, no header: rows/cols are
	// derived from the largest vertex id seen.
	FormatEdgeList
)

func (f Format) String() string {
	switch f {
	case FormatMTX:
		return "mtx"
	case FormatCOO:
		return "coo"
	case FormatEdgeList:
		return "edgelist"
	default:
		return "auto"
	}
}

const mtxBannerPrefix = "%%MatrixMarket"

// detectFormat implements DESIGN.md's format auto-detection decision:
// a leading "%%MatrixMarket" banner selects MTX; a leading '%' or '#'
// comment selects COO; anything else is treated as a headerless
// EdgeList/CSV body. This is a heuristic convenience for FormatAuto, not
// a format-sniffing guarantee — callers who know their format should
// pass it explicitly.
func detectFormat(data []byte) Format {
	pos := 0
	n := len(data)
	for pos < n && isLeadingWhitespace(data[pos]) {
		pos++
	}
	if pos >= n {
		return FormatEdgeList
	}
	if hasBannerAt(data, pos) {
		return FormatMTX
	}
	if data[pos] == '%' || data[pos] == '#' {
		return FormatCOO
	}
	return FormatEdgeList
}

func isLeadingWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func hasBannerAt(data []byte, pos int) bool {
	if pos+len(mtxBannerPrefix) > len(data) {
		return false
	}
	return string(data[pos:pos+len(mtxBannerPrefix)]) == mtxBannerPrefix
}
