// Package header implements spec §4.D: parsing the MTX/COO banner and
// size triple from the start of a mapped byte buffer. It is grounded on
// internal/indexer/scanner.go's readHeaders (comment/whitespace
// handling on the leading line) and on original_source/inc/io.hxx's
// readMtxFormatHeaderStreamW/readCooFormatHeaderStreamW, whose ambiguous
// "!=0 || !=0" comment-loop predicate (io.hxx:36) is the literal source
// of spec §9's Open Question. This package implements the corrected,
// unambiguous stop condition spec §4.D specifies: stop at the first
// non-comment, non-blank line and treat it as the size triple.
package header

import (
	"fmt"

	"github.com/puzzlef/gocsr/internal/errs"
	"github.com/puzzlef/gocsr/internal/token"
)

// Header is the parsed (symmetric, rows, cols, declaredSize) triple plus
// the byte offset where the body begins, per spec §3.
type Header struct {
	Symmetric    bool
	Rows         uint64
	Cols         uint64
	DeclaredSize uint64
	BodyOffset   int
}

// state is the header scanner's only explicit state machine (spec §4
// "State machines").
type state int

const (
	stateExpectComment state = iota
	stateInBanner
	stateExpectSize
	stateDone
)

// mtxBanner is the literal prefix of a Matrix Market coordinate banner.
const mtxBannerPrefix = "%%MatrixMarket"

// Read parses a leading MTX banner (if present), skips comment/blank
// lines, and parses the rows/cols/size triple. COO input has no banner:
// only comments and the size triple. Fails with errs.ErrBadHeader when
// the banner shape is wrong, the banner is not "matrix coordinate", the
// symmetry token is unrecognized, or the size triple cannot be parsed.
// The <field> token (real, pattern, ...) is not checked.
func Read(data []byte) (Header, error) {
	var h Header
	st := stateExpectComment
	pos := 0
	n := len(data)

	for st != stateDone {
		line, lineEnd, ok := nextSignificantLine(data, pos, n)
		if !ok {
			return Header{}, fmt.Errorf("%w: no size line found", errs.ErrBadHeader)
		}

		switch st {
		case stateExpectComment:
			if hasPrefix(line, mtxBannerPrefix) {
				if err := parseBanner(&h, line); err != nil {
					return Header{}, err
				}
				st = stateInBanner
				pos = lineEnd
				continue
			}
			// First non-comment, non-blank line with no MTX banner: this
			// is the COO size triple.
			st = stateExpectSize

		case stateInBanner:
			// The banner consumed one line; this call already skipped any
			// further comment/blank lines, so `line` is the size triple.
			st = stateExpectSize

		case stateExpectSize:
			if err := parseSizeTriple(&h, line); err != nil {
				return Header{}, err
			}
			h.BodyOffset = lineEnd
			st = stateDone
		}
	}

	return h, nil
}

// nextSignificantLine skips blank lines and '%'/'#' comment lines
// starting at pos (a "%%MatrixMarket" banner line is not treated as a
// comment), returning the first line that is neither, its byte
// end (including its newline), and false if the end of the buffer was
// reached without finding one. This implements spec §4.D/§9's corrected,
// unambiguous header-termination rule in one place, so every state in
// the header scanner shares identical EOF and comment-skip behavior.
func nextSignificantLine(data []byte, pos, n int) (line []byte, lineEnd int, ok bool) {
	for pos < n {
		lineBegin := pos
		lineEnd = token.FindNextLine(data, pos, n)
		line = trimLine(data, lineBegin, lineEnd)
		if len(line) == 0 || (line[0] == '%' && !hasPrefix(line, mtxBannerPrefix)) || line[0] == '#' {
			pos = lineEnd
			continue
		}
		return line, lineEnd, true
	}
	return nil, n, false
}

// trimLine strips a trailing '\r' (CRLF input) and returns the content
// bytes, excluding the terminating newline.
func trimLine(data []byte, begin, end int) []byte {
	e := end
	if e > begin && data[e-1] == '\n' {
		e--
	}
	if e > begin && data[e-1] == '\r' {
		e--
	}
	return data[begin:e]
}

func hasPrefix(line []byte, prefix string) bool {
	if len(line) < len(prefix) {
		return false
	}
	return string(line[:len(prefix)]) == prefix
}

// parseBanner validates "%%MatrixMarket matrix coordinate <field>
// <symmetry>" and records the symmetry flag per spec §4.D.
func parseBanner(h *Header, line []byte) error {
	fields := splitFields(line)
	if len(fields) < 5 {
		return fmt.Errorf("%w: malformed MatrixMarket banner %q", errs.ErrBadHeader, line)
	}
	if fields[0] != mtxBannerPrefix || fields[1] != "matrix" || fields[2] != "coordinate" {
		return fmt.Errorf("%w: unsupported MatrixMarket banner %q", errs.ErrBadHeader, line)
	}
	switch fields[4] {
	case "symmetric", "skew-symmetric":
		h.Symmetric = true
	case "general", "hermitian":
		h.Symmetric = false
	default:
		return fmt.Errorf("%w: unknown symmetry %q", errs.ErrBadHeader, fields[4])
	}
	return nil
}

// parseSizeTriple parses "rows cols nnz".
func parseSizeTriple(h *Header, line []byte) error {
	fields := splitFields(line)
	if len(fields) < 3 {
		return fmt.Errorf("%w: malformed size line %q", errs.ErrBadHeader, line)
	}
	rows, ok1 := parseUintField(fields[0])
	cols, ok2 := parseUintField(fields[1])
	size, ok3 := parseUintField(fields[2])
	if !ok1 || !ok2 || !ok3 {
		return fmt.Errorf("%w: non-numeric size line %q", errs.ErrBadHeader, line)
	}
	h.Rows, h.Cols, h.DeclaredSize = rows, cols, size
	return nil
}

func parseUintField(s string) (uint64, bool) {
	b := []byte(s)
	v, pos := token.ParseWhole[uint64](b, 0, len(b))
	return v, pos == len(b) && len(b) > 0
}

// splitFields is a small whitespace tokenizer over a single line,
// avoiding an allocation-heavy strings.Fields for the hot header path.
func splitFields(line []byte) []string {
	var out []string
	i, n := 0, len(line)
	for i < n {
		for i < n && token.IsBlank(line[i]) {
			i++
		}
		if i >= n {
			break
		}
		j := i
		for j < n && !token.IsBlank(line[j]) {
			j++
		}
		out = append(out, string(line[i:j]))
		i = j
	}
	return out
}
