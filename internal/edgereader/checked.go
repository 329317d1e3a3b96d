package edgereader

import (
	"github.com/puzzlef/gocsr/internal/errs"
	"github.com/puzzlef/gocsr/internal/token"
)

// ReadBlockChecked implements spec §4.F's checked strategy over
// data[begin:end): skip blanks and comments, parse u and v as signed
// 64-bit (to detect negative inputs before rebase), parse w when
// weighted, rebase, and reject a negative id after rebase. Every
// BadBodyError carries the byte offset of the token that actually
// failed, not the line start (spec §8 scenario 4: "1 foo" fails at
// offset 2, where "foo" begins). Supports Separator as an extra field
// separator and '%'/'#' as inline comment starts anywhere on the line,
// per spec §6's EdgeList/CSV format.
func ReadBlockChecked[K token.Unsigned, W token.Float](data []byte, begin, end int, opts Options, fb func(u, v K, w W)) error {
	cs := token.NewClassSet(extraBlankBytes(opts.Separator), []byte{'%', '#'})

	pos := begin
	for pos < end {
		lineBegin := pos
		lineEnd := token.FindNextLine(data, pos, end)
		if err := readLineChecked[K, W](data, lineBegin, trimLineEnd(data, lineBegin, lineEnd), cs, opts, fb); err != nil {
			return err
		}
		pos = lineEnd
	}
	return nil
}

func readLineChecked[K token.Unsigned, W token.Float](data []byte, lineBegin, lineEnd int, cs *token.ClassSet, opts Options, fb func(u, v K, w W)) error {
	pos := skipBlank(data, lineBegin, lineEnd, cs)
	if pos >= lineEnd || data[pos] == '%' || data[pos] == '#' {
		return nil // blank or comment-only line: never produces a record.
	}
	uBegin := pos
	uSigned, p := token.ParseInteger[int64](data, pos, lineEnd)
	if p == pos {
		return &errs.BadBodyError{ByteOffset: int64(uBegin), Reason: "expected source vertex id"}
	}
	pos = skipBlank(data, p, lineEnd, cs)

	vBegin := pos
	vSigned, p2 := token.ParseInteger[int64](data, pos, lineEnd)
	if p2 == pos {
		return &errs.BadBodyError{ByteOffset: int64(vBegin), Reason: "expected target vertex id"}
	}
	pos = p2

	// A third numeric field is always optional: present-but-unused (e.g.
	// a weight column on an unweighted load) is not trailing garbage,
	// only non-numeric trailing content is. When Weighted is set the
	// field becomes mandatory.
	var w W = W(1)
	wpos := skipBlank(data, pos, lineEnd, cs)
	if wVal, p3 := token.ParseFloat[W](data, wpos, lineEnd); p3 > wpos {
		w = wVal
		pos = p3
	} else if opts.Weighted {
		return &errs.BadBodyError{ByteOffset: int64(wpos), Reason: "expected edge weight"}
	}

	if trailing := skipBlank(data, pos, lineEnd, cs); trailing < lineEnd && data[trailing] != '%' && data[trailing] != '#' {
		return &errs.BadBodyError{ByteOffset: int64(trailing), Reason: "trailing garbage on line"}
	}

	if opts.Rebase {
		uSigned--
		vSigned--
	}
	if uSigned < 0 {
		return &errs.BadBodyError{ByteOffset: int64(uBegin), Reason: "negative vertex id after rebase"}
	}
	if vSigned < 0 {
		return &errs.BadBodyError{ByteOffset: int64(vBegin), Reason: "negative vertex id after rebase"}
	}
	if opts.Rows > 0 && uint64(uSigned) >= opts.Rows {
		return &errs.BadBodyError{ByteOffset: int64(uBegin), Reason: "source vertex id exceeds declared rows"}
	}
	if opts.Cols > 0 && uint64(vSigned) >= opts.Cols {
		return &errs.BadBodyError{ByteOffset: int64(vBegin), Reason: "target vertex id exceeds declared cols"}
	}

	u, v := K(uSigned), K(vSigned)
	fb(u, v, w)
	if opts.Symmetric && u != v {
		fb(v, u, w)
	}
	return nil
}

func extraBlankBytes(sep byte) []byte {
	if sep == 0 || sep == ' ' || sep == '\t' {
		return nil
	}
	return []byte{sep}
}

func skipBlank(data []byte, pos, end int, cs *token.ClassSet) int {
	for pos < end && cs.IsBlank(data[pos]) {
		pos++
	}
	return pos
}

// trimLineEnd strips a trailing '\n' and/or '\r' from [begin, end),
// returning the content-only end offset.
func trimLineEnd(data []byte, begin, end int) int {
	e := end
	if e > begin && data[e-1] == '\n' {
		e--
	}
	if e > begin && data[e-1] == '\r' {
		e--
	}
	return e
}
