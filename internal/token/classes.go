// Package token provides byte-level classification, cursor scanning, and
// numeric parsing over raw byte buffers. It is the tokenizer the rest of
// the loader builds on: header parsing, block splitting, and edge-list
// reading all bottom out in the cursor scanners and parsers defined here.
package token

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsBlank reports whether c is a space or tab.
func IsBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// IsNewline reports whether c terminates a line.
func IsNewline(c byte) bool {
	return c == '\n' || c == '\r'
}

// ClassSet extends the default blank/terminator classification with extra
// bytes. CSV bodies add ',' to the blank set; comment-aware readers add
// '%'/'#' to the terminator set.
type ClassSet struct {
	ExtraBlank      [256]bool
	ExtraTerminator [256]bool
}

// NewClassSet builds a ClassSet with the given extra blank and terminator
// bytes registered.
func NewClassSet(extraBlank, extraTerminator []byte) *ClassSet {
	cs := &ClassSet{}
	for _, b := range extraBlank {
		cs.ExtraBlank[b] = true
	}
	for _, b := range extraTerminator {
		cs.ExtraTerminator[b] = true
	}
	return cs
}

// IsBlank reports whether c is blank under this class set.
func (cs *ClassSet) IsBlank(c byte) bool {
	return IsBlank(c) || cs.ExtraBlank[c]
}

// IsWhitespace reports whether c is blank, newline, or a registered
// terminator (comment-start characters count as terminators so a token
// scan stops cleanly at an inline comment).
func (cs *ClassSet) IsWhitespace(c byte) bool {
	return IsBlank(c) || IsNewline(c) || cs.ExtraBlank[c] || cs.ExtraTerminator[c]
}
