// Package errs defines the loader's error taxonomy (spec §7). The roles
// are sentinel errors, wrapped via fmt.Errorf("%w: ...") at the call
// site, following the teacher's fmt.Errorf wrapping idiom throughout
// internal/indexer.
package errs

import "errors"

var (
	// ErrBadHeader marks a malformed MTX/COO banner or size triple.
	ErrBadHeader = errors.New("bad header")
	// ErrBadBody marks a malformed numeric token, a negative id after
	// rebase, or trailing garbage in checked mode.
	ErrBadBody = errors.New("bad body")
	// ErrResourceExhausted marks a mapping or allocation failure.
	ErrResourceExhausted = errors.New("resource exhausted")
	// ErrNotFound marks an input path that cannot be opened.
	ErrNotFound = errors.New("not found")
)

// BadBodyError carries the byte offset of the offending token, per spec
// §7's "one error is surfaced per load with the file byte offset (when
// applicable)".
type BadBodyError struct {
	ByteOffset int64
	Reason     string
}

func (e *BadBodyError) Error() string {
	if e.Reason == "" {
		return ErrBadBody.Error()
	}
	return ErrBadBody.Error() + ": " + e.Reason
}

func (e *BadBodyError) Unwrap() error {
	return ErrBadBody
}
