package fasta

import (
	"errors"
	"fmt"
)

// MissingInputError reports an input file that does not exist.
type MissingInputError struct {
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input %q", e.Path)
}

func (e *MissingInputError) Unwrap() error { return e.Err }

// MalformedHeaderError reports a FASTA entry whose header does not carry a
// source id and a fragment id. It is not terminal: the reader skips the entry.
type MalformedHeaderError struct {
	Path   string
	Line   int
	Header string
}

func (e *MalformedHeaderError) Error() string {
	if e.Header == "" {
		return fmt.Sprintf("%s:%d: sequence data before first header", e.Path, e.Line)
	}
	return fmt.Sprintf("%s:%d: malformed header %q: want source and fragment ids", e.Path, e.Line, e.Header)
}

// ErrInvalidGenome is returned when a genome file has no leading FASTA header.
var ErrInvalidGenome = errors.New("genome fasta has a corrupt header")
