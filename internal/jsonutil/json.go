// internal/jsonutil/json.go
package jsonutil

import (
	"encoding/json"
	"errors"
	"io"
)

// EncodePretty writes v as indented JSON to w, newline-terminated.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// DecodeStrict decodes exactly one JSON value from r into v. Unknown object
// keys and trailing data are errors.
func DecodeStrict(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
