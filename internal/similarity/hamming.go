// internal/similarity/hamming.go
package similarity

import (
	"errors"
	"fmt"
)

// Score is a similarity in [0, 1]; 1 means some window matched exactly.
type Score = float64

// ErrLengthMismatch is returned by HammingDistanceScore for unequal lengths.
var ErrLengthMismatch = errors.New("hamming: sequences differ in length")

// DegenerateSequenceError reports a zero-length sequence given to the scorer.
type DegenerateSequenceError struct {
	Which string // "read" or "reference"
}

func (e *DegenerateSequenceError) Error() string {
	return fmt.Sprintf("degenerate %s: zero-length sequence", e.Which)
}

// MismatchCount counts positions where a and b differ. Comparison is exact
// byte equality (case-sensitive, no ambiguity codes). len(a) must equal len(b).
func MismatchCount(a, b string) int {
	if len(a) != len(b) {
		panic("MismatchCount: length mismatch")
	}
	mm := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			mm++
		}
	}
	return mm
}

// HammingDistanceScore returns the fraction of differing positions of two
// equal-length sequences.
func HammingDistanceScore(a, b string) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w (%d vs %d)", ErrLengthMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, &DegenerateSequenceError{Which: "read"}
	}
	return float64(MismatchCount(a, b)) / float64(len(a)), nil
}
