// internal/similarity/scan.go
package similarity

import "strings"

/* ---------------------------- BestSimilarity ---------------------------- */

// BestSimilarity slides a window the width of the shorter sequence across the
// longer one and returns 1 - (fewest mismatches / window width).
//
// When the reference is at least as long as the read, the read is slid over
// the reference; otherwise the roles swap and the reference is slid over the
// read. A zero-mismatch window ends the scan with 1.0. Either sequence being
// empty yields a *DegenerateSequenceError.
func BestSimilarity(read, reference string) (Score, error) {
	if len(read) == 0 {
		return 0, &DegenerateSequenceError{Which: "read"}
	}
	if len(reference) == 0 {
		return 0, &DegenerateSequenceError{Which: "reference"}
	}
	short, long := read, reference
	if len(reference) < len(read) {
		short, long = reference, read
	}
	best := MinWindowMismatches(short, long)
	return 1.0 - float64(best)/float64(len(short)), nil
}

// MinWindowMismatches returns the smallest mismatch count between short and
// any len(short)-wide window of long. len(long) must be >= len(short) > 0.
//
// A window is abandoned as soon as its count reaches the best seen so far, so
// the result equals the exhaustive scan without always paying for it.
func MinWindowMismatches(short, long string) int {
	w := len(short)
	if w == 0 || len(long) < w {
		panic("MinWindowMismatches: window wider than sequence")
	}

	// Exact-match fast path.
	if strings.Contains(long, short) {
		return 0
	}

	best := w + 1
	end := len(long) - w
window:
	for pos := 0; pos <= end; pos++ {
		mm := 0
		for j := 0; j < w; j++ {
			if long[pos+j] != short[j] {
				mm++
				if mm >= best {
					continue window
				}
			}
		}
		best = mm
		if best == 0 {
			break
		}
	}
	return best
}
