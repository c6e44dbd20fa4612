// Package similarity scores a read against a reference sequence by sliding the
// shorter sequence over the longer one and keeping the window with the fewest
// substitutions. There are no insertions or deletions.
//
// All functions are pure: inputs are Go strings and are never modified.
package similarity
