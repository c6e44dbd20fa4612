// Package classify assigns each read to the catalog accession whose genes
// match it best and tallies the assignments.
//
// The per-read decision (ClassifyRead) is pure. Classifier.Run drives it over
// a read stream, serially or across workers, and applies outcomes strictly in
// read order so counts, checkpoints and hooks are identical either way.
package classify
