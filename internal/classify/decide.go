// internal/classify/decide.go
package classify

import (
	"vseek/internal/catalog"
	"vseek/internal/fasta"
	"vseek/internal/similarity"
)

// Status is the result kind of one read.
type Status int

const (
	Classified   Status = iota // a winning accession was found
	Unclassified               // no gene reached the threshold
	Degenerate                 // the read has no sequence
)

func (s Status) String() string {
	switch s {
	case Classified:
		return "classified"
	case Unclassified:
		return "unclassified"
	case Degenerate:
		return "degenerate"
	}
	return "unknown"
}

// Outcome is the decision for one read.
type Outcome struct {
	Index     int // 0-based position among well-formed reads
	Read      fasta.ReadRecord
	Accession string // empty unless Status == Classified
	Score     similarity.Score
	Status    Status
}

// ClassifyRead picks the accession that best matches read.
//
// For each accession in catalog order, the best gene score at or above
// threshold is that accession's score (0 if none); a perfect gene score ends
// the accession's gene loop. The highest accession score wins, ties going to
// the accession earliest in the catalog. A read whose every accession scores
// 0 is Unclassified. Comparisons that fail (empty gene) count as 0.
func ClassifyRead(read fasta.ReadRecord, cat *catalog.Catalog, threshold float64) Outcome {
	out := Outcome{Read: read, Status: Unclassified}
	if len(read.Sequence) == 0 {
		out.Status = Degenerate
		return out
	}

	best := 0.0
	for i := 0; i < cat.Len(); i++ {
		acc := cat.At(i)
		top := 0.0
		for _, g := range acc.Genes {
			s, err := similarity.BestSimilarity(read.Sequence, g.Sequence)
			if err != nil || s < threshold {
				continue
			}
			if s > top {
				top = s
			}
			if s == 1.0 {
				break
			}
		}
		if top > best {
			best = top
			out.Accession = acc.ID
		}
		// Later accessions can only tie a perfect score, and ties go to the earlier one.
		if best == 1.0 {
			break
		}
	}
	if out.Accession != "" {
		out.Status = Classified
		out.Score = best
	}
	return out
}
