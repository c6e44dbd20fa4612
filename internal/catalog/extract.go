// internal/catalog/extract.go
package catalog

import "fmt"

// Skip records a gene that could not be extracted.
type Skip struct {
	Accession string
	GeneID    string
	Reason    string
}

// Extract cuts each annotated gene out of genome using inclusive coordinates,
// genome[Start : End+1], in annotation order. Genes without usable
// coordinates are reported as skips, never as errors.
func Extract(acc, genome string, anns []Annotation) (Accession, []Skip) {
	out := Accession{ID: acc, Genes: make([]Gene, 0, len(anns))}
	var skips []Skip
	skip := func(a Annotation, reason string) {
		skips = append(skips, Skip{Accession: acc, GeneID: a.GeneID, Reason: reason})
	}
	for _, a := range anns {
		switch {
		case !a.HasCoords:
			skip(a, "no annotation")
		case a.Invalid != "":
			skip(a, a.Invalid)
		case a.Start < 0 || a.End < 0:
			skip(a, fmt.Sprintf("negative coordinates [%d, %d]", a.Start, a.End))
		case a.Start > a.End:
			skip(a, fmt.Sprintf("start %d after end %d", a.Start, a.End))
		case a.End >= len(genome):
			skip(a, fmt.Sprintf("end %d beyond genome length %d", a.End, len(genome)))
		default:
			out.Genes = append(out.Genes, Gene{
				ID:       a.GeneID,
				Name:     a.Name,
				Start:    a.Start,
				End:      a.End,
				Sequence: genome[a.Start : a.End+1],
			})
		}
	}
	return out, skips
}
