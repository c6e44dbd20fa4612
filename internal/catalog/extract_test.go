package catalog

import "testing"

func TestExtractInclusiveEnd(t *testing.T) {
	genome := "AAAACCCCGGGGTTTT"
	anns := []Annotation{
		{GeneID: "g1", Start: 4, End: 7, HasCoords: true},
		{GeneID: "g2", Start: 0, End: 0, HasCoords: true},
		{GeneID: "g3", Start: 12, End: 15, HasCoords: true},
	}
	acc, skips := Extract("NC_1", genome, anns)
	if len(skips) != 0 {
		t.Fatalf("unexpected skips: %+v", skips)
	}
	want := []string{"CCCC", "A", "TTTT"}
	if len(acc.Genes) != len(want) {
		t.Fatalf("got %d genes, want %d", len(acc.Genes), len(want))
	}
	for i, w := range want {
		if acc.Genes[i].Sequence != w {
			t.Errorf("gene %d = %q, want %q", i, acc.Genes[i].Sequence, w)
		}
	}
}

func TestExtractSkipsUnusableGenes(t *testing.T) {
	genome := "ACGTACGT"
	anns := []Annotation{
		{GeneID: "none"},
		{GeneID: "invalid", HasCoords: true, Invalid: "annotation is not a list of integers"},
		{GeneID: "neg", Start: -1, End: 3, HasCoords: true},
		{GeneID: "backwards", Start: 5, End: 2, HasCoords: true},
		{GeneID: "past", Start: 2, End: 8, HasCoords: true},
		{GeneID: "ok", Start: 2, End: 7, HasCoords: true},
	}
	acc, skips := Extract("NC_1", genome, anns)
	if len(acc.Genes) != 1 || acc.Genes[0].Sequence != "GTACGT" {
		t.Fatalf("genes = %+v", acc.Genes)
	}
	if len(skips) != 5 {
		t.Fatalf("want 5 skips, got %+v", skips)
	}
	for _, s := range skips {
		if s.Accession != "NC_1" || s.Reason == "" {
			t.Errorf("bad skip %+v", s)
		}
	}
}

func TestExtractNoGenes(t *testing.T) {
	acc, _ := Extract("NC_empty", "ACGT", nil)
	if acc.ID != "NC_empty" || acc.Genes == nil || len(acc.Genes) != 0 {
		t.Fatalf("want present accession with empty gene list, got %+v", acc)
	}
}
