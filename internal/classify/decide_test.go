package classify

import (
	"testing"

	"vseek/internal/catalog"
	"vseek/internal/fasta"
)

func mustCatalog(t *testing.T, accs ...catalog.Accession) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(accs...)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func acc(id string, genes ...string) catalog.Accession {
	a := catalog.Accession{ID: id, Genes: []catalog.Gene{}}
	for i, g := range genes {
		a.Genes = append(a.Genes, catalog.Gene{ID: id + "_g" + string(rune('0'+i)), Sequence: g})
	}
	return a
}

func read(seq string) fasta.ReadRecord {
	return fasta.ReadRecord{SourceID: "SRR1", FragmentID: "1", Sequence: seq, Length: len(seq)}
}

func TestClassifyReadPicksBestAccession(t *testing.T) {
	cat := mustCatalog(t,
		acc("NC_A", "GGGGGGGG"),
		acc("NC_B", "TTTTACGAAAAA", "CCCCCCCC"), // ACGT with one mismatch
		acc("NC_C", "TTTTACGTAAAA"),             // exact
	)
	o := ClassifyRead(read("ACGT"), cat, 0.5)
	if o.Status != Classified || o.Accession != "NC_C" || o.Score != 1.0 {
		t.Fatalf("got %+v", o)
	}
}

func TestClassifyReadTieGoesToEarliestAccession(t *testing.T) {
	for run := 0; run < 20; run++ {
		cat := mustCatalog(t,
			acc("NC_Z", "AAAACGTT"),
			acc("NC_Y", "CCACGTCC"),
			acc("NC_X", "ACGAGG"),
		)
		o := ClassifyRead(read("ACGT"), cat, 0.5)
		if o.Accession != "NC_Z" {
			t.Fatalf("run %d: tie should go to first accession, got %q", run, o.Accession)
		}
	}

	// Equal non-perfect scores: still the first.
	cat := mustCatalog(t, acc("P", "ACGA"), acc("Q", "ACGC"))
	if o := ClassifyRead(read("ACGT"), cat, 0.5); o.Accession != "P" || o.Score != 0.75 {
		t.Fatalf("non-perfect tie: %+v", o)
	}
}

func TestClassifyReadThreshold(t *testing.T) {
	cat := mustCatalog(t, acc("NC_A", "ACGA"), acc("NC_B", "AGGA"))
	// NC_A scores 0.75, NC_B 0.5.
	if o := ClassifyRead(read("ACGT"), cat, 0.8); o.Status != Unclassified || o.Accession != "" {
		t.Fatalf("below threshold should be unclassified, got %+v", o)
	}
	if o := ClassifyRead(read("ACGT"), cat, 0.75); o.Accession != "NC_A" {
		t.Fatalf("score equal to threshold counts, got %+v", o)
	}
	if o := ClassifyRead(read("ACGT"), cat, 1.0); o.Status != Unclassified {
		t.Fatalf("threshold 1.0 needs an exact window, got %+v", o)
	}
}

func TestClassifyReadEmptyGeneListsNeverWin(t *testing.T) {
	cat := mustCatalog(t, acc("NC_EMPTY"), acc("NC_A", "ACGT"), acc("NC_EMPTY2"))
	o := ClassifyRead(read("ACGT"), cat, 0.4)
	if o.Accession != "NC_A" {
		t.Fatalf("got %+v", o)
	}
	only := mustCatalog(t, acc("NC_EMPTY"))
	if o := ClassifyRead(read("ACGT"), only, 0.4); o.Status != Unclassified {
		t.Fatalf("empty catalog entry must not win: %+v", o)
	}
}

func TestClassifyReadDegenerate(t *testing.T) {
	cat := mustCatalog(t, acc("NC_A", "ACGT"))
	if o := ClassifyRead(read(""), cat, 0.4); o.Status != Degenerate || o.Accession != "" {
		t.Fatalf("empty read: %+v", o)
	}
	// empty gene sequence scores 0 instead of failing the read
	bad := mustCatalog(t, catalog.Accession{ID: "NC_BAD", Genes: []catalog.Gene{{ID: "g"}}}, acc("NC_A", "ACGT"))
	if o := ClassifyRead(read("ACGT"), bad, 0.4); o.Accession != "NC_A" {
		t.Fatalf("degenerate gene should be skipped: %+v", o)
	}
}

func TestClassifyReadEmptyCatalog(t *testing.T) {
	if o := ClassifyRead(read("ACGT"), mustCatalog(t), 0.4); o.Status != Unclassified {
		t.Fatalf("got %+v", o)
	}
}

func TestStatusString(t *testing.T) {
	if Classified.String() != "classified" || Unclassified.String() != "unclassified" || Degenerate.String() != "degenerate" {
		t.Fatalf("bad status names")
	}
	if Status(42).String() != "unknown" {
		t.Fatalf("unknown status")
	}
}
