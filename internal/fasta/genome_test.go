package fasta

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLoadGenomeFlattens(t *testing.T) {
	fn := writeFile(t, "NC_000001.fasta", ">NC_000001 test virus\nACGTACGTAC\nGTACG\n\n")
	g, err := LoadGenome(fn)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if g.Header != "NC_000001 test virus" {
		t.Errorf("header = %q", g.Header)
	}
	if g.Sequence != "ACGTACGTACGTACG" {
		t.Errorf("sequence = %q", g.Sequence)
	}
}

func TestLoadGenomeGzip(t *testing.T) {
	g, err := LoadGenome(writeGz(t, ">g\nAAA\nCCC\n"))
	if err != nil {
		t.Fatalf("load gz: %v", err)
	}
	if g.Sequence != "AAACCC" {
		t.Fatalf("sequence = %q", g.Sequence)
	}
}

func TestLoadGenomeErrors(t *testing.T) {
	if _, err := LoadGenome(writeFile(t, "bad.fasta", "ACGT\n")); !errors.Is(err, ErrInvalidGenome) {
		t.Fatalf("want ErrInvalidGenome, got %v", err)
	}
	if _, err := LoadGenome(writeFile(t, "empty.fasta", "")); !errors.Is(err, ErrInvalidGenome) {
		t.Fatalf("empty file: want ErrInvalidGenome, got %v", err)
	}
	var mi *MissingInputError
	if _, err := LoadGenome(filepath.Join(t.TempDir(), "x.fasta")); !errors.As(err, &mi) {
		t.Fatalf("want *MissingInputError, got %v", err)
	}
}
