// Package catalog holds the reference catalog: an ordered, read-only mapping
// from accession id to the gene sequences extracted from its genome.
//
// Iteration order is insertion order and is part of the contract; the
// classifier breaks score ties by it.
package catalog

import (
	"errors"
	"fmt"
)

// Gene is one reference gene sequence cut from a genome.
// Sequence == genome[Start : End+1].
type Gene struct {
	ID       string
	Name     string
	Start    int
	End      int
	Sequence string
}

// Accession is a catalog entry. Genes may be empty.
type Accession struct {
	ID    string
	Genes []Gene
}

// ErrDuplicateAccession is returned when an accession id is inserted twice.
var ErrDuplicateAccession = errors.New("catalog: duplicate accession")

// Catalog is built once and shared read-only; it is safe for concurrent use.
type Catalog struct {
	accs  []Accession
	index map[string]int
}

// New builds a catalog from accs, keeping their order.
func New(accs ...Accession) (*Catalog, error) {
	c := &Catalog{
		accs:  make([]Accession, 0, len(accs)),
		index: make(map[string]int, len(accs)),
	}
	for _, a := range accs {
		if _, dup := c.index[a.ID]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicateAccession, a.ID)
		}
		c.index[a.ID] = len(c.accs)
		c.accs = append(c.accs, a)
	}
	return c, nil
}

// Len returns the number of accessions.
func (c *Catalog) Len() int { return len(c.accs) }

// At returns the i-th accession in insertion order.
func (c *Catalog) At(i int) Accession { return c.accs[i] }

// Accessions returns accession ids in insertion order.
func (c *Catalog) Accessions() []string {
	ids := make([]string, len(c.accs))
	for i, a := range c.accs {
		ids[i] = a.ID
	}
	return ids
}

// Lookup returns the accession with the given id.
func (c *Catalog) Lookup(id string) (Accession, bool) {
	i, ok := c.index[id]
	if !ok {
		return Accession{}, false
	}
	return c.accs[i], true
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// GeneCount returns the total number of genes across all accessions.
func (c *Catalog) GeneCount() int {
	n := 0
	for _, a := range c.accs {
		n += len(a.Genes)
	}
	return n
}
