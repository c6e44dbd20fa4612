// internal/catalog/build.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"vseek/internal/fasta"
)

// Source names the files that make up one accession.
type Source struct {
	Accession      string
	GenomePath     string
	AnnotationPath string
}

// BuildOptions controls Build.
type BuildOptions struct {
	Workers int         // concurrent loaders (0 = all CPUs)
	Logger  *log.Logger // nil = log.Default()
}

// Report summarizes a build.
type Report struct {
	Accessions int
	Genes      int
	Empty      []string // accessions with no extractable genes
	Skipped    []Skip
}

// Build loads every source and returns the catalog in sources order.
// Sources are loaded concurrently; insertion order does not depend on which
// loader finishes first. A missing genome or annotation file aborts the build
// with a *fasta.MissingInputError.
func Build(ctx context.Context, sources []Source, opts BuildOptions) (*Catalog, Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type loaded struct {
		acc   Accession
		skips []Skip
	}
	results := make([]loaded, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			acc, skips, err := LoadSource(src)
			if err != nil {
				return err
			}
			logger.Debug("loaded accession", "accession", src.Accession, "genes", len(acc.Genes), "skipped", len(skips))
			results[i] = loaded{acc: acc, skips: skips}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Report{}, err
	}

	var rep Report
	accs := make([]Accession, len(results))
	for i, r := range results {
		accs[i] = r.acc
		rep.Genes += len(r.acc.Genes)
		if len(r.acc.Genes) == 0 {
			rep.Empty = append(rep.Empty, r.acc.ID)
		}
		rep.Skipped = append(rep.Skipped, r.skips...)
	}
	cat, err := New(accs...)
	if err != nil {
		return nil, Report{}, err
	}
	rep.Accessions = cat.Len()
	return cat, rep, nil
}

// LoadSource reads one accession's genome and annotations and extracts its genes.
func LoadSource(src Source) (Accession, []Skip, error) {
	genome, err := fasta.LoadGenome(src.GenomePath)
	if err != nil {
		return Accession{}, nil, fmt.Errorf("accession %s: %w", src.Accession, err)
	}
	fh, err := os.Open(src.AnnotationPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = &fasta.MissingInputError{Path: src.AnnotationPath, Err: err}
		}
		return Accession{}, nil, fmt.Errorf("accession %s: %w", src.Accession, err)
	}
	defer fh.Close()
	anns, err := ParseAnnotations(fh)
	if err != nil {
		return Accession{}, nil, fmt.Errorf("accession %s: %s: %w", src.Accession, src.AnnotationPath, err)
	}
	acc, skips := Extract(src.Accession, genome.Sequence, anns)
	return acc, skips, nil
}
