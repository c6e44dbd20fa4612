// internal/writers/catalog.go
package writers

import (
	"fmt"
	"io"
	"text/tabwriter"

	"vseek/internal/catalog"
	"vseek/internal/jsonutil"
	"vseek/pkg/api"
)

// CatalogReport is what `vseek catalog` prints.
type CatalogReport struct {
	Catalog *catalog.Catalog
	Report  catalog.Report
}

func init() {
	RegisterCatalog(FormatText, writeCatalogText)
	RegisterCatalog(FormatJSON, func(w io.Writer, r CatalogReport) error {
		return jsonutil.EncodePretty(w, ToAPICatalog(r))
	})
}

// ToAPICatalog converts a catalog report to its wire form.
func ToAPICatalog(r CatalogReport) api.CatalogV1 {
	out := api.CatalogV1{
		Accessions: make([]api.CatalogAccessionV1, 0, r.Catalog.Len()),
		Genes:      r.Report.Genes,
		Empty:      len(r.Report.Empty),
	}
	for i := 0; i < r.Catalog.Len(); i++ {
		a := r.Catalog.At(i)
		out.Accessions = append(out.Accessions, api.CatalogAccessionV1{ID: a.ID, Genes: len(a.Genes)})
	}
	for _, s := range r.Report.Skipped {
		out.Skipped = append(out.Skipped, api.SkippedGeneV1{Accession: s.Accession, GeneID: s.GeneID, Reason: s.Reason})
	}
	return out
}

func writeCatalogText(w io.Writer, r CatalogReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "accession\tgenes")
	for i := 0; i < r.Catalog.Len(); i++ {
		a := r.Catalog.At(i)
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", a.ID, len(a.Genes))
	}
	_, _ = fmt.Fprintf(tw, "\n%d accessions, %d genes, %d skipped\n", r.Catalog.Len(), r.Report.Genes, len(r.Report.Skipped))
	for _, s := range r.Report.Skipped {
		_, _ = fmt.Fprintf(tw, "skipped\t%s/%s\t%s\n", s.Accession, s.GeneID, s.Reason)
	}
	return tw.Flush()
}
