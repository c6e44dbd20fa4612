// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
)

// Writer registries (format → handler). Formats register in init() blocks of
// summary.go and catalog.go.
var (
	SummaryWriters = map[string]func(io.Writer, RunReport) error{}
	CatalogWriters = map[string]func(io.Writer, CatalogReport) error{}
)

// Register helpers (idempotent last-wins)
func RegisterSummary(format string, fn func(io.Writer, RunReport) error)     { SummaryWriters[format] = fn }
func RegisterCatalog(format string, fn func(io.Writer, CatalogReport) error) { CatalogWriters[format] = fn }

// WriteSummary renders a run report in format.
func WriteSummary(format string, w io.Writer, r RunReport) error {
	fn, ok := SummaryWriters[format]
	if !ok {
		return fmt.Errorf("unknown summary format %q (no writer registered)", format)
	}
	return fn(w, r)
}

// WriteCatalog renders a catalog report in format.
func WriteCatalog(format string, w io.Writer, r CatalogReport) error {
	fn, ok := CatalogWriters[format]
	if !ok {
		return fmt.Errorf("unknown catalog format %q (no writer registered)", format)
	}
	return fn(w, r)
}
