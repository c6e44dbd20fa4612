// pkg/api/summary_v1.go
package api

// SummaryV1 is the stable JSON schema for a classify run summary.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SummaryV1 struct {
	Reads        int            `json:"reads"`
	Classified   int            `json:"classified"`
	Unclassified int            `json:"unclassified"`
	Degenerate   int            `json:"degenerate"`
	Malformed    int            `json:"malformed"`
	Checkpoints  int            `json:"checkpoints"`
	Counts       map[string]int `json:"counts"`
	ElapsedMS    int64          `json:"elapsed_ms"`
	Out          string         `json:"out,omitempty"`
	Threshold    float64        `json:"threshold"`
}

// AssignmentV1 is one JSONL line of the per-read assignment stream.
type AssignmentV1 struct {
	Index      int     `json:"index"`
	SourceID   string  `json:"source_id"`
	FragmentID string  `json:"fragment_id"`
	Length     int     `json:"length"`
	Status     string  `json:"status"`              // "classified" | "unclassified" | "degenerate"
	Accession  string  `json:"accession,omitempty"` // set when classified
	Score      float64 `json:"score"`
}

// CatalogV1 describes a built catalog for `vseek catalog --output json`.
type CatalogV1 struct {
	Accessions []CatalogAccessionV1 `json:"accessions"`
	Genes      int                  `json:"genes"`
	Empty      int                  `json:"empty"`
	Skipped    []SkippedGeneV1      `json:"skipped,omitempty"`
}

// CatalogAccessionV1 is one catalog entry with its gene count.
type CatalogAccessionV1 struct {
	ID    string `json:"id"`
	Genes int    `json:"genes"`
}

// SkippedGeneV1 records an annotated gene that could not be extracted.
type SkippedGeneV1 struct {
	Accession string `json:"accession"`
	GeneID    string `json:"gene_id"`
	Reason    string `json:"reason"`
}
