// internal/catalog/annotation.go
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
)

// Annotation is one gene entry of an annotation document.
type Annotation struct {
	GeneID    string
	Name      string
	Start     int
	End       int
	HasCoords bool   // false when "annotation" is absent
	Invalid   string // non-empty when "annotation" is present but unusable
}

type annotationJSON struct {
	Annotation json.RawMessage `json:"annotation"`
	Name       string          `json:"name"`
}

// ParseAnnotations decodes
//
//	{ "<gene_id>": { "annotation": [start, end], "name": "<string>" }, ... }
//
// returning entries in document order.
func ParseAnnotations(r io.Reader) ([]Annotation, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("annotations: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("annotations: want JSON object, got %v", tok)
	}

	var out []Annotation
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("annotations: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("annotations: want gene id, got %v", tok)
		}
		var raw annotationJSON
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("annotations: gene %q: %w", id, err)
		}
		a := Annotation{GeneID: id, Name: raw.Name}
		if len(raw.Annotation) > 0 && string(raw.Annotation) != "null" {
			a.HasCoords = true
			var coords []int
			switch err := json.Unmarshal(raw.Annotation, &coords); {
			case err != nil:
				a.Invalid = "annotation is not a list of integers"
			case len(coords) != 2:
				a.Invalid = fmt.Sprintf("annotation has %d coordinates, want 2", len(coords))
			default:
				a.Start, a.End = coords[0], coords[1]
			}
		}
		out = append(out, a)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("annotations: %w", err)
	}
	return out, nil
}
