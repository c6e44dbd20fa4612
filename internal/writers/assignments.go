// internal/writers/assignments.go
package writers

import (
	"encoding/json"
	"io"

	"vseek/internal/classify"
	"vseek/internal/jsonlutil"
	"vseek/pkg/api"
)

// ToAPIAssignment converts an outcome to its wire form.
func ToAPIAssignment(o classify.Outcome) api.AssignmentV1 {
	return api.AssignmentV1{
		Index:      o.Index,
		SourceID:   o.Read.SourceID,
		FragmentID: o.Read.FragmentID,
		Length:     o.Read.Length,
		Status:     o.Status.String(),
		Accession:  o.Accession,
		Score:      o.Score,
	}
}

// StartAssignmentWriter streams each outcome as one JSON line (v1).
func StartAssignmentWriter(out io.Writer, bufSize int) (chan<- classify.Outcome, <-chan error) {
	return jsonlutil.Start[classify.Outcome](out, bufSize,
		func(enc *json.Encoder, o classify.Outcome) error {
			return enc.Encode(ToAPIAssignment(o))
		},
		IsBrokenPipe,
	)
}
