package appcore

import (
	"io"

	"vseek/internal/classify"
	"vseek/internal/writers"
)

// WriterFactory starts a streaming writer for values of type T.
type WriterFactory[T any] interface {
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// AssignmentWriterFactory streams per-read outcomes as JSONL.
type AssignmentWriterFactory struct{}

var _ WriterFactory[classify.Outcome] = AssignmentWriterFactory{}

func (AssignmentWriterFactory) Start(out io.Writer, bufSize int) (chan<- classify.Outcome, <-chan error) {
	return writers.StartAssignmentWriter(out, bufSize)
}
