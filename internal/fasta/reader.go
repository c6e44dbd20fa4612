// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
)

// ReadRecord is one FASTA entry of a read file.
type ReadRecord struct {
	SourceID   string
	FragmentID string
	Sequence   string
	Length     int
}

const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)

// Reader is a forward-only, single-pass stream of ReadRecords backed by an
// open file. Restarting requires a new Reader.
type Reader struct {
	path  string
	rc    io.ReadCloser
	sc    *bufio.Scanner
	nread *atomic.Int64

	lineNo  int
	started bool
	eof     bool
	closed  bool

	pending     []byte // header line of the next entry, if already read
	pendingLine int
	seq         []byte
}

// Open verifies that path exists and returns a Reader over it. "-" reads
// stdin. A missing file yields a *MissingInputError.
func Open(path string) (*Reader, error) {
	counter := new(atomic.Int64)
	rc, err := openReader(path, counter)
	if err != nil {
		return nil, err
	}
	return NewReader(path, rc, counter), nil
}

// NewReader wraps an already opened stream. name is used in error messages.
// counter may be nil.
func NewReader(name string, rc io.ReadCloser, counter *atomic.Int64) *Reader {
	if counter == nil {
		counter = new(atomic.Int64)
	}
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return &Reader{path: name, rc: rc, sc: sc, nread: counter, seq: make([]byte, 0, 1<<12)}
}

// Path returns the name the reader was opened with.
func (r *Reader) Path() string { return r.path }

// BytesRead reports raw bytes consumed from the underlying file so far.
func (r *Reader) BytesRead() int64 { return r.nread.Load() }

// Next returns the next record, or io.EOF once the input is exhausted.
// A *MalformedHeaderError is not terminal: the offending entry is dropped and
// the following call resumes with the next entry.
func (r *Reader) Next() (ReadRecord, error) {
	if r.closed {
		return ReadRecord{}, io.EOF
	}
	if !r.started {
		r.started = true
		if strayLine := r.seekHeader(); strayLine > 0 {
			return ReadRecord{}, &MalformedHeaderError{Path: r.path, Line: strayLine}
		}
	}
	if r.pending == nil {
		return ReadRecord{}, r.finish()
	}

	header := string(r.pending)
	headerLine := r.pendingLine
	r.pending = nil
	r.seq = r.seq[:0]
	for r.scan() {
		line := bytes.TrimSpace(r.sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			r.pending = append([]byte(nil), line...)
			r.pendingLine = r.lineNo
			break
		}
		r.seq = append(r.seq, line...)
	}
	if r.pending == nil && r.sc.Err() != nil {
		return ReadRecord{}, r.finish()
	}

	fields := strings.Fields(header[1:])
	if len(fields) < 2 {
		return ReadRecord{}, &MalformedHeaderError{Path: r.path, Line: headerLine, Header: header}
	}
	s := string(r.seq)
	return ReadRecord{SourceID: fields[0], FragmentID: fields[1], Sequence: s, Length: len(s)}, nil
}

// seekHeader advances to the first header line. It returns the line number of
// the first non-blank line seen before it, or 0 if there was none.
func (r *Reader) seekHeader() int {
	stray := 0
	for r.scan() {
		line := bytes.TrimSpace(r.sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			r.pending = append([]byte(nil), line...)
			r.pendingLine = r.lineNo
			return stray
		}
		if stray == 0 {
			stray = r.lineNo
		}
	}
	return stray
}

func (r *Reader) scan() bool {
	if r.eof {
		return false
	}
	if !r.sc.Scan() {
		r.eof = true
		return false
	}
	r.lineNo++
	return true
}

// finish closes the reader and returns the terminal error (io.EOF on a clean end).
func (r *Reader) finish() error {
	err := r.sc.Err()
	_ = r.Close()
	if err != nil {
		return fmt.Errorf("fasta scan %s: %w", r.path, err)
	}
	return io.EOF
}

// Close releases the underlying file. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.rc.Close()
}
