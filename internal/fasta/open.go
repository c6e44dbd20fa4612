// internal/fasta/open.go
package fasta

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync/atomic"

	gzip "github.com/klauspost/pgzip"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// countingReader tracks raw (pre-decompression) bytes for progress reporting.
type countingReader struct {
	r io.Reader
	n *atomic.Int64
}

func (c countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// openReader opens path for reading; "-" is stdin. Gzip is detected by the
// magic number (1F 8B) or a .gz suffix. Raw bytes read are added to counter
// when it is non-nil.
func openReader(path string, counter *atomic.Int64) (io.ReadCloser, error) {
	if counter == nil {
		counter = new(atomic.Int64)
	}
	if path == "-" {
		return io.NopCloser(countingReader{r: os.Stdin, n: counter}), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path, Err: err}
		}
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	src := countingReader{r: fh, n: counter}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(src)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return &multiReadCloser{Reader: src, closers: []io.Closer{fh}}, nil
}

// Size returns the on-disk size of path, or 0 for stdin and unknown files.
func Size(path string) int64 {
	if path == "-" {
		return 0
	}
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}
