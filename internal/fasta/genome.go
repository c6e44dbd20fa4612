// internal/fasta/genome.go
package fasta

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// Genome is a single-sequence reference FASTA flattened to one string.
type Genome struct {
	Header   string
	Sequence string
}

// LoadGenome reads a genome FASTA. The first non-blank line must be a header;
// every following line is joined without separators. Plain files are memory
// mapped; gzip input is streamed.
func LoadGenome(path string) (Genome, error) {
	fh, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Genome{}, &MissingInputError{Path: path, Err: err}
		}
		return Genome{}, err
	}
	defer fh.Close()

	fi, err := fh.Stat()
	if err != nil {
		return Genome{}, err
	}
	if fi.Size() == 0 {
		return Genome{}, fmt.Errorf("%s: %w", path, ErrInvalidGenome)
	}

	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		_ = fh.Close()
		rc, err := openReader(path, nil)
		if err != nil {
			return Genome{}, err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return Genome{}, fmt.Errorf("read genome %s: %w", path, err)
		}
		return flattenGenome(path, data)
	}

	m, err := mmap.Map(fh, mmap.RDONLY, 0)
	if err != nil {
		return Genome{}, fmt.Errorf("mmap %s: %w", path, err)
	}
	defer func() { _ = m.Unmap() }()
	return flattenGenome(path, m)
}

// flattenGenome copies everything it keeps out of data, so data may be unmapped
// afterwards.
func flattenGenome(path string, data []byte) (Genome, error) {
	var (
		g    Genome
		seen bool
		seq  strings.Builder
	)
	rest := data
	seq.Grow(len(data))
	for len(rest) > 0 {
		var line []byte
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			line, rest = rest, nil
		}
		line = bytes.TrimSpace(line)
		if !seen {
			if len(line) == 0 {
				continue
			}
			if line[0] != '>' {
				return Genome{}, fmt.Errorf("%s: %w", path, ErrInvalidGenome)
			}
			g.Header = string(line[1:])
			seen = true
			continue
		}
		seq.Write(line)
	}
	if !seen {
		return Genome{}, fmt.Errorf("%s: %w", path, ErrInvalidGenome)
	}
	g.Sequence = seq.String()
	return g, nil
}
