// internal/catalog/discover.go
package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vseek/internal/fasta"
)

// genomeSuffixes are tried in order for <root>/<acc>/<acc><suffix>.
var genomeSuffixes = []string{".fasta", ".fa", ".fasta.gz", ".fa.gz"}

// AnnotationSuffix names <root>/<acc>/<acc>_genes.json.
const AnnotationSuffix = "_genes.json"

// Discover lists catalog sources under root. With a manifest, the listed
// accessions are used in file order; otherwise every subdirectory of root is
// an accession, sorted by name.
func Discover(root, manifest string) ([]Source, error) {
	fi, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &fasta.MissingInputError{Path: root, Err: err}
		}
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("catalog root %s is not a directory", root)
	}

	var ids []string
	if manifest != "" {
		ids, err = ReadManifest(manifest)
		if err != nil {
			return nil, err
		}
	} else {
		ents, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
				ids = append(ids, e.Name())
			}
		}
		sort.Strings(ids)
	}

	out := make([]Source, 0, len(ids))
	for _, id := range ids {
		dir := filepath.Join(root, id)
		src := Source{
			Accession:      id,
			GenomePath:     filepath.Join(dir, id+genomeSuffixes[0]),
			AnnotationPath: filepath.Join(dir, id+AnnotationSuffix),
		}
		for _, suf := range genomeSuffixes {
			p := filepath.Join(dir, id+suf)
			if _, err := os.Stat(p); err == nil {
				src.GenomePath = p
				break
			}
		}
		out = append(out, src)
	}
	return out, nil
}

// ReadManifest reads accession ids, one per line. Blank lines and lines
// starting with '#' are ignored; so is anything after the first field.
func ReadManifest(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &fasta.MissingInputError{Path: path, Err: err}
		}
		return nil, err
	}
	defer fh.Close()

	var (
		ids  []string
		seen = map[string]bool{}
	)
	sc := bufio.NewScanner(fh)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id := strings.Fields(line)[0]
		if seen[id] {
			return nil, fmt.Errorf("%s:%d: %w %q", path, n, ErrDuplicateAccession, id)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return ids, nil
}
