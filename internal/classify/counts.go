// internal/classify/counts.go
package classify

import (
	"encoding/json"
	"sort"
)

// CountTable maps accession id → number of reads assigned to it.
// The zero value is ready to use. It is not safe for concurrent mutation.
type CountTable struct {
	m     map[string]int
	total int
}

// NewCountTable returns an empty table.
func NewCountTable() *CountTable { return &CountTable{m: map[string]int{}} }

// Inc adds one read to id.
func (t *CountTable) Inc(id string) {
	if t.m == nil {
		t.m = map[string]int{}
	}
	t.m[id]++
	t.total++
}

// Get returns the count for id.
func (t *CountTable) Get(id string) int { return t.m[id] }

// Total returns the sum of all counts.
func (t *CountTable) Total() int { return t.total }

// Len returns the number of accessions with a count.
func (t *CountTable) Len() int { return len(t.m) }

// Keys returns the accession ids present, sorted.
func (t *CountTable) Keys() []string {
	ks := make([]string, 0, len(t.m))
	for k := range t.m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Snapshot returns an independent copy of the counts.
func (t *CountTable) Snapshot() map[string]int {
	out := make(map[string]int, len(t.m))
	for k, v := range t.m {
		out[k] = v
	}
	return out
}

// Merge adds every count of o into t.
func (t *CountTable) Merge(o *CountTable) {
	if o == nil {
		return
	}
	if t.m == nil {
		t.m = map[string]int{}
	}
	for k, v := range o.m {
		t.m[k] += v
		t.total += v
	}
}

// MarshalJSON encodes the table as a plain {"accession": count} object.
func (t *CountTable) MarshalJSON() ([]byte, error) {
	if t == nil || t.m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t.m)
}

// UnmarshalJSON decodes a {"accession": count} object, replacing t's contents.
func (t *CountTable) UnmarshalJSON(b []byte) error {
	m := map[string]int{}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	t.m, t.total = m, 0
	for _, v := range m {
		t.total += v
	}
	return nil
}
