package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"vseek/internal/fasta"
)

// sliceSource yields items in order; an item with a non-nil err is returned as
// that error instead of a record.
type sliceSource struct {
	items []sourceItem
	i     int
}

type sourceItem struct {
	rec fasta.ReadRecord
	err error
}

func (s *sliceSource) Next() (fasta.ReadRecord, error) {
	if s.i >= len(s.items) {
		return fasta.ReadRecord{}, io.EOF
	}
	it := s.items[s.i]
	s.i++
	return it.rec, it.err
}

func reads(seqs ...string) *sliceSource {
	s := &sliceSource{}
	for i, q := range seqs {
		s.items = append(s.items, sourceItem{rec: fasta.ReadRecord{SourceID: "SRR1", FragmentID: fmt.Sprint(i + 1), Sequence: q, Length: len(q)}})
	}
	return s
}

// memCheckpointer keeps every snapshot as decoded JSON.
type memCheckpointer struct {
	mu    sync.Mutex
	snaps []map[string]int
	fail  error
}

func (m *memCheckpointer) Write(_ context.Context, v any) error {
	if m.fail != nil {
		return m.fail
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var snap map[string]int
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	m.mu.Lock()
	m.snaps = append(m.snaps, snap)
	m.mu.Unlock()
	return nil
}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func newClassifier(t *testing.T, cfg Config, ck Checkpointer) *Classifier {
	t.Helper()
	cat := mustCatalog(t,
		acc("NC_A", "AAAAAAAAAAAA"),
		acc("NC_C", "CCCCCCCCCCCC"),
		acc("NC_G", "GGGGGGGGGGGG"),
		acc("NC_EMPTY"),
	)
	c, err := New(cfg, cat, ck, quietLogger())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return c
}

func TestRunEmptyStream(t *testing.T) {
	ck := &memCheckpointer{}
	c := newClassifier(t, DefaultConfig(), ck)
	sum, err := c.Run(context.Background(), reads())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Reads != 0 || sum.Counts.Len() != 0 {
		t.Fatalf("want empty table, got %+v", sum)
	}
	if len(ck.snaps) != 1 || len(ck.snaps[0]) != 0 {
		t.Fatalf("want one final empty checkpoint, got %v", ck.snaps)
	}
}

func TestRunCheckpointTicks(t *testing.T) {
	ck := &memCheckpointer{}
	cfg := DefaultConfig()
	cfg.CheckpointInterval = 5
	c := newClassifier(t, cfg, ck)

	// independent tally of what the table should hold at each read
	tally := map[string]int{}
	var atFive map[string]int
	c.OnOutcome = func(o Outcome) error {
		if o.Status == Classified {
			tally[o.Accession]++
		}
		return nil
	}
	c.OnProgress = func(n int) {
		if n == 5 {
			atFive = make(map[string]int, len(tally))
			for k, v := range tally {
				atFive[k] = v
			}
		}
	}
	seqs := []string{"AAAA", "CCCC", "AAAA", "TTTT", "GGGG", "AAAA", "CCCC", "GGGG", "GGGG", "AAAA", "CCCC", "AAAA"}
	sum, err := c.Run(context.Background(), reads(seqs...))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// ticks at 5 and 10, plus the final one at 12
	if len(ck.snaps) != 3 || sum.Checkpoints != 3 {
		t.Fatalf("want 3 checkpoints, got %d (%d)", len(ck.snaps), sum.Checkpoints)
	}
	want5 := map[string]int{"NC_A": 2, "NC_C": 1, "NC_G": 1}
	if diff := cmp.Diff(want5, ck.snaps[0]); diff != "" {
		t.Fatalf("snapshot at 5 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(atFive, ck.snaps[0]); diff != "" {
		t.Fatalf("snapshot differs from in-memory table at read 5:\n%s", diff)
	}
	want10 := map[string]int{"NC_A": 4, "NC_C": 2, "NC_G": 3}
	if diff := cmp.Diff(want10, ck.snaps[1]); diff != "" {
		t.Fatalf("snapshot at 10 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sum.Counts.Snapshot(), ck.snaps[2]); diff != "" {
		t.Fatalf("final snapshot (-want +got):\n%s", diff)
	}
	if sum.Reads != 12 || sum.Unclassified != 1 || sum.Classified != 11 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Counts.Total() > sum.Reads {
		t.Fatalf("counted more reads than consumed")
	}
}

func TestRunUnclassifiedNeverCounted(t *testing.T) {
	c := newClassifier(t, DefaultConfig(), nil)
	sum, err := c.Run(context.Background(), reads("TTTT", "TTTT", ""))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Counts.Len() != 0 || sum.Unclassified != 2 || sum.Degenerate != 1 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestRunSkipsMalformedEntries(t *testing.T) {
	src := reads("AAAA", "CCCC")
	src.items = append([]sourceItem{{err: &fasta.MalformedHeaderError{Path: "x", Line: 1, Header: ">bad"}}}, src.items...)
	c := newClassifier(t, DefaultConfig(), nil)
	var idx []int
	c.OnOutcome = func(o Outcome) error { idx = append(idx, o.Index); return nil }
	sum, err := c.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Malformed != 1 || sum.Reads != 2 {
		t.Fatalf("summary = %+v", sum)
	}
	if diff := cmp.Diff([]int{0, 1}, idx); diff != "" {
		t.Fatalf("indices (-want +got):\n%s", diff)
	}
}

func TestRunReadErrorAbortsButCheckpoints(t *testing.T) {
	boom := errors.New("disk gone")
	src := reads("AAAA", "CCCC")
	src.items = append(src.items, sourceItem{err: boom})
	ck := &memCheckpointer{}
	c := newClassifier(t, DefaultConfig(), ck)
	sum, err := c.Run(context.Background(), src)
	if !errors.Is(err, boom) {
		t.Fatalf("want read error, got %v", err)
	}
	if sum.Reads != 2 || len(ck.snaps) != 1 || ck.snaps[0]["NC_A"] != 1 {
		t.Fatalf("progress not preserved: %+v %v", sum, ck.snaps)
	}
}

func TestRunCheckpointFailureIsFatal(t *testing.T) {
	ck := &memCheckpointer{fail: errors.New("read-only fs")}
	cfg := DefaultConfig()
	cfg.CheckpointInterval = 1
	c := newClassifier(t, cfg, ck)
	sum, err := c.Run(context.Background(), reads("AAAA", "CCCC"))
	if err == nil || !strings.Contains(err.Error(), "checkpoint after 1 reads") {
		t.Fatalf("want checkpoint error, got %v", err)
	}
	if sum.Reads != 1 {
		t.Fatalf("run should stop at the failed tick, got %d reads", sum.Reads)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, threads := range []int{1, 4} {
		cfg := DefaultConfig()
		cfg.Threads = threads
		c := newClassifier(t, cfg, nil)
		if _, err := c.Run(ctx, reads("AAAA", "CCCC")); !errors.Is(err, context.Canceled) {
			t.Fatalf("threads=%d: want context.Canceled, got %v", threads, err)
		}
	}
}

func TestRunOnOutcomeErrorStops(t *testing.T) {
	stop := errors.New("sink closed")
	for _, threads := range []int{1, 3} {
		cfg := DefaultConfig()
		cfg.Threads = threads
		c := newClassifier(t, cfg, nil)
		c.OnOutcome = func(o Outcome) error {
			if o.Index == 2 {
				return stop
			}
			return nil
		}
		sum, err := c.Run(context.Background(), reads("AAAA", "CCCC", "GGGG", "AAAA", "AAAA"))
		if !errors.Is(err, stop) {
			t.Fatalf("threads=%d: want sink error, got %v", threads, err)
		}
		if sum.Reads != 3 {
			t.Fatalf("threads=%d: want 3 applied reads, got %d", threads, sum.Reads)
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	alpha := "ACGT"
	randSeq := func(n int) string {
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteByte(alpha[r.Intn(4)])
		}
		return b.String()
	}
	var genesA, genesB []string
	for i := 0; i < 3; i++ {
		genesA = append(genesA, randSeq(60))
		genesB = append(genesB, randSeq(60))
	}
	cat := mustCatalog(t, acc("NC_A", genesA...), acc("NC_B", genesB...), acc("NC_C", genesA[0]))
	var seqs []string
	for i := 0; i < 200; i++ {
		seqs = append(seqs, randSeq(4+r.Intn(10)))
	}

	run := func(threads int) (Summary, []Outcome, []map[string]int) {
		cfg := DefaultConfig()
		cfg.Threads = threads
		cfg.CheckpointInterval = 7
		ck := &memCheckpointer{}
		c, err := New(cfg, cat, ck, quietLogger())
		if err != nil {
			t.Fatal(err)
		}
		var outs []Outcome
		c.OnOutcome = func(o Outcome) error { outs = append(outs, o); return nil }
		sum, err := c.Run(context.Background(), reads(seqs...))
		if err != nil {
			t.Fatalf("threads=%d: %v", threads, err)
		}
		return sum, outs, ck.snaps
	}

	s1, o1, c1 := run(1)
	s4, o4, c4 := run(4)
	if diff := cmp.Diff(s1.Counts.Snapshot(), s4.Counts.Snapshot()); diff != "" {
		t.Fatalf("counts differ (-serial +parallel):\n%s", diff)
	}
	if diff := cmp.Diff(o1, o4); diff != "" {
		t.Fatalf("outcomes differ (-serial +parallel):\n%s", diff)
	}
	if diff := cmp.Diff(c1, c4); diff != "" {
		t.Fatalf("checkpoints differ (-serial +parallel):\n%s", diff)
	}
	if s1.Classified != s4.Classified || s1.Unclassified != s4.Unclassified {
		t.Fatalf("summaries differ: %+v vs %+v", s1, s4)
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New(Config{}, mustCatalog(t), nil, nil); err == nil {
		t.Fatalf("expected config error")
	}
	if _, err := New(DefaultConfig(), nil, nil, nil); err == nil {
		t.Fatalf("expected nil catalog error")
	}
}
