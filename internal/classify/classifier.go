// internal/classify/classifier.go
package classify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"vseek/internal/catalog"
	"vseek/internal/fasta"
)

// Source is a single-pass read stream; *fasta.Reader satisfies it.
// Next returns io.EOF at the end; *fasta.MalformedHeaderError is not terminal.
type Source interface {
	Next() (fasta.ReadRecord, error)
}

// Checkpointer persists the count table; *checkpoint.Writer satisfies it.
type Checkpointer interface {
	Write(ctx context.Context, v any) error
}

// Summary is the result of a run.
type Summary struct {
	Reads        int // well-formed reads consumed
	Classified   int
	Unclassified int
	Degenerate   int
	Malformed    int // entries skipped for a bad header
	Checkpoints  int // snapshots written
	Counts       *CountTable
	Elapsed      time.Duration
}

// Classifier owns the count table for one run. The catalog is shared
// read-only and never copied.
type Classifier struct {
	cfg    Config
	cat    *catalog.Catalog
	ckpt   Checkpointer
	logger *log.Logger

	// OnOutcome, when set, sees every outcome in read order.
	OnOutcome func(Outcome) error
	// OnProgress, when set, is called after each applied read with the running count.
	OnProgress func(reads int)
}

// New validates cfg and returns a Classifier. ckpt may be nil to disable
// checkpoints; logger may be nil.
func New(cfg Config, cat *catalog.Catalog, ckpt Checkpointer, logger *log.Logger) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, errors.New("classify: nil catalog")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Classifier{cfg: cfg, cat: cat, ckpt: ckpt, logger: logger}, nil
}

// run carries the mutable state of one Run call. Only the applying goroutine
// touches it, except malformed which the feeder may bump.
type run struct {
	c         *Classifier
	sum       Summary
	malformed atomic.Int64
	ckptErr   error
	start     time.Time
}

// Run classifies every read of src and returns the summary. Every
// CheckpointInterval reads the table is checkpointed; a final checkpoint is
// written when the stream ends, fails or ctx is canceled.
func (c *Classifier) Run(ctx context.Context, src Source) (Summary, error) {
	r := &run{c: c, start: time.Now()}
	r.sum.Counts = NewCountTable()

	var err error
	if c.cfg.Threads > 1 {
		err = r.parallel(ctx, src)
	} else {
		err = r.serial(ctx, src)
	}

	r.sum.Malformed = int(r.malformed.Load())
	if r.ckptErr == nil && c.ckpt != nil {
		// Progress is saved even when the run is being torn down.
		if werr := c.ckpt.Write(context.WithoutCancel(ctx), r.sum.Counts); werr != nil {
			if err == nil {
				err = fmt.Errorf("final checkpoint: %w", werr)
			}
		} else {
			r.sum.Checkpoints++
		}
	}
	r.sum.Elapsed = time.Since(r.start)
	return r.sum, err
}

func (r *run) warn(err error) {
	r.malformed.Add(1)
	r.c.logger.Warn("skipping malformed fasta entry", "err", err)
}

// next pulls the following well-formed record; io.EOF ends the stream.
func (r *run) next(src Source) (fasta.ReadRecord, error) {
	for {
		rec, err := src.Next()
		var mh *fasta.MalformedHeaderError
		if errors.As(err, &mh) {
			r.warn(err)
			continue
		}
		return rec, err
	}
}

func (r *run) serial(ctx context.Context, src Source) error {
	for idx := 0; ; idx++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		rec, err := r.next(src)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		o := ClassifyRead(rec, r.c.cat, r.c.cfg.Threshold)
		o.Index = idx
		if err := r.apply(ctx, o); err != nil {
			return err
		}
	}
}

// apply folds one outcome into the summary and fires checkpoint/progress ticks.
func (r *run) apply(ctx context.Context, o Outcome) error {
	s := &r.sum
	s.Reads++
	switch o.Status {
	case Classified:
		s.Classified++
		s.Counts.Inc(o.Accession)
	case Unclassified:
		s.Unclassified++
	case Degenerate:
		s.Degenerate++
		r.c.logger.Debug("empty read sequence", "source", o.Read.SourceID, "fragment", o.Read.FragmentID)
	}
	if r.c.OnOutcome != nil {
		if err := r.c.OnOutcome(o); err != nil {
			return err
		}
	}
	if r.c.ckpt != nil && s.Reads%r.c.cfg.CheckpointInterval == 0 {
		// A tick in progress completes even if the run is being canceled.
		if err := r.c.ckpt.Write(context.WithoutCancel(ctx), s.Counts); err != nil {
			r.ckptErr = err
			return fmt.Errorf("checkpoint after %d reads: %w", s.Reads, err)
		}
		s.Checkpoints++
	}
	if s.Reads%r.c.cfg.LogInterval == 0 {
		r.c.logger.Info("progress",
			"reads", humanize.Comma(int64(s.Reads)),
			"classified", humanize.Comma(int64(s.Classified)),
			"elapsed", time.Since(r.start).Round(time.Millisecond))
	}
	if r.c.OnProgress != nil {
		r.c.OnProgress(s.Reads)
	}
	return nil
}
