// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"vseek/internal/catalog"
	"vseek/internal/checkpoint"
	"vseek/internal/classify"
	"vseek/internal/fasta"
	"vseek/internal/progress"
	"vseek/internal/runutil"
	"vseek/internal/writers"
)

// Exit codes
const (
	ExitOK             = 0
	ExitNoneClassified = 1
	ExitUsage          = 2
	ExitFailure        = 3
	ExitCanceled       = 130
)

// Options is the resolved classify configuration.
type Options struct {
	Reads      string
	Catalog    string
	Accessions string

	Threshold          float64
	CheckpointInterval int
	LogInterval        int
	CheckpointRetries  int
	Threads            int

	Out         string
	Assignments string // "", a path, or "-" for stdout
	Output      string
	Progress    bool
}

// ExitCode maps a run error to the process exit code. Missing inputs are a
// usage problem; everything else is a runtime failure.
func ExitCode(err error) int {
	var missing *fasta.MissingInputError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.As(err, &missing):
		return ExitUsage
	}
	return ExitFailure
}

// LoadCatalog discovers and builds the catalog under root, logging every
// skipped gene and empty accession.
func LoadCatalog(ctx context.Context, root, manifest string, threads int, logger *log.Logger) (*catalog.Catalog, catalog.Report, error) {
	sources, err := catalog.Discover(root, manifest)
	if err != nil {
		return nil, catalog.Report{}, err
	}
	cat, rep, err := catalog.Build(ctx, sources, catalog.BuildOptions{Workers: threads, Logger: logger})
	if err != nil {
		return nil, rep, err
	}
	for _, s := range rep.Skipped {
		logger.Warn("skipping gene", "accession", s.Accession, "gene", s.GeneID, "reason", s.Reason)
	}
	for _, id := range rep.Empty {
		logger.Warn("accession has no usable genes", "accession", id)
	}
	logger.Info("catalog loaded", "accessions", rep.Accessions, "genes", humanize.Comma(int64(rep.Genes)), "skipped", len(rep.Skipped))
	return cat, rep, nil
}

// Run classifies every read of o.Reads against the catalog and prints a run
// summary on stdout. It returns the process exit code.
func Run(parent context.Context, stdout, stderr io.Writer, o Options, logger *log.Logger) int {
	outw := bufio.NewWriter(stdout)
	threads := runutil.EffectiveThreads(o.Threads)

	cat, _, err := LoadCatalog(parent, o.Catalog, o.Accessions, threads, logger)
	if err != nil {
		logger.Error("loading catalog", "err", err)
		return ExitCode(err)
	}

	cfg := classify.Config{
		Threshold:          o.Threshold,
		CheckpointInterval: o.CheckpointInterval,
		LogInterval:        o.LogInterval,
		Threads:            threads,
	}
	ckpt := checkpoint.New(o.Out, checkpoint.WithRetries(o.CheckpointRetries), checkpoint.WithLogger(logger))
	c, err := classify.New(cfg, cat, ckpt, logger)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		return ExitUsage
	}

	rd, err := fasta.Open(o.Reads)
	if err != nil {
		logger.Error("opening reads", "err", err)
		return ExitCode(err)
	}
	defer func() { _ = rd.Close() }()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Per-read assignment stream
	summaryOut := io.Writer(outw)
	var (
		inCh     chan<- classify.Outcome
		writeErr <-chan error
		closeOut func() error
	)
	if o.Assignments != "" {
		var aw io.Writer = outw
		closeOut = func() error { return nil }
		if o.Assignments == "-" {
			// stdout carries the stream; the summary moves to stderr
			summaryOut = stderr
		} else {
			fh, err := os.Create(o.Assignments)
			if err != nil {
				logger.Error("creating assignments file", "err", err)
				return ExitFailure
			}
			aw, closeOut = fh, fh.Close
		}
		inCh, writeErr = AssignmentWriterFactory{}.Start(aw, threads*4)
		c.OnOutcome = func(oc classify.Outcome) error {
			select {
			case inCh <- oc:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	var bar *progress.Bar
	if o.Progress {
		bar = progress.New(stderr, fasta.Size(o.Reads), rd.BytesRead)
		c.OnProgress = bar.Tick
	}

	logger.Info("classifying", "reads", o.Reads, "threshold", o.Threshold, "threads", threads, "out", o.Out)
	sum, runErr := c.Run(ctx, rd)
	if bar != nil {
		bar.Done(runErr == nil)
	}

	if inCh != nil {
		close(inCh)
		werr := <-writeErr
		if cerr := closeOut(); werr == nil {
			werr = cerr
		}
		if werr != nil && !writers.IsBrokenPipe(werr) {
			logger.Error("writing assignments", "err", werr)
			if runErr == nil {
				return ExitFailure
			}
		}
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			logger.Warn("canceled, counts saved", "out", o.Out, "reads", humanize.Comma(int64(sum.Reads)))
		} else {
			logger.Error("classification failed", "reads", sum.Reads, "err", runErr)
		}
		_ = outw.Flush()
		return ExitCode(runErr)
	}

	logger.Info("done", "reads", humanize.Comma(int64(sum.Reads)), "classified", humanize.Comma(int64(sum.Classified)),
		"malformed", sum.Malformed, "elapsed", sum.Elapsed)
	err = writers.WriteSummary(o.Output, summaryOut, writers.RunReport{Summary: sum, Out: o.Out, Threshold: o.Threshold})
	if e := outw.Flush(); err == nil {
		err = e
	}
	if writers.IsBrokenPipe(err) {
		return ExitOK
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	if sum.Classified == 0 {
		return ExitNoneClassified
	}
	return ExitOK
}
