// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"vseek/internal/checkpoint"
	"vseek/internal/classify"
	"vseek/internal/config"
)

// Output formats for run summaries.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logging holds the persistent logging flags shared by every subcommand.
type Logging struct {
	Level   string
	File    string
	Verbose bool
	Quiet   bool
}

// Options holds the classify flags.
type Options struct {
	// Input
	Reads      string
	Catalog    string
	Accessions string

	// Classification
	Threshold          float64
	CheckpointInterval int
	LogInterval        int
	CheckpointRetries  int

	// Performance
	Threads int

	// Output
	Out         string
	Assignments string
	Output      string
	Progress    bool

	Config string
}

// CatalogOptions holds the catalog subcommand flags.
type CatalogOptions struct {
	Catalog    string
	Accessions string
	Threads    int
	Output     string
}

// RegisterLogging wires the logging flags onto fs (the root's persistent set).
func RegisterLogging(fs *pflag.FlagSet, l *Logging) {
	fs.StringVar(&l.Level, "log-level", "info", "log level: debug | info | warn | error")
	fs.StringVar(&l.File, "log-file", "", "also append logs to this file")
	fs.BoolVar(&l.Verbose, "verbose", false, "debug logging (overrides --log-level)")
	fs.BoolVarP(&l.Quiet, "quiet", "q", false, "only log errors")
}

// Register wires the classify flags onto fs.
func Register(fs *pflag.FlagSet, o *Options) {
	fs.StringVarP(&o.Reads, "reads", "r", "", "FASTA file of sample reads, gzip ok, '-' for STDIN [*]")
	fs.StringVarP(&o.Catalog, "catalog", "c", "", "catalog directory, one sub-directory per accession [*]")
	fs.StringVar(&o.Accessions, "accessions", "", "manifest of accession ids fixing catalog order")

	fs.Float64Var(&o.Threshold, "threshold", classify.DefaultThreshold, "minimum gene similarity counted toward an accession, (0,1]")
	fs.IntVar(&o.CheckpointInterval, "checkpoint-interval", classify.DefaultCheckpointInterval, "reads between checkpoint writes")
	fs.IntVar(&o.LogInterval, "log-interval", classify.DefaultLogInterval, "reads between progress log lines")
	fs.IntVar(&o.CheckpointRetries, "checkpoint-retries", checkpoint.DefaultRetries, "retries for a failed checkpoint write")

	fs.IntVarP(&o.Threads, "threads", "t", 1, "worker threads (0 = all CPUs)")

	fs.StringVar(&o.Out, "out", "", "count table JSON, rewritten at every checkpoint [*]")
	fs.StringVar(&o.Assignments, "assignments", "", "write one JSON line per read to this file ('-' for STDOUT)")
	fs.StringVarP(&o.Output, "output", "o", FormatText, "summary format: text | json")
	fs.BoolVar(&o.Progress, "progress", false, "show a progress bar on STDERR")

	fs.StringVar(&o.Config, "config", "", "JSON config file (default ./"+config.DefaultPath+" if present)")
}

// RegisterCatalog wires the catalog subcommand flags onto fs.
func RegisterCatalog(fs *pflag.FlagSet, o *CatalogOptions) {
	fs.StringVarP(&o.Catalog, "catalog", "c", "", "catalog directory [*]")
	fs.StringVar(&o.Accessions, "accessions", "", "manifest of accession ids fixing catalog order")
	fs.IntVarP(&o.Threads, "threads", "t", 0, "loader goroutines (0 = all CPUs)")
	fs.StringVarP(&o.Output, "output", "o", FormatText, "report format: text | json")
}

// Merge fills options from the config file wherever the matching flag was
// not set on the command line.
func Merge(fs *pflag.FlagSet, o *Options, l *Logging, f *config.File) {
	if f == nil {
		return
	}
	unset := func(name string) bool {
		fl := fs.Lookup(name)
		return fl != nil && !fl.Changed
	}
	str := func(name string, dst *string, v string) {
		if v != "" && unset(name) {
			*dst = v
		}
	}
	num := func(name string, dst *int, v *int) {
		if v != nil && unset(name) {
			*dst = *v
		}
	}

	str("reads", &o.Reads, f.Reads)
	str("catalog", &o.Catalog, f.Catalog)
	str("accessions", &o.Accessions, f.Accessions)
	str("out", &o.Out, f.Out)
	str("assignments", &o.Assignments, f.Assignments)
	if f.SimilarityThreshold != nil && unset("threshold") {
		o.Threshold = *f.SimilarityThreshold
	}
	num("checkpoint-interval", &o.CheckpointInterval, f.CheckpointInterval)
	num("log-interval", &o.LogInterval, f.LogInterval)
	num("checkpoint-retries", &o.CheckpointRetries, f.CheckpointRetries)
	num("threads", &o.Threads, f.Threads)
	if l != nil {
		str("log-level", &l.Level, f.LogLevel)
		str("log-file", &l.File, f.LogFile)
	}
}

// Validate applies the classify invariants.
func Validate(o Options) error {
	switch {
	case o.Reads == "":
		return errors.New("--reads is required")
	case o.Catalog == "":
		return errors.New("--catalog is required")
	case o.Out == "":
		return errors.New("--out is required")
	}
	if o.Out == "-" {
		return errors.New("--out must be a file (it is rewritten in place)")
	}
	if !(o.Threshold > 0 && o.Threshold <= 1) {
		return fmt.Errorf("--threshold %v must be in (0, 1]", o.Threshold)
	}
	if o.CheckpointInterval < 1 {
		return errors.New("--checkpoint-interval must be ≥ 1")
	}
	if o.LogInterval < 1 {
		return errors.New("--log-interval must be ≥ 1")
	}
	if o.CheckpointRetries < 0 {
		return errors.New("--checkpoint-retries must be ≥ 0")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	return validateFormat(o.Output)
}

// ValidateCatalog applies the catalog subcommand invariants.
func ValidateCatalog(o CatalogOptions) error {
	if o.Catalog == "" {
		return errors.New("--catalog is required")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	return validateFormat(o.Output)
}

// ValidateLogging checks the log level name.
func ValidateLogging(l Logging) error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("invalid --log-level %q", l.Level)
}

func validateFormat(f string) error {
	if f != FormatText && f != FormatJSON {
		return fmt.Errorf("invalid --output %q", f)
	}
	return nil
}
