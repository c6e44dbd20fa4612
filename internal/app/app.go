// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"vseek/internal/appcore"
	"vseek/internal/cli"
	"vseek/internal/cmdutil"
	"vseek/internal/config"
	"vseek/internal/runutil"
	"vseek/internal/similarity"
	"vseek/internal/version"
	"vseek/internal/writers"
)

// program carries what every subcommand needs: the output streams, the
// shared logging flags and the exit code the selected command settled on.
type program struct {
	stdout, stderr io.Writer
	logging        cli.Logging
	code           int
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	p := &program{stdout: stdout, stderr: stderr}
	root := p.rootCommand()
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	// Commands report runtime failures through p.code; an error out of
	// Execute is always a usage problem (flags, arguments, configuration).
	if err := root.ExecuteContext(parent); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.CommandPath())
		return appcore.ExitUsage
	}
	return p.code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func (p *program) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "vseek",
		Short: "virus read classification against a catalog of reference genes",
		Long: `vseek: decide which viruses are present in a metagenomic sample

Every read is scored against each reference gene of a catalog with a
sliding-window Hamming similarity; the best-matching accession is counted.
The count table is checkpointed while the run progresses.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate("vseek version {{.Version}}\n")
	cli.RegisterLogging(root.PersistentFlags(), &p.logging)

	root.AddCommand(p.classifyCommand())
	root.AddCommand(p.catalogCommand())
	root.AddCommand(p.scoreCommand())
	root.AddCommand(p.versionCommand())
	return root
}

func (p *program) classifyCommand() *cobra.Command {
	var opts cli.Options
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "count reads per best-matching accession",
		Example: `  vseek classify --reads sample.fasta --catalog refs/ --out counts.json
  vseek classify -r sample.fa.gz -c refs/ --accessions manifest.txt --out counts.json -t 0 --progress`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := config.Load(opts.Config)
			if err != nil {
				return err
			}
			cli.Merge(cmd.Flags(), &opts, &p.logging, file)
			if err := cli.ValidateLogging(p.logging); err != nil {
				return err
			}
			if err := cli.Validate(opts); err != nil {
				return err
			}
			logger, closeLog, err := cmdutil.NewLogger(p.stderr, p.logging)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()
			if file.Path != "" {
				logger.Debug("loaded config", "path", file.Path)
			}

			p.code = appcore.Run(cmd.Context(), p.stdout, p.stderr, appcore.Options{
				Reads:              opts.Reads,
				Catalog:            opts.Catalog,
				Accessions:         opts.Accessions,
				Threshold:          opts.Threshold,
				CheckpointInterval: opts.CheckpointInterval,
				LogInterval:        opts.LogInterval,
				CheckpointRetries:  opts.CheckpointRetries,
				Threads:            opts.Threads,
				Out:                opts.Out,
				Assignments:        opts.Assignments,
				Output:             opts.Output,
				Progress:           opts.Progress,
			}, logger)
			return nil
		},
	}
	cli.Register(cmd.Flags(), &opts)
	return cmd
}

func (p *program) catalogCommand() *cobra.Command {
	var opts cli.CatalogOptions
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "build the reference catalog and report its accessions and genes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cli.ValidateLogging(p.logging); err != nil {
				return err
			}
			if err := cli.ValidateCatalog(opts); err != nil {
				return err
			}
			logger, closeLog, err := cmdutil.NewLogger(p.stderr, p.logging)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			cat, rep, err := appcore.LoadCatalog(cmd.Context(), opts.Catalog, opts.Accessions, runutil.EffectiveThreads(opts.Threads), logger)
			if err != nil {
				logger.Error("loading catalog", "err", err)
				p.code = appcore.ExitCode(err)
				return nil
			}
			p.code = p.flush(func(w io.Writer) error {
				return writers.WriteCatalog(opts.Output, w, writers.CatalogReport{Catalog: cat, Report: rep})
			})
			return nil
		},
	}
	cli.RegisterCatalog(cmd.Flags(), &opts)
	return cmd
}

func (p *program) scoreCommand() *cobra.Command {
	var hamming bool
	cmd := &cobra.Command{
		Use:   "score READ REFERENCE",
		Short: "print the best sliding-window similarity of READ within REFERENCE",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			var (
				s   float64
				err error
			)
			if hamming {
				s, err = similarity.HammingDistanceScore(args[0], args[1])
			} else {
				s, err = similarity.BestSimilarity(args[0], args[1])
			}
			if err != nil {
				return err
			}
			p.code = p.flush(func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%.4f\n", s)
				return err
			})
			return nil
		},
	}
	cmd.Flags().BoolVar(&hamming, "hamming", false, "print the Hamming distance fraction of two equal-length sequences instead")
	return cmd
}

func (p *program) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			p.code = p.flush(func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "vseek version %s\nGo version: %s\nOS/Arch: %s/%s\n",
					version.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
				return err
			})
		},
	}
}

// flush runs write against a buffered stdout and maps the result to an exit
// code; a closed downstream pipe is not an error.
func (p *program) flush(write func(io.Writer) error) int {
	outw := bufio.NewWriter(p.stdout)
	err := write(outw)
	if e := outw.Flush(); err == nil {
		err = e
	}
	if writers.IsBrokenPipe(err) {
		return appcore.ExitOK
	} else if err != nil {
		_, _ = fmt.Fprintln(p.stderr, err)
		return appcore.ExitFailure
	}
	return appcore.ExitOK
}
