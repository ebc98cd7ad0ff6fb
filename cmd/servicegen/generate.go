package main

import (
	"errors"
	"fmt"
	"go/token"

	"github.com/spf13/cobra"

	"github.com/mpyw/servicegen/internal/codegen"
	"github.com/mpyw/servicegen/internal/config"
	"github.com/mpyw/servicegen/internal/diag"
	"github.com/mpyw/servicegen/internal/driver"
	"github.com/mpyw/servicegen/internal/incremental"
	"github.com/mpyw/servicegen/internal/processor"
)

// ErrDiagnostics is returned when the run reported errors.
var ErrDiagnostics = errors.New("service manifests were not generated")

type generateFlags struct {
	dir     string
	out     string
	config  string
	options []string
	verify  bool
	comment bool
	verbose bool
	force   bool
	color   string
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dir, "dir", "C", "", "load packages relative to this directory")
	cmd.Flags().StringVarP(&f.out, "out", "o", ".", "output root; manifests go to <out>/META-INF/services")
	cmd.Flags().StringVar(&f.config, "config", "", "read options from a servicegen.toml or servicegen.yaml file")
	cmd.Flags().StringArrayVarP(&f.options, "option", "O", nil, "set an option as key=value (verify, comment, verbose, marker)")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "check that marked types implement their service contracts")
	cmd.Flags().BoolVar(&f.comment, "comment", true, "wrap manifests in a generated-file banner")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "trace processing rounds and accepted services")
	cmd.Flags().BoolVar(&f.force, "force", false, "regenerate even when sources are unchanged")
	cmd.Flags().StringVar(&f.color, "color", "auto", "colorize diagnostics (auto|on|off)")
}

// resolveOptions merges, by increasing precedence, the defaults, the config file,
// -O pairs and the dedicated flags set on the command line.
func (f *generateFlags) resolveOptions(cmd *cobra.Command) (config.Options, error) {
	opts := config.Default()

	if f.config != "" {
		loaded, err := config.Load(f.config, opts)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	kv, err := config.ParseKeyValues(f.options)
	if err != nil {
		return opts, err
	}

	opts, err = opts.Apply(kv)
	if err != nil {
		return opts, err
	}

	if cmd.Flags().Changed("verify") {
		opts.Verify = f.verify
	}
	if cmd.Flags().Changed("comment") {
		opts.Comment = f.comment
	}
	if cmd.Flags().Changed("verbose") {
		opts.Verbose = f.verbose
	}

	return opts, nil
}

func runGenerate(cmd *cobra.Command, flags *generateFlags, patterns []string) error {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	opts, err := flags.resolveOptions(cmd)
	if err != nil {
		return err
	}

	mode, err := diag.ParseColorMode(flags.color)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	fset := token.NewFileSet()
	printer := diag.NewPrinter(cmd.ErrOrStderr(), fset, mode)

	logf := func(format string, args ...any) {
		if opts.Verbose {
			printer.Logf(format, args...)
		}
	}

	files, err := driver.Files(ctx, flags.dir, patterns...)
	if err != nil {
		return err
	}

	digests, err := incremental.Hash(ctx, files)
	if err != nil {
		return err
	}

	prev, err := incremental.Load(flags.out)
	if err != nil {
		logf("Ignoring previous index: %v", err)
		prev = nil
	}

	fingerprint := opts.Fingerprint()
	if !flags.force && prev.UpToDate(flags.out, fingerprint, digests) {
		logf("Manifests in %s are up to date", flags.out)
		return nil
	}

	prog, err := driver.LoadProgram(ctx, fset, flags.dir, patterns...)
	if err != nil {
		return err
	}

	for _, lib := range prog.Libraries {
		logf("Loaded contract package %s", lib.PkgPath)
	}

	sink := codegen.NewFileSink(flags.out)
	result := driver.Run(fset, prog.Targets, processor.Environment{
		Options:  opts,
		Sink:     sink,
		Reporter: printer,
	}, prog.Libraries...)

	if n := printer.ErrorCount(); n > 0 {
		return fmt.Errorf("%w: %d error(s)", ErrDiagnostics, n)
	}

	stale := prev.Stale(result.Outputs)
	for _, path := range stale {
		logf("Removing stale manifest %s", path)
	}

	if err := incremental.Remove(flags.out, stale); err != nil {
		return fmt.Errorf("remove stale manifests: %w", err)
	}

	if err := incremental.Save(flags.out, incremental.New(fingerprint, digests, result.Outputs)); err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	written, unchanged := sink.Stats()
	logf("%d round(s), %d manifest(s) written, %d unchanged, %d candidate(s) dropped",
		result.Rounds, written, unchanged, len(result.Deferred))

	return nil
}
