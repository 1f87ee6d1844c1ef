package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hlsltools/internal/diagfmt"
	"hlsltools/internal/driver"
	"hlsltools/internal/observ"
	"hlsltools/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>...",
	Short: "Check HLSL files for syntax and semantic errors",
	Long: `Check parses and binds each file independently and reports diagnostics.
Directories are searched recursively for .hlsl, .hlsli, .fx and .fxh files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.String("format", "pretty", "output format (pretty|short|json|msgpack)")
	f.Int("jobs", 0, "max parallel workers (0=auto)")
	f.Bool("no-warnings", false, "drop warnings and infos")
	f.Bool("warnings-as-errors", false, "treat warnings as errors")
	f.Bool("syntax-only", false, "stop after parsing")
	f.Bool("with-notes", false, "include diagnostic notes")
	f.String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	f.Int8("context", 0, "source lines shown above each diagnostic")
	f.String("ui", "auto", "progress view (auto|on|off)")
}

// checkSettings is the merged view of hlsl.toml and the command line.
type checkSettings struct {
	format    string
	opts      driver.Options
	withNotes bool
	pathMode  diagfmt.PathMode
	context   int8
	ui        uiMode
	quiet     bool
	timings   bool
}

func readCheckSettings(cmd *cobra.Command, cfg *project.Config) (checkSettings, error) {
	var s checkSettings
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	pick := func(name string, fromConfig bool) bool {
		return flags.Changed(name) || !fromConfig
	}

	var err error
	if s.format, err = flags.GetString("format"); err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	if !pick("format", cfg.IsSet("check", "format")) {
		s.format = cfg.Check.Format
	}
	switch s.format {
	case "pretty", "short", "json", "msgpack":
	default:
		return s, fmt.Errorf("unknown format %q (expected pretty|short|json|msgpack)", s.format)
	}

	if s.opts.Jobs, err = flags.GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !pick("jobs", cfg.IsSet("check", "jobs")) {
		s.opts.Jobs = cfg.Check.Jobs
	}
	if s.opts.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !root.Changed("max-diagnostics") && cfg.IsSet("check", "max_diagnostics") {
		s.opts.MaxDiagnostics = cfg.Check.MaxDiagnostics
	}
	if s.opts.IgnoreWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return s, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if !pick("no-warnings", cfg.IsSet("check", "no_warnings")) {
		s.opts.IgnoreWarnings = cfg.Check.NoWarnings
	}
	if s.opts.WarningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return s, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if !pick("warnings-as-errors", cfg.IsSet("check", "warnings_as_errors")) {
		s.opts.WarningsAsErrors = cfg.Check.WarningsAsErrors
	}
	if s.opts.IgnoreWarnings && s.opts.WarningsAsErrors {
		return s, errors.New("no-warnings and warnings-as-errors cannot be used together")
	}
	if s.opts.SyntaxOnly, err = flags.GetBool("syntax-only"); err != nil {
		return s, fmt.Errorf("failed to get syntax-only flag: %w", err)
	}

	if s.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return s, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return s, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if s.pathMode, err = diagfmt.ParsePathMode(pathMode); err != nil {
		return s, err
	}
	if s.context, err = flags.GetInt8("context"); err != nil {
		return s, fmt.Errorf("failed to get context flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiValue); err != nil {
		return s, err
	}
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return s, nil
}

func runCheck(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	settings, err := readCheckSettings(cmd, cfg)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	finishTrace, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { finishTrace(err != nil) }()

	files, err := driver.ExpandPaths(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no shader files found in %v", args)
	}

	opts := settings.opts
	opts.BaseDir = cfg.Root
	if settings.timings {
		opts.Timer = observ.NewTimer()
	}

	ctx := cmd.Context()
	var result *driver.Result
	machine := settings.format == "json" || settings.format == "msgpack"
	if !machine && shouldUseTUI(settings.ui, len(files)) {
		result, err = runCheckWithUI(ctx, files, opts)
	} else {
		result, err = driver.CheckFiles(ctx, files, opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := writeDiagnostics(out, result, settings, opts.Timer); err != nil {
		return err
	}

	if !machine {
		errOut := cmd.ErrOrStderr()
		if settings.timings {
			fmt.Fprint(errOut, opts.Timer.Summary())
		}
		if !settings.quiet {
			fmt.Fprintf(errOut, "checked %d file(s): %s\n", len(result.Files), diagfmt.Summary(result.Diagnostics()))
		}
	}
	if result.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

func writeDiagnostics(w io.Writer, result *driver.Result, s checkSettings, timer *observ.Timer) error {
	switch s.format {
	case "json", "msgpack":
		doc := diagfmt.BuildDiagnosticsOutput(result.Diagnostics(), result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode,
			IncludeNotes:     s.withNotes,
		})
		if timer != nil {
			report := timer.Report()
			doc.Timings = &report
		}
		if s.format == "json" {
			return diagfmt.EncodeJSON(w, doc)
		}
		return diagfmt.EncodeMsgPack(w, doc)
	case "short":
		for _, f := range result.Files {
			if err := diagfmt.Short(w, f.Bag, result.FileSet, s.withNotes); err != nil {
				return err
			}
		}
		return nil
	}
	opts := diagfmt.PrettyOpts{
		Color:     !color.NoColor,
		Context:   s.context,
		PathMode:  s.pathMode,
		ShowNotes: s.withNotes,
	}
	for _, f := range result.Files {
		diagfmt.Pretty(w, f.Bag, result.FileSet, opts)
	}
	return nil
}
