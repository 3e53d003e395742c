package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tt/internal/diag"
	"tt/internal/diagfmt"
	"tt/internal/driver"
	"tt/internal/observ"
	"tt/internal/project"
	"tt/internal/source"
	"tt/internal/trace"
)

// isTerminal проверяет, является ли w терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto":
		return isTerminal(w) && os.Getenv("NO_COLOR") == "", nil
	}
	return false, fmt.Errorf("invalid --color %q (expected: auto|on|off)", mode)
}

// loadConfig reads --config or the tt.toml nearest to input.
func loadConfig(cmd *cobra.Command, input string) (project.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return project.Load(path)
	}
	return project.Discover(filepath.Dir(input))
}

// driverOptions merges tt.toml with global and gen flags; flags win when set.
func driverOptions(cmd *cobra.Command, input string) (driver.Options, error) {
	cfg, err := loadConfig(cmd, input)
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.OptionsFromConfig(cfg)

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics >= 0 {
		opts.MaxDiagnostics = maxDiagnostics
	}
	if err := applyGenFlags(cmd, &opts); err != nil {
		return opts, err
	}

	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		opts.Timer = observ.NewTimer()
	}
	return opts, nil
}

func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if timer == nil {
		return
	}
	if err := timer.WriteSummary(cmd.ErrOrStderr()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "tt: failed to print timings: %v\n", err)
	}
}

// printDiagnostics renders bag to stderr in the --diag-format format.
// It returns errReported when the bag holds errors.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	format, err := cmd.Root().PersistentFlags().GetString("diag-format")
	if err != nil {
		return fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	bag.Dedup()
	bag.Sort()

	w := cmd.ErrOrStderr()
	switch strings.ToLower(format) {
	case "pretty":
		colored, err := useColor(cmd, w)
		if err != nil {
			return err
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{Color: colored, Context: 1, ShowNotes: true})
	case "json":
		if err := diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
			return err
		}
	case "short":
		if err := diagfmt.Short(w, bag, fs, true); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown diag-format: %s", format)
	}
	if bag.HasErrors() {
		return errReported
	}
	return nil
}

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context. The returned cleanup flushes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	pf := cmd.Root().PersistentFlags()
	output, err := pf.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := pf.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase // --trace без уровня
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	modeStr, err := pf.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	formatStr, err := pf.GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}
	ringSize, err := pf.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	cfg := trace.Config{Level: level, Mode: mode, Format: format, OutputPath: output, RingSize: ringSize}
	if output == "-" || output == "" {
		// прячем Close: трейсер не должен закрывать stderr
		cfg.Output = struct{ io.Writer }{cmd.ErrOrStderr()}
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	return func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}

// dumpTraceOnPanic prints the ring buffer before a panic escapes, so the last
// phases before the crash are visible. Must be deferred after setupTracing.
func dumpTraceOnPanic(cmd *cobra.Command) {
	r := recover()
	if r == nil {
		return
	}
	if ring, ok := trace.Ring(trace.FromContext(cmd.Context())); ok {
		w := cmd.ErrOrStderr()
		fmt.Fprintln(w, color.New(color.FgRed, color.Bold).Sprint("tt: panic, last trace events:"))
		_ = ring.Dump(w, trace.FormatText)
	}
	panic(r)
}
