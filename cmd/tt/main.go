package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tt/internal/driver"
	"tt/internal/version"
)

// errReported означает, что диагностика уже напечатана и добавить нечего.
var errReported = errors.New("errors reported")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tt [flags] <dest-prefix> <file>",
		Short: "Generate Go tagged unions and pattern matchers",
		Long: `tt compiles datatype definitions (*.tt) into arena-allocated Go tagged unions,
and compiles the /*| pattern */ annotations of __match calls in Go source into
dispatch functions.

  tt gen out/ast defs.tt        writes out/ast.go
  tt gen out/eval eval.go       writes out/eval.matchers.go

The gen subcommand may be omitted.`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if len(args) != 2 {
				return fmt.Errorf("expected <dest-prefix> <file>, got %d arguments", len(args))
			}
			return runGen(cmd, args)
		},
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Int("max-diagnostics", -1, "maximum number of diagnostics to collect (-1: from tt.toml)")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|json|short)")
	pf.Bool("timings", false, "print stage timings to stderr")
	pf.String("config", "", "path to tt.toml (default: search upward from the input)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 1024, "events kept by the ring tracer")
	pf.String("cpuprofile", "", "write a CPU profile to this file")
	pf.String("memprofile", "", "write a heap profile to this file on exit")
	pf.String("exectrace", "", "write a Go execution trace to this file")
	root.PersistentPreRunE = startProfiling

	addGenFlags(root)
	root.AddCommand(newGenCmd(), newCleanCmd(), newTokensCmd(), newInspectCmd(), newVersionCmd())
	return root
}

func main() {
	root := newRootCmd()
	err := root.Execute()
	if perr := stopProfiling(); perr != nil {
		fmt.Fprintf(os.Stderr, "tt: %v\n", perr)
	}
	if err != nil {
		if !errors.Is(err, errReported) && !errors.Is(err, driver.ErrDiagnostics) {
			fmt.Fprintf(os.Stderr, "tt: %v\n", err)
		}
		os.Exit(1)
	}
}
