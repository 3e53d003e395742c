package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tt/internal/driver"
)

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [flags] <dest-prefix> <file>",
		Short: "Generate Go code from a .tt file or from __match sites",
		Long: `gen writes <dest-prefix>.go for a definition file (*.tt) and
<dest-prefix>.matchers.go for Go source with __match sites. Nothing is left at
the destination when generation fails.`,
		Args: cobra.ExactArgs(2),
		RunE: runGen,
	}
	addGenFlags(cmd)
	return cmd
}

// addGenFlags registers flags that shape how input is read and code is
// generated. They override tt.toml.
func addGenFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("mode", "auto", "input kind (auto|definitions|matchers)")
	f.String("package", "", "package clause of generated definitions")
	f.String("runtime", "", "import path of the tt runtime package")
	f.StringSlice("defs", nil, "definition files the matchers dispatch over")
	f.String("defs-import", "", "import path of the generated definitions, when matchers live elsewhere")
}

func applyGenFlags(cmd *cobra.Command, opts *driver.Options) error {
	f := cmd.Flags()
	if f.Lookup("mode") == nil {
		return nil
	}
	modeStr, err := f.GetString("mode")
	if err != nil {
		return fmt.Errorf("failed to get mode flag: %w", err)
	}
	switch strings.ToLower(modeStr) {
	case "auto":
		opts.Mode = driver.ModeAuto
	case "definitions", "defs":
		opts.Mode = driver.ModeDefinitions
	case "matchers":
		opts.Mode = driver.ModeMatchers
	default:
		return fmt.Errorf("invalid --mode %q (expected: auto|definitions|matchers)", modeStr)
	}

	for name, dst := range map[string]*string{
		"package":     &opts.Package,
		"runtime":     &opts.RuntimeImport,
		"defs-import": &opts.DefsImport,
	} {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetString(name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v
	}
	if f.Changed("defs") {
		defs, err := f.GetStringSlice("defs")
		if err != nil {
			return fmt.Errorf("failed to get defs flag: %w", err)
		}
		opts.Defs = defs
	}
	return nil
}

func runGen(cmd *cobra.Command, args []string) error {
	prefix, input := args[0], args[1]

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	defer dumpTraceOnPanic(cmd)

	opts, err := driverOptions(cmd, input)
	if err != nil {
		return err
	}
	res, err := driver.Generate(cmd.Context(), prefix, input, opts)
	if res != nil {
		// напечатанные ошибки не печатаем второй раз в main
		if perr := printDiagnostics(cmd, res.Bag, res.FileSet); perr != nil && (err == nil || errors.Is(err, driver.ErrDiagnostics)) {
			err = perr
		}
	}
	printTimings(cmd, opts.Timer)
	return err
}
