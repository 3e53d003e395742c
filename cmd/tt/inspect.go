package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tt/internal/driver"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [flags] <file>",
		Short: "Show the datatypes and match sites tt registered for a file",
		Long: `inspect parses a file without generating code and prints what it
registered: datatypes with their constructors, tags and resolved Go field types,
and match sites with their clauses.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
	addGenFlags(cmd)
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts, err := driverOptions(cmd, args[0])
	if err != nil {
		return err
	}
	res, err := driver.Inspect(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	if derr := printDiagnostics(cmd, res.Bag, res.FileSet); derr != nil {
		return derr
	}

	out := cmd.OutOrStdout()
	if strings.EqualFold(format, "pretty") {
		colored, err := useColor(cmd, out)
		if err != nil {
			return err
		}
		renderInspectPretty(out, &res.Export, newInspectStyles(colored))
		return nil
	}
	ef, err := driver.ParseExportFormat(format)
	if err != nil {
		return err
	}
	return res.Export.Encode(out, ef)
}

type inspectStyles struct {
	heading, ctor, goType, dim lipgloss.Style
}

func newInspectStyles(colored bool) inspectStyles {
	if !colored {
		plain := lipgloss.NewStyle()
		return inspectStyles{heading: plain, ctor: plain, goType: plain, dim: plain}
	}
	return inspectStyles{
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		ctor:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		goType:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		dim:     lipgloss.NewStyle().Faint(true),
	}
}

// renderInspectPretty prints one block per datatype and per match site:
//
//	calc.exp -> CalcExp
//	  0 A      ident          M0 ttrt.Symbol
func renderInspectPretty(w io.Writer, exp *driver.RegistryExport, st inspectStyles) {
	fmt.Fprintf(w, "%s %s\n", st.dim.Render("source:"), exp.Source)
	for _, d := range exp.Datatypes {
		head := st.heading.Render(d.Ident) + " " + st.dim.Render("->") + " " + st.goType.Render(d.GoName)
		if d.JSON != nil {
			head += " " + st.dim.Render(fmt.Sprintf("@json(%q)", *d.JSON))
		}
		fmt.Fprintf(w, "\n%s\n", head)

		width := 0
		for _, c := range d.Ctors {
			width = max(width, lipgloss.Width(c.Ident))
		}
		for _, c := range d.Ctors {
			name := st.ctor.Render(c.Ident + strings.Repeat(" ", width-lipgloss.Width(c.Ident)))
			fmt.Fprintf(w, "  %2d %s  %s\n", c.Tag, name, c.Payload)
			for i, f := range c.Fields {
				label := ""
				if f.Label != "" {
					label = " " + st.dim.Render("// "+f.Label)
				}
				fmt.Fprintf(w, "       M%d %s%s\n", i, st.goType.Render(f.GoType), label)
			}
		}
	}
	for _, m := range exp.Matches {
		fmt.Fprintf(w, "\n%s\n", st.heading.Render(fmt.Sprintf("match at line %d", m.Line)))
		for i, c := range m.Clauses {
			fmt.Fprintf(w, "  %s | %s\n", st.dim.Render(fmt.Sprintf("case%d", i)), c)
		}
	}
}
