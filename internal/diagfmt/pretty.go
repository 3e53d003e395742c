package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tt/internal/diag"
	"tt/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	path, code, gutter    *color.Color
	caret                 *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		path:   color.New(color.Bold),
		code:   color.New(color.FgMagenta),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "\n%s: %d more diagnostics not shown\n", p.note.Sprint("note"), n)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sev := p.severity(d.Severity)
	if !validSpan(fs, d.Primary) {
		fmt.Fprintf(w, "%s %s: %s\n", sev.Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col),
		sev.Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)
	printSnippet(w, fs, d.Primary, opts, p)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if !validSpan(fs, n.Span) {
			fmt.Fprintf(w, "  %s: %s\n", p.note.Sprint("note"), n.Msg)
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s: %s: %s\n", p.note.Sprint("note"),
			p.path.Sprintf("%s:%d:%d", formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col), n.Msg)
	}
}

func printSnippet(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, p palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	ctx := uint32(max(opts.Context, 0))

	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx
	if lc := uint32(f.LineCount()); last > lc { // #nosec G115 -- число строк ограничено размером файла
		last = max(lc, start.Line)
	}
	gw := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := clip(f.GetLine(ln), opts.Width)
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gw, ln), text)
		if ln != start.Line {
			continue
		}
		// подчёркиваем только первую строку многострочного span
		endCol := end.Col
		if end.Line != start.Line {
			endCol = uint32(len(f.GetLine(ln))) + 1 // #nosec G115
		}
		pad, width := underline(f.GetLine(ln), start.Col, endCol)
		fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprintf("%*s |", gw, ""), pad, p.caret.Sprint(carets(width)))
	}
}

// underline returns the padding before the caret run and its display width.
// Tabs are kept in the padding so the caret lines up in any tab setting.
func underline(line string, startCol, endCol uint32) (string, int) {
	s := int(startCol) - 1
	e := int(endCol) - 1
	s = min(max(s, 0), len(line))
	e = min(max(e, s), len(line))

	var pad strings.Builder
	for _, r := range line[:s] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return pad.String(), max(runewidth.StringWidth(line[s:e]), 1)
}

func carets(width int) string {
	return "^" + strings.Repeat("~", width-1)
}

func clip(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}
