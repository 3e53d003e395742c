package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"tt/internal/diag"
	"tt/internal/lexer"
	"tt/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("defs.tt", []byte("exp = A\n  | A\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.DefDuplicateCtor, source.Span{File: fileID, Start: 12, End: 13}, "A: constructor defined more than once").
		WithNote(source.Span{File: fileID, Start: 6, End: 7}, "previously defined here"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", output)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "DEF3001" {
		t.Errorf("severity/code: %s %s", d.Severity, d.Code)
	}
	if d.Location.File != "defs.tt" || d.Location.StartLine != 2 || d.Location.StartCol != 5 {
		t.Errorf("location: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartLine != 1 {
		t.Errorf("notes: %+v", d.Notes)
	}
}

func TestJSONMaxCountsTruncated(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("x.tt", []byte("abc\n"))
	bag := diag.NewBag(0)
	for i := range uint32(3) {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: i, End: i + 1}, "unexpected"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || out.Dropped != 1 {
		t.Fatalf("count=%d dropped=%d", out.Count, out.Dropped)
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Fatalf("positions must be omitted unless requested")
	}
}

func TestShortFormat(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("x.tt", []byte("abc\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.DefUnknownIdentifier, source.Span{File: fileID, Start: 1, End: 2}, "b: identifier unknown"))

	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, false); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "error DEF3004 x.tt:1:2 b: identifier unknown" {
		t.Fatalf("got %q", got)
	}
}

func TestTokensOutput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.tt", []byte("exp = A\n"))
	toks := lexer.New(fs.Get(id), lexer.Options{KeepTrivia: true}).All()

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(pretty.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 token lines, got:\n%s", pretty.String())
	}
	if !strings.Contains(lines[1], `Assign`) || !strings.Contains(lines[1], "(leading: Space)") {
		t.Errorf("second line %q", lines[1])
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks, fs); err != nil {
		t.Fatal(err)
	}
	var decoded []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 4 || decoded[2].Text != "A" || decoded[2].Col != 7 {
		t.Fatalf("decoded %+v", decoded)
	}
}
