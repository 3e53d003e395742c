package diag

import (
	"testing"

	"tt/internal/source"
)

func TestFormatShortDiagnosticsSortsByPosition(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/nonexistent")
	id := fs.AddVirtual("defs.tt", []byte("A = X\nB = X\n"))

	diags := []Diagnostic{
		NewError(DefDuplicateCtor, source.Span{File: id, Start: 10, End: 11}, "constructor X already defined").
			WithNote(source.Span{File: id, Start: 4, End: 5}, "first defined here"),
		NewError(SynExpectIdentifier, source.Span{File: id, Start: 0, End: 1}, "expected identifier\nfound '='"),
	}

	got := FormatShortDiagnostics(diags, fs, true)
	want := "error SYN2002 defs.tt:1:1 expected identifier found '='\n" +
		"note DEF3001 defs.tt:1:5 first defined here\n" +
		"error DEF3001 defs.tt:2:5 constructor X already defined"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatShortDiagnosticsSkipsBadSpans(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.go", []byte("x"))
	diags := []Diagnostic{NewError(PatUnknownCtor, source.Span{File: id + 3}, "lost")}
	if got := FormatShortDiagnostics(diags, fs, false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:         "LEX1001",
		SynUnexpectedToken:     "SYN2001",
		DefArrayOptionConflict: "DEF3005",
		PatDuplicateLine:       "PAT4006",
		IOError:                "IO5001",
		UnknownCode:            "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if DefUnknownIdentifier.Title() != "Identifier unknown" {
		t.Errorf("unexpected title %q", DefUnknownIdentifier.Title())
	}
}
