package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tt/internal/diag"
	"tt/internal/observ"
	"tt/internal/parser"
	"tt/internal/project"
	"tt/internal/token"
	"tt/internal/trace"
)

const exampleDir = "../../examples/calc"

func sameTokens(a, b []byte) bool {
	return strings.Join(strings.Fields(string(a)), " ") == strings.Join(strings.Fields(string(b)), " ")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func calcOptions() Options {
	opts := OptionsFromConfig(project.Default())
	opts.Package = "calc"
	return opts
}

func TestGenerateDefinitionsMatchesExample(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "calc")
	timer := observ.NewTimer()
	opts := calcOptions()
	opts.Timer = timer

	res, err := Generate(context.Background(), prefix, filepath.Join(exampleDir, "calc.tt"), opts)
	if err != nil {
		t.Fatalf("Generate: %v\n%s", err, diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, true))
	}
	if res.Output != prefix+".go" {
		t.Errorf("output path = %q", res.Output)
	}
	got, err := os.ReadFile(res.Output)
	if err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile(filepath.Join(exampleDir, "calc.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !sameTokens(got, want) {
		t.Errorf("generated definitions differ from examples/calc/calc.go:\n%s", got)
	}

	r := timer.Report()
	var names []string
	for _, s := range r.Stages {
		names = append(names, s.Name)
	}
	if strings.Join(names, ",") != "load,parse,generate,write" {
		t.Errorf("stages = %v", names)
	}
	if r.Counters["datatypes"] != 2 {
		t.Errorf("counters = %v", r.Counters)
	}
}

func TestGenerateMatchersMatchesExample(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "eval")
	opts := calcOptions()
	opts.Package = "ignored" // берётся из package-клаузы хоста
	opts.Defs = []string{filepath.Join(exampleDir, "calc.tt")}

	res, err := Generate(context.Background(), prefix, filepath.Join(exampleDir, "eval.go"), opts)
	if err != nil {
		t.Fatalf("Generate: %v\n%s", err, diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, true))
	}
	if res.Mode != parser.ModeMatchers || res.Output != prefix+".matchers.go" {
		t.Fatalf("mode %v, output %q", res.Mode, res.Output)
	}
	want, err := os.ReadFile(filepath.Join(exampleDir, "eval.matchers.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !sameTokens(res.Code, want) {
		t.Errorf("generated matchers differ from examples/calc/eval.matchers.go:\n%s", res.Code)
	}
}

func TestGenerateFailureRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "bad.tt", "core.exp = A: nosuch\n")
	prefix := filepath.Join(dir, "bad")
	stale := writeFile(t, dir, "bad.go", "package stale\n")

	res, err := Generate(context.Background(), prefix, input, calcOptions())
	if !errors.Is(err, ErrDiagnostics) {
		t.Fatalf("err = %v, want ErrDiagnostics", err)
	}
	if _, statErr := os.Stat(stale); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("stale output survived a failed run: %v", statErr)
	}
	got := diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, false)
	if !strings.Contains(got, "DEF3004") || !strings.Contains(got, "nosuch: identifier unknown") {
		t.Errorf("diagnostics:\n%s", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("leftover files in %s: %v", dir, entries)
	}
}

func TestGenerateLoadFailureRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	host := writeFile(t, dir, "eval.go", "package calc\n")
	stale := writeFile(t, dir, "eval.matchers.go", "package stale\n")

	opts := calcOptions()
	opts.Defs = []string{filepath.Join(dir, "missing.tt")}
	res, err := Generate(context.Background(), filepath.Join(dir, "eval"), host, opts)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want missing defs error", err)
	}
	if res != nil {
		t.Errorf("result = %+v, want nil on load failure", res)
	}
	if _, statErr := os.Stat(stale); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("stale output survived a failed load: %v", statErr)
	}
}

func TestGenerateSyntaxErrorSkipsGeneration(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "broken.tt", "core.exp = | A\n")
	tracer := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), tracer)

	res, err := Generate(ctx, filepath.Join(dir, "broken"), input, calcOptions())
	if !errors.Is(err, ErrDiagnostics) || !res.Bag.HasErrors() {
		t.Fatalf("err = %v, errors = %v", err, res.Bag.HasErrors())
	}
	for _, ev := range tracer.Snapshot() {
		if ev.Name == "generate" {
			t.Errorf("generate ran despite syntax errors")
		}
	}
}

func TestGenerateMissingInput(t *testing.T) {
	_, err := Generate(context.Background(), filepath.Join(t.TempDir(), "x"), "does/not/exist.tt", calcOptions())
	if err == nil || errors.Is(err, ErrDiagnostics) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}

func TestWriteOutputReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.go")
	for _, body := range []string{"package a\n", "package b\n"} {
		if err := writeOutput(path, []byte(body)); err != nil {
			t.Fatal(err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != body {
			t.Errorf("content = %q, want %q", got, body)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp files left: %v", entries)
	}
	if err := writeOutput(filepath.Join(dir, "missing", "out.go"), nil); err == nil {
		t.Errorf("expected error for missing directory")
	}
}

func TestTokenizeCleansHostFiles(t *testing.T) {
	res, err := Tokenize(filepath.Join(exampleDir, "eval.go"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Mode != parser.ModeMatchers || res.Bag.Len() != 0 {
		t.Fatalf("mode %v, %d diagnostics", res.Mode, res.Bag.Len())
	}
	matches := 0
	for _, tok := range res.Tokens {
		if tok.Kind == token.KwMatch {
			matches++
		}
	}
	if matches != 3 {
		t.Errorf("got %d match keywords, want 3", matches)
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != token.EOF {
		t.Errorf("last token %v", last.Kind)
	}
}

func TestCleanSourceKeepsLayout(t *testing.T) {
	path := filepath.Join(exampleDir, "eval.go")
	orig, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cleaned, err := CleanSource(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cleaned) != len(orig) || bytes.Count(cleaned, []byte("\n")) != bytes.Count(orig, []byte("\n")) {
		t.Errorf("cleaning changed the layout")
	}
	if !bytes.Contains(cleaned, []byte("Ret(Some(e))")) || bytes.Contains(cleaned, []byte("func Returns")) {
		t.Errorf("unexpected cleaned text:\n%s", cleaned)
	}
}

func TestInspectAndExport(t *testing.T) {
	res, err := Inspect(context.Background(), filepath.Join(exampleDir, "calc.tt"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	exp := res.Export
	if exp.Mode != "definitions" || len(exp.Datatypes) != 2 {
		t.Fatalf("export = %+v", exp)
	}
	b := exp.Datatypes[0].Ctors[1]
	if b.Ident != "B" || b.Tag != 1 || b.Payload != "l: ident * r: ident" || len(b.Fields) != 2 || b.Fields[1].Label != "r" {
		t.Errorf("ctor B = %+v", b)
	}
	ret := exp.Datatypes[1].Ctors[2]
	if ret.Fields[0].Shape != "option" || ret.Fields[0].Kind != "datatype" {
		t.Errorf("ctor Ret = %+v", ret)
	}

	for _, f := range []ExportFormat{ExportJSON, ExportYAML, ExportMsgpack} {
		var buf bytes.Buffer
		if err := exp.Encode(&buf, f); err != nil {
			t.Fatalf("encode %d: %v", f, err)
		}
		back, err := DecodeRegistryExport(&buf, f)
		if err != nil {
			t.Fatalf("decode %d: %v", f, err)
		}
		if back.Datatypes[1].Ctors[2].Fields[0].GoType != ret.Fields[0].GoType {
			t.Errorf("format %d lost field types: %+v", f, back.Datatypes[1])
		}
	}
}

func TestInspectMatchers(t *testing.T) {
	opts := Options{Defs: []string{filepath.Join(exampleDir, "calc.tt")}}
	res, err := Inspect(context.Background(), filepath.Join(exampleDir, "eval.go"), opts)
	if err != nil {
		t.Fatal(err)
	}
	m := res.Export.Matches
	if len(m) != 3 {
		t.Fatalf("matches = %+v", m)
	}
	if m[2].Line != 21 || strings.Join(m[2].Clauses, " | ") != "Ret(None) | Ret(Some(e)) | Block([inner]) | Eval(_)" {
		t.Errorf("site = %+v", m[2])
	}
}

func TestModeAndOutputPath(t *testing.T) {
	if ModeAuto.Resolve("x/defs.TT") != parser.ModeDefinitions || ModeAuto.Resolve("x/eval.go") != parser.ModeMatchers {
		t.Errorf("auto mode resolution")
	}
	if ModeMatchers.Resolve("defs.tt") != parser.ModeMatchers {
		t.Errorf("explicit mode ignored")
	}
	o := Options{MatcherSuffix: "_match.go"}
	if got := o.OutputPath("out/eval", parser.ModeMatchers); got != "out/eval_match.go" {
		t.Errorf("OutputPath = %q", got)
	}
	if got := o.OutputPath("out/ast", parser.ModeDefinitions); got != "out/ast.go" {
		t.Errorf("OutputPath = %q", got)
	}
}
