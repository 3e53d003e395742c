package parser

import (
	"testing"

	"tt/internal/ast"
	"tt/internal/clean"
	"tt/internal/diag"
	"tt/internal/lexer"
	"tt/internal/source"
)

func parse(t *testing.T, mode Mode, src string) (*ast.Registry, *diag.Bag, *ast.Builder, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("input", []byte(src))
	if mode == ModeMatchers {
		id = clean.CleanFile(fs, id)
	}
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(rep, ast.Hints{})
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	ParseFile(lx, b, Options{Mode: mode, Reporter: rep})
	return b.Finish(), bag, b, fs
}

func TestParseDefinitions(t *testing.T) {
	src := `
// expressions
@json("exp-ctx")
core.exp = Id: ident
  | App: l: core.exp * r: core.exp
  | Call: core.exp * core.exp[] * range;
core.stmt = Nop | Ret: core.exp? | Tag: ident#
`
	reg, bag, _, _ := parse(t, ModeDefinitions, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 datatypes, got %d", reg.Len())
	}

	exp, ok := reg.Datatype("core.exp")
	if !ok || exp.Name != "exp" || !exp.DeriveJSON || exp.JSONArg != "exp-ctx" {
		t.Fatalf("unexpected core.exp %+v", exp)
	}
	if len(exp.Ctors) != 3 {
		t.Fatalf("expected 3 ctors, got %d", len(exp.Ctors))
	}

	app := reg.Types.Get(exp.Ctors[1].Payload)
	if app.Kind != ast.TypeTuple || len(app.Elems) != 2 {
		t.Fatalf("App payload %+v", app)
	}
	l := reg.Types.Get(app.Elems[0])
	if l.Label != "l" || l.Ident != "core.exp" {
		t.Fatalf("labelled atom parsed as %+v", l)
	}

	call := reg.Types.Get(exp.Ctors[2].Payload)
	if len(call.Elems) != 3 || !reg.Types.Get(call.Elems[1]).IsArray || reg.Types.Get(call.Elems[2]).Ident != "range" {
		t.Fatalf("Call payload %+v", call)
	}

	stmt, _ := reg.Datatype("core.stmt")
	if stmt.DeriveJSON {
		t.Fatalf("json option leaked into the next declaration")
	}
	if stmt.Ctors[0].Payload.IsValid() {
		t.Fatalf("Nop must carry no payload")
	}
	if !reg.Types.Get(stmt.Ctors[1].Payload).IsOption || !reg.Types.Get(stmt.Ctors[2].Payload).IsHash {
		t.Fatalf("suffix flags lost")
	}
}

func TestParseDefinitionErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"missing equals", "t A", diag.SynExpectEquals},
		{"missing ctor", "t = ;", diag.SynExpectIdentifier},
		{"missing type", "t = A: ;", diag.SynExpectType},
		{"unclosed array", "t = A: x[ ;", diag.SynUnclosedBracket},
		{"unknown option", `@yaml("x") t = A`, diag.SynUnknownDeclOption},
		{"empty final segment", "a. = A", diag.DefEmptyUnqualified},
		{"duplicate ctor", "a = X; b = X", diag.DefDuplicateCtor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, bag, _, _ := parse(t, ModeDefinitions, tc.src)
			if bag.Len() == 0 {
				t.Fatalf("expected %s", tc.code.ID())
			}
			if got := bag.Items()[0].Code; got != tc.code {
				t.Fatalf("got %s (%s), want %s", got.ID(), bag.Items()[0].Message, tc.code.ID())
			}
		})
	}
}

func TestParseRecoversAfterBrokenDecl(t *testing.T) {
	reg, bag, b, _ := parse(t, ModeDefinitions, "t = A: ; u = B; v = C")
	if !bag.HasErrors() {
		t.Fatalf("expected a syntax error")
	}
	if _, ok := reg.Datatype("u"); !ok {
		t.Fatalf("parser did not recover to the next declaration")
	}
	if _, ok := reg.Datatype("v"); !ok {
		t.Fatalf("declaration after recovery missing")
	}
	if b.HadErrors() {
		t.Fatalf("syntax errors must not set the builder flag")
	}
}

func TestParseMatchers(t *testing.T) {
	src := `package demo

func f(e *Exp) int {
	return __match[int](e,
		/*| App(Lam(x, _), [a, b]) */ func(x Symbol, a, b *Exp) int { return 0 },
		/*| Opt(Some(y)) */ func(y *Exp) int { return 1 },
		/*| Opt(None) */ func() int { return 2 },
		/*| _ */ func() int { return __match[int](e, /*| Unit() */ func() int { return 3 }) })
}
`
	reg, bag, _, fs := parse(t, ModeMatchers, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(reg.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(reg.Matches))
	}
	inner, outer := reg.Matches[0], reg.Matches[1]
	if len(inner.Clauses) != 1 || len(outer.Clauses) != 4 {
		t.Fatalf("unexpected clause counts %d/%d", len(inner.Clauses), len(outer.Clauses))
	}
	start, _ := fs.Resolve(outer.Span)
	if start.Line != 4 {
		t.Fatalf("outer match reported on line %d", start.Line)
	}
	innerStart, _ := fs.Resolve(inner.Span)
	if innerStart.Line != 8 {
		t.Fatalf("inner match reported on line %d", innerStart.Line)
	}

	app := reg.Patterns.Get(outer.Clauses[0])
	if app.Kind != ast.PatCtor || app.Ident != "App" || len(app.Children) != 2 {
		t.Fatalf("clause 0 = %+v", app)
	}
	lam := reg.Patterns.Get(app.Children[0])
	if lam.Ident != "Lam" || reg.Patterns.Get(lam.Children[1]).Binds() {
		t.Fatalf("Lam(x, _) parsed as %+v", lam)
	}
	if list := reg.Patterns.Get(app.Children[1]); list.Kind != ast.PatList || len(list.Children) != 2 {
		t.Fatalf("list pattern %+v", list)
	}
	some := reg.Patterns.Get(reg.Patterns.Get(outer.Clauses[1]).Children[0])
	if some.Kind != ast.PatSome {
		t.Fatalf("expected Some, got %v", some.Kind)
	}
	none := reg.Patterns.Get(reg.Patterns.Get(outer.Clauses[2]).Children[0])
	if none.Kind != ast.PatNone {
		t.Fatalf("expected None, got %v", none.Kind)
	}
	if w := reg.Patterns.Get(outer.Clauses[3]); w.Kind != ast.PatVariable || w.Binds() {
		t.Fatalf("expected wildcard, got %+v", w)
	}
	if u := reg.Patterns.Get(inner.Clauses[0]); u.Kind != ast.PatCtor || len(u.Children) != 0 {
		t.Fatalf("nullary ctor parsed as %+v", u)
	}
}

func TestParseMatcherErrorsKeepStackBalanced(t *testing.T) {
	src := "x := __match(e, /*| App(, ) */ 1, /*| [a b] */ 2)\n/*| Stray */\n"
	reg, bag, _, _ := parse(t, ModeMatchers, src)
	if !bag.HasErrors() {
		t.Fatalf("expected syntax errors")
	}
	if len(reg.Matches) != 1 || len(reg.Matches[0].Clauses) != 2 {
		t.Fatalf("match structure not preserved: %+v", reg.Matches)
	}
	last := bag.Items()[bag.Len()-1]
	if last.Code != diag.SynExpectMatch {
		t.Fatalf("stray pattern should be SYN2008, got %s", last.Code.ID())
	}
}

func TestMaxErrorsStopsParsing(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.tt", []byte("; ; ; ; ;"))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(rep, ast.Hints{})
	res := ParseFile(lexer.New(fs.Get(id), lexer.Options{}), b, Options{Reporter: rep, MaxErrors: 2})
	if bag.Len() != 2 || res.Errors != 2 {
		t.Fatalf("expected exactly 2 errors, got bag=%d res=%d", bag.Len(), res.Errors)
	}
}
