package types

import (
	"errors"
	"testing"

	"tt/internal/ast"
	"tt/internal/diag"
	"tt/internal/lexer"
	"tt/internal/parser"
	"tt/internal/source"
)

func load(t *testing.T, src string) *ast.Registry {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("defs.tt", []byte(src))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(rep, ast.Hints{})
	parser.ParseFile(lexer.New(fs.Get(id), lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	reg := b.Finish()
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	return reg
}

func ctor(t *testing.T, reg *ast.Registry, name string) *ast.Constructor {
	t.Helper()
	_, c, ok := reg.Owner(name)
	if !ok {
		t.Fatalf("ctor %s not found", name)
	}
	return c
}

func TestDecomposeMapping(t *testing.T) {
	// exp is used before it is declared
	reg := load(t, `
core.stmt = Eval: core.exp | Block: core.stmt[] | Ret: core.exp?
core.exp = Var: ident | Names: ident[] | Maybe: ident? | Nil: unit | Loc: range[] | Lit
`)
	r := NewResolver(reg, Options{})
	cases := []struct {
		ctor   string
		kind   Kind
		shape  Shape
		goType string
	}{
		{"Eval", KindDatatype, ShapePlain, "*CoreExp"},
		{"Block", KindDatatype, ShapeArray, "[]*CoreStmt"},
		{"Ret", KindDatatype, ShapeOption, "ttrt.Ref[CoreExp]"},
		{"Var", KindSymbol, ShapePlain, "ttrt.Symbol"},
		{"Names", KindSymbol, ShapeArray, "[]ttrt.Symbol"},
		{"Maybe", KindSymbol, ShapeOption, "ttrt.Option[ttrt.Symbol]"},
		{"Nil", KindUnit, ShapePlain, "ttrt.Unit"},
		{"Loc", KindRange, ShapePlain, "ttrt.Range"},
	}
	for _, tc := range cases {
		fields, err := r.DecomposeCtor(ctor(t, reg, tc.ctor))
		if err != nil {
			t.Fatalf("%s: %v", tc.ctor, err)
		}
		if len(fields) != 1 {
			t.Fatalf("%s: expected one field, got %d", tc.ctor, len(fields))
		}
		f := fields[0]
		if f.Kind != tc.kind || f.Shape != tc.shape || f.GoType != tc.goType {
			t.Errorf("%s: got %s/%s %q, want %s/%s %q", tc.ctor, f.Kind, f.Shape, f.GoType, tc.kind, tc.shape, tc.goType)
		}
	}

	fields, err := r.DecomposeCtor(ctor(t, reg, "Lit"))
	if err != nil || len(fields) != 0 {
		t.Fatalf("Lit: fields=%v err=%v", fields, err)
	}
}

func TestDecomposeFlattensTuples(t *testing.T) {
	reg := load(t, `exp = Call: fn: exp * args: exp[] * ident * range | Nil`)
	r := NewResolver(reg, Options{Runtime: "rt", Defs: "ast"})

	fields, err := r.DecomposeCtor(ctor(t, reg, "Call"))
	if err != nil {
		t.Fatal(err)
	}
	want := []struct{ label, goType string }{
		{"fn", "*ast.Exp"},
		{"args", "[]*ast.Exp"},
		{"", "rt.Symbol"},
		{"", "rt.Range"},
	}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(fields))
	}
	for i, w := range want {
		if fields[i].Label != w.label || fields[i].GoType != w.goType {
			t.Errorf("field %d: got %q %q, want %q %q", i, fields[i].Label, fields[i].GoType, w.label, w.goType)
		}
	}
}

func TestDecomposeErrors(t *testing.T) {
	reg := load(t, `exp = Both: exp[]? | Lost: expr | Fine: ident`)
	r := NewResolver(reg, Options{})

	cases := []struct {
		ctor string
		code diag.Code
		msg  string
	}{
		{"Both", diag.DefArrayOptionConflict, "array and option are not miscible"},
		{"Lost", diag.DefUnknownIdentifier, "expr: identifier unknown"},
	}
	for _, tc := range cases {
		_, err := r.DecomposeCtor(ctor(t, reg, tc.ctor))
		var te *Error
		if !errors.As(err, &te) {
			t.Fatalf("%s: expected *Error, got %v", tc.ctor, err)
		}
		if te.Code != tc.code || te.Msg != tc.msg {
			t.Errorf("%s: got %s %q", tc.ctor, te.Code.ID(), te.Msg)
		}
		if te.Span.Empty() {
			t.Errorf("%s: error without span", tc.ctor)
		}
	}
}

func TestDatatypeShadowsBuiltin(t *testing.T) {
	reg := load(t, `range = R: ident
exp = At: range`)
	r := NewResolver(reg, Options{})
	fields, err := r.DecomposeCtor(ctor(t, reg, "At"))
	if err != nil {
		t.Fatal(err)
	}
	if fields[0].Kind != KindDatatype || fields[0].GoType != "*Range" {
		t.Fatalf("got %+v", fields[0])
	}
}

func TestWithShapeAndElem(t *testing.T) {
	reg := load(t, `exp = Nil`)
	r := NewResolver(reg, Options{})
	d, _ := reg.Datatype("exp")

	plain := r.DatatypeField(d)
	if plain.GoType != "*Exp" {
		t.Fatalf("plain: %q", plain.GoType)
	}
	if got := r.WithShape(plain, ShapeOption).GoType; got != "ttrt.Ref[Exp]" {
		t.Fatalf("option: %q", got)
	}
	if got := r.Elem(r.WithShape(plain, ShapeArray)); got.GoType != "*Exp" || got.Shape != ShapePlain {
		t.Fatalf("elem: %+v", got)
	}
	unit := r.WithShape(Field{Kind: KindUnit}, ShapeArray)
	if unit.Shape != ShapePlain || unit.GoType != "ttrt.Unit" {
		t.Fatalf("unit must stay plain: %+v", unit)
	}
}

func TestGoName(t *testing.T) {
	n := NewNamer()
	cases := map[string]string{
		"exp":         "Exp",
		"core.exp":    "CoreExp",
		"bin_op":      "BinOp",
		"a.b.c":       "ABC",
		"core.someOp": "CoreSomeOp",
	}
	for in, want := range cases {
		if got := n.GoName(in); got != want {
			t.Errorf("GoName(%q) = %q, want %q", in, got, want)
		}
	}
}
