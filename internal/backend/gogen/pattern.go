package gogen

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"tt/internal/ast"
	"tt/internal/diag"
	"tt/internal/source"
	"tt/internal/types"
)

type binding struct {
	name   string
	goType string
	path   string
	span   source.Span
}

// clause is one compiled pattern: a conjunction of checks and the
// bindings, both in depth-first left-to-right order.
type clause struct {
	conds    []string
	bindings []binding
}

func (c *clause) admissible() string {
	if len(c.conds) == 0 {
		return "true"
	}
	return strings.Join(c.conds, " && ")
}

type compiler struct {
	reg      *ast.Registry
	res      *types.Resolver
	reporter diag.Reporter
	defs     string // квалификатор пакета с datatype, может быть пустым
	failed   bool
	defsUsed bool
}

func (c *compiler) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	c.failed = true
	if c.reporter != nil {
		diag.ReportErrorf(c.reporter, code, sp, format, args...).Emit()
	}
}

// noteType records that a signature mentions a datatype of the defs package.
func (c *compiler) noteType(f types.Field) {
	if f.Kind == types.KindDatatype && c.defs != "" {
		c.defsUsed = true
	}
}

func (c *compiler) qualify(name string) string {
	if c.defs == "" {
		return name
	}
	c.defsUsed = true
	return c.defs + "." + name
}

// infer returns the type a pattern forces on the value it matches.
// Variables, None and lists of variables force nothing.
func (c *compiler) infer(id ast.PatternID) (types.Field, bool) {
	pat := c.reg.Patterns.Get(id)
	switch pat.Kind {
	case ast.PatCtor:
		d, _, ok := c.reg.Owner(pat.Ident)
		if !ok {
			return types.Field{}, false
		}
		return c.res.DatatypeField(d), true
	case ast.PatSome:
		if len(pat.Children) != 1 {
			return types.Field{}, false
		}
		if elem, ok := c.infer(pat.Children[0]); ok && optionable(elem) {
			return c.res.WithShape(elem, types.ShapeOption), true
		}
	case ast.PatList:
		for _, kid := range pat.Children {
			if elem, ok := c.infer(kid); ok && elem.Shape == types.ShapePlain {
				return c.res.WithShape(elem, types.ShapeArray), true
			}
		}
	}
	return types.Field{}, false
}

func optionable(f types.Field) bool {
	return f.Shape == types.ShapePlain && (f.Kind == types.KindDatatype || f.Kind == types.KindSymbol)
}

func describe(f types.Field) string {
	name := f.Kind.String()
	if f.Kind == types.KindDatatype {
		name = f.Datatype.Ident
	}
	switch f.Shape {
	case types.ShapeArray:
		return name + "[]"
	case types.ShapeOption:
		return name + "?"
	}
	return name
}

// compileClause checks pattern id against disc (of type t) and collects the
// checks and bindings. reserved holds names a binding must not shadow.
func (c *compiler) compileClause(id ast.PatternID, t types.Field, generic string, reserved map[string]bool) clause {
	var cl clause
	seen := make(map[string]source.Span)
	c.walk(id, t, generic, "disc", &cl, seen, reserved)
	return cl
}

// generic is the type parameter name when the discriminant type is unknown;
// only variables can match such a value.
func (c *compiler) walk(id ast.PatternID, t types.Field, generic, path string, cl *clause, seen map[string]source.Span, reserved map[string]bool) {
	pat := c.reg.Patterns.Get(id)
	if pat.Kind == ast.PatVariable {
		if !pat.Binds() {
			return
		}
		if token.IsKeyword(pat.Ident) || reserved[pat.Ident] {
			c.errorf(diag.PatReservedBinding, pat.Span, "%s: name is reserved in generated matchers", pat.Ident)
			return
		}
		if _, dup := seen[pat.Ident]; dup {
			c.errorf(diag.PatDuplicateBinding, pat.Span, "%s: variable bound more than once in this clause", pat.Ident)
			return
		}
		seen[pat.Ident] = pat.Span
		goType := generic
		if goType == "" {
			goType = t.GoType
			c.noteType(t)
		}
		cl.bindings = append(cl.bindings, binding{name: pat.Ident, goType: goType, path: path, span: pat.Span})
		return
	}
	if pat.Kind == ast.PatCtor {
		if _, _, ok := c.reg.Owner(pat.Ident); !ok {
			c.errorf(diag.PatUnknownCtor, pat.Span, "%s: unknown constructor", pat.Ident)
			return
		}
	}
	if generic != "" {
		c.errorf(diag.PatUnknownDiscType, pat.Span, "%s pattern on a value of unknown type", pat.Kind)
		return
	}

	switch pat.Kind {
	case ast.PatCtor:
		d, ctor, _ := c.reg.Owner(pat.Ident)
		if t.Kind != types.KindDatatype || t.Shape != types.ShapePlain || t.Datatype != d {
			c.errorf(diag.PatShapeMismatch, pat.Span, "%s is a constructor of %s, matched value has type %s", pat.Ident, d.Ident, describe(t))
			return
		}
		fields, err := c.res.DecomposeCtor(ctor)
		if types.Report(c.reporter, err) {
			c.failed = true
			return
		}
		if len(fields) != len(pat.Children) {
			c.errorf(diag.PatArityMismatch, pat.Span, "%s takes %d arguments, pattern has %d", pat.Ident, len(fields), len(pat.Children))
			return
		}
		cl.conds = append(cl.conds, fmt.Sprintf("%s.Tag() == %s", path, c.qualify(c.res.GoName(d)+"Tag"+ctor.Ident)))
		for i, kid := range pat.Children {
			c.walk(kid, fields[i], "", path+".As"+ctor.Ident+"().M"+strconv.Itoa(i), cl, seen, reserved)
		}

	case ast.PatList:
		if t.Shape != types.ShapeArray {
			c.errorf(diag.PatShapeMismatch, pat.Span, "list pattern on a value of type %s", describe(t))
			return
		}
		cl.conds = append(cl.conds, fmt.Sprintf("len(%s) == %d", path, len(pat.Children)))
		elem := c.res.Elem(t)
		for i, kid := range pat.Children {
			c.walk(kid, elem, "", path+"["+strconv.Itoa(i)+"]", cl, seen, reserved)
		}

	case ast.PatSome, ast.PatNone:
		if t.Shape != types.ShapeOption {
			c.errorf(diag.PatShapeMismatch, pat.Span, "%s pattern on a value of type %s", pat.Kind, describe(t))
			return
		}
		if pat.Kind == ast.PatNone {
			cl.conds = append(cl.conds, "!"+path+".IsSome()")
			return
		}
		cl.conds = append(cl.conds, path+".IsSome()")
		c.walk(pat.Children[0], c.res.Elem(t), "", path+".Get()", cl, seen, reserved)
	}
}
