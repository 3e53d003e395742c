package gogen

import (
	"strconv"
	"strings"

	"tt/internal/ast"
	"tt/internal/types"
)

type ctorRep struct {
	ctor   *ast.Constructor
	fields []types.Field
}

type datatypeRep struct {
	d      *ast.Datatype
	goName string
	ctors  []ctorRep
}

// GenerateDefinitions emits the node types of every datatype in reg, in
// declaration order. reg must be closed (Builder.Finish).
func GenerateDefinitions(reg *ast.Registry, opts Options) ([]byte, error) {
	opts.normalize()
	rt := opts.runtimeName()
	res := types.NewResolver(reg, types.Options{Runtime: rt})
	names := newGoNames(opts.Reporter, rt)

	failed := false
	reps := make([]datatypeRep, 0, reg.Len())
	for _, d := range reg.Datatypes() {
		rep := datatypeRep{d: d, goName: res.GoName(d)}
		names.claimDatatype(d, rep.goName)
		for i := range d.Ctors {
			c := &d.Ctors[i]
			fields, err := res.DecomposeCtor(c)
			if types.Report(opts.Reporter, err) {
				failed = true
				continue
			}
			rep.ctors = append(rep.ctors, ctorRep{ctor: c, fields: fields})
		}
		reps = append(reps, rep)
	}
	if failed || names.failed {
		return nil, ErrInvalidInput
	}

	var p printer
	p.header(&opts)
	p.imports(opts.RuntimeImport)
	for i := range reps {
		emitDatatype(&p, &reps[i], rt)
	}
	return p.formatted()
}

func emitDatatype(p *printer, rep *datatypeRep, rt string) {
	t := rep.goName
	tag := t + "Tag"
	d := rep.d

	p.line("// %s enumerates the constructors of %s in declaration order.", tag, d.Ident)
	p.line("type %s uint32", tag)
	p.blank()
	p.line("const (")
	for i, c := range d.Ctors {
		p.line("%s%s %s = %d", tag, c.Ident, tag, i)
	}
	p.line(")")
	p.blank()
	p.line("func (t %s) String() string {", tag)
	p.line("switch t {")
	for _, c := range d.Ctors {
		p.line("case %s%s:", tag, c.Ident)
		p.line("return %s", strconv.Quote(c.Ident))
	}
	p.line("}")
	p.line("return %s", strconv.Quote(tag+"(?)"))
	p.line("}")
	p.blank()

	p.line("// %s is a node of the tt datatype %s. Nodes live in a %s.Arena", t, d.Ident, rt)
	p.line("// and are shared by pointer; they must never be copied.")
	if d.DeriveJSON {
		p.line("//")
		p.line("// tt:json %s (JSON derivation is not generated)", strconv.Quote(d.JSONArg))
	}
	p.line("type %s struct {", t)
	p.line("_ %s.NoCopy", rt)
	p.line("tag %s", tag)
	p.line("boxed any")
	p.line("}")
	p.blank()
	p.line("func (n *%s) Tag() %s { return n.tag }", t, tag)
	p.blank()
	for _, c := range d.Ctors {
		p.line("// As%s returns the %s payload, or nil when n holds another constructor.", c.Ident, c.Ident)
		p.line("func (n *%s) As%s() *Unboxed%s {", t, c.Ident, c.Ident)
		p.line("if n.tag != %s%s {", tag, c.Ident)
		p.line("return nil")
		p.line("}")
		p.line("return n.boxed.(*Unboxed%s)", c.Ident)
		p.line("}")
		p.blank()
	}

	for _, cr := range rep.ctors {
		emitCtor(p, rep, &cr, rt)
	}
}

func emitCtor(p *printer, rep *datatypeRep, cr *ctorRep, rt string) {
	t := rep.goName
	c := cr.ctor
	unboxed := "Unboxed" + c.Ident

	p.line("type %s struct {", unboxed)
	p.line("%s", t)
	for i, f := range cr.fields {
		if f.Label != "" {
			p.line("M%d %s // %s", i, f.GoType, f.Label)
		} else {
			p.line("M%d %s", i, f.GoType)
		}
	}
	p.line("}")
	p.blank()

	params := make([]string, 0, len(cr.fields)+1)
	params = append(params, "a *"+rt+".Arena")
	for i, f := range cr.fields {
		params = append(params, "m"+strconv.Itoa(i)+" "+f.GoType)
	}
	p.line("// %s allocates a %s node in a.", c.Ident, rep.d.Ident)
	p.line("func %s(%s) *%s {", c.Ident, strings.Join(params, ", "), t)
	p.line("u := %s.New[%s](a)", rt, unboxed)
	p.line("u.tag = %sTag%s", t, c.Ident)
	p.line("u.boxed = u")
	for i := range cr.fields {
		p.line("u.M%d = m%d", i, i)
	}
	p.line("return &u.%s", t)
	p.line("}")
	p.blank()
}
