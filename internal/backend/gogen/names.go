package gogen

import (
	"go/token"
	gotypes "go/types"

	"tt/internal/ast"
	"tt/internal/diag"
	"tt/internal/source"
)

// goNames is the set of package-level names a generated file declares.
type goNames struct {
	taken    map[string]source.Span
	reserved map[string]bool
	reporter diag.Reporter
	failed   bool
}

func newGoNames(r diag.Reporter, reserved ...string) *goNames {
	n := &goNames{taken: make(map[string]source.Span), reserved: make(map[string]bool), reporter: r}
	for _, name := range reserved {
		n.reserved[name] = true
	}
	return n
}

// usable rejects names that are Go keywords or predeclared identifiers:
// the generated code itself relies on string, len, any and friends.
func usable(name string) bool {
	return token.IsIdentifier(name) && gotypes.Universe.Lookup(name) == nil
}

func (n *goNames) claim(name, what string, sp source.Span) {
	if !usable(name) {
		n.errorf(sp, nil, "%s: %q is not a usable Go identifier", what, name)
		return
	}
	if n.reserved[name] {
		n.errorf(sp, nil, "%s: Go name %s is used by the generated code", what, name)
		return
	}
	if prev, ok := n.taken[name]; ok {
		n.errorf(sp, &diag.Note{Span: prev, Msg: "the other declaration producing it"}, "%s: Go name %s is already taken", what, name)
		return
	}
	n.taken[name] = sp
}

func (n *goNames) errorf(sp source.Span, note *diag.Note, format string, args ...any) {
	n.failed = true
	if n.reporter == nil {
		return
	}
	b := diag.ReportErrorf(n.reporter, diag.DefGoNameCollision, sp, format, args...)
	if note != nil {
		b.WithNote(note.Span, note.Msg)
	}
	b.Emit()
}

// claimDatatype reserves every top-level name emitted for d.
func (n *goNames) claimDatatype(d *ast.Datatype, goName string) {
	n.claim(goName, d.Ident, d.Span)
	n.claim(goName+"Tag", d.Ident, d.Span)
	for i := range d.Ctors {
		c := &d.Ctors[i]
		n.claim(goName+"Tag"+c.Ident, c.Ident, c.Span)
		n.claim("Unboxed"+c.Ident, c.Ident, c.Span)
		n.claim(c.Ident, c.Ident, c.Span)
	}
}
