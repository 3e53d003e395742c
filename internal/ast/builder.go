package ast

import (
	"fmt"
	"strings"

	"tt/internal/diag"
	"tt/internal/source"
)

type Hints struct{ Types, Patterns uint }

// Builder receives semantic actions from the parser in bottom-up order and
// assembles the Registry. User errors go to the reporter and make the build
// fail; arity mismatches between grammar and builder panic.
type Builder struct {
	reg      *Registry
	reporter diag.Reporter

	typeStack []TypeID
	patStack  []PatternID

	next      Datatype // datatype under construction
	hadErrors bool
	finished  bool
}

func NewBuilder(reporter diag.Reporter, hints Hints) *Builder {
	if hints.Types == 0 {
		hints.Types = 1 << 6
	}
	if hints.Patterns == 0 {
		hints.Patterns = 1 << 6
	}
	return &Builder{
		reg:      newRegistry(hints),
		reporter: reporter,
	}
}

// HadErrors is sticky: once set it stays set.
func (b *Builder) HadErrors() bool { return b.hadErrors }

func (b *Builder) errorf(code diag.Code, sp source.Span, note *diag.Note, format string, args ...any) {
	b.hadErrors = true
	if b.reporter == nil {
		return
	}
	rb := diag.ReportErrorf(b.reporter, code, sp, format, args...)
	if note != nil {
		rb.WithNote(note.Span, note.Msg)
	}
	rb.Emit()
}

func (b *Builder) checkOpen(op string) {
	if b.finished {
		invariantf(op, "builder already finished")
	}
}

// ===== types =====

func (b *Builder) PushIdentifier(sp source.Span, ident, label string, isArray, isOption, isHash bool) {
	b.checkOpen("PushIdentifier")
	b.typeStack = append(b.typeStack, b.reg.Types.NewIdent(sp, ident, label, isArray, isOption, isHash))
}

// ApplyStar pops two nodes and pushes their product. A tuple on the left is
// extended in place, so a*b*c yields one 3-ary tuple.
func (b *Builder) ApplyStar(sp source.Span) {
	b.checkOpen("ApplyStar")
	if len(b.typeStack) < 2 {
		invariant("ApplyStar", ErrStackUnderflow)
	}
	rhs := b.typeStack[len(b.typeStack)-1]
	lhs := b.typeStack[len(b.typeStack)-2]
	b.typeStack = b.typeStack[:len(b.typeStack)-2]

	if node := b.reg.Types.Get(lhs); node.Kind == TypeTuple {
		node.Elems = append(node.Elems, rhs)
		node.Span = node.Span.Cover(b.reg.Types.Get(rhs).Span)
		b.typeStack = append(b.typeStack, lhs)
		return
	}
	b.typeStack = append(b.typeStack, b.reg.Types.NewTuple(sp, lhs, rhs))
}

func (b *Builder) ApplyCtorDecl(sp source.Span, ident string) {
	b.checkOpen("ApplyCtorDecl")
	if owner, ok := b.reg.ctorOwner[ident]; ok {
		_, prev, _ := b.reg.Owner(ident)
		b.errorf(diag.DefDuplicateCtor, sp, &diag.Note{Span: prev.Span, Msg: "previously defined here"},
			"%s used elsewhere as a ctor in %s", ident, owner)
	} else {
		for _, c := range b.next.Ctors {
			if c.Ident == ident {
				b.errorf(diag.DefDuplicateCtor, sp, &diag.Note{Span: c.Span, Msg: "previously defined here"},
					"%s used twice as a ctor in the same datatype", ident)
				break
			}
		}
	}

	ctor := Constructor{Ident: ident, Span: sp}
	if n := len(b.typeStack); n > 0 {
		ctor.Payload = b.typeStack[n-1]
		b.typeStack = b.typeStack[:n-1]
	}
	b.next.Ctors = append(b.next.Ctors, ctor)
}

func (b *Builder) ApplyJsonDeclopt(arg string) {
	b.checkOpen("ApplyJsonDeclopt")
	b.next.DeriveJSON = true
	b.next.JSONArg = arg
}

func (b *Builder) ApplyTypeDecl(sp source.Span, ident string) {
	b.checkOpen("ApplyTypeDecl")
	if len(b.next.Ctors) == 0 {
		invariantf("ApplyTypeDecl", "datatype %s has no constructors", ident)
	}
	defer func() { b.next = Datatype{} }()

	if prev, ok := b.reg.datatypes[ident]; ok {
		b.errorf(diag.DefDuplicateDatatype, sp, &diag.Note{Span: prev.Span, Msg: "previously defined here"},
			"%s multiply defined", ident)
		return
	}

	d := b.next
	d.Ident = ident
	d.Span = sp
	segments := strings.Split(ident, ".")
	d.Name = segments[len(segments)-1]
	d.Qualifiers = segments[:len(segments)-1]
	if d.Name == "" {
		b.errorf(diag.DefEmptyUnqualified, sp, nil, "%s has empty unqualified name", ident)
	}

	b.reg.datatypes[ident] = &d
	b.reg.order = append(b.reg.order, ident)
	for _, c := range d.Ctors {
		if _, taken := b.reg.ctorOwner[c.Ident]; !taken {
			b.reg.ctorOwner[c.Ident] = ident
		}
	}
}

// ===== patterns =====

func (b *Builder) PushPatternCtorOrVariable(sp source.Span, ident string) {
	b.checkOpen("PushPatternCtorOrVariable")
	b.patStack = append(b.patStack, b.reg.Patterns.New(PatVariable, sp, ident))
}

func (b *Builder) popPatterns(op string, n int) []PatternID {
	if n < 0 || len(b.patStack) < n {
		invariant(op, fmt.Errorf("%w: want %d, have %d", ErrStackUnderflow, n, len(b.patStack)))
	}
	cut := len(b.patStack) - n
	out := append([]PatternID(nil), b.patStack[cut:]...)
	b.patStack = b.patStack[:cut]
	return out
}

func (b *Builder) ApplyCtorPattern(sp source.Span, ident string, arity int) {
	b.checkOpen("ApplyCtorPattern")
	children := b.popPatterns("ApplyCtorPattern", arity)
	b.patStack = append(b.patStack, b.reg.Patterns.New(PatCtor, sp, ident, children...))
}

func (b *Builder) ApplyListPattern(sp source.Span, arity int) {
	b.checkOpen("ApplyListPattern")
	children := b.popPatterns("ApplyListPattern", arity)
	b.patStack = append(b.patStack, b.reg.Patterns.New(PatList, sp, "", children...))
}

func (b *Builder) ApplyOptionPattern(sp source.Span, isSome bool) {
	b.checkOpen("ApplyOptionPattern")
	if !isSome {
		b.patStack = append(b.patStack, b.reg.Patterns.New(PatNone, sp, ""))
		return
	}
	child := b.popPatterns("ApplyOptionPattern", 1)
	b.patStack = append(b.patStack, b.reg.Patterns.New(PatSome, sp, "", child...))
}

func (b *Builder) ApplyMatch(sp source.Span, clauseCount int) {
	b.checkOpen("ApplyMatch")
	clauses := b.popPatterns("ApplyMatch", clauseCount)
	b.reg.Matches = append(b.reg.Matches, Match{Clauses: clauses, Span: sp})
}

// Finish closes the registry. No further actions are accepted afterwards.
func (b *Builder) Finish() *Registry {
	b.checkOpen("Finish")
	if len(b.typeStack) != 0 {
		invariantf("Finish", "%d dangling type nodes", len(b.typeStack))
	}
	if len(b.patStack) != 0 {
		invariantf("Finish", "%d dangling patterns", len(b.patStack))
	}
	if len(b.next.Ctors) != 0 {
		invariantf("Finish", "datatype left half-built")
	}
	b.finished = true
	return b.reg
}

// Abandon discards partial state after a syntax error so that Finish can
// still close whatever was completed.
func (b *Builder) Abandon() {
	b.typeStack = b.typeStack[:0]
	b.patStack = b.patStack[:0]
	b.next = Datatype{}
}
