package ast

import (
	"tt/internal/source"
)

type PatternKind uint8

const (
	PatVariable PatternKind = iota
	PatCtor
	PatList
	PatSome
	PatNone
)

func (k PatternKind) String() string {
	switch k {
	case PatVariable:
		return "variable"
	case PatCtor:
		return "ctor"
	case PatList:
		return "list"
	case PatSome:
		return "some"
	case PatNone:
		return "none"
	}
	return "pattern(?)"
}

// Wildcard is the variable name that matches without binding.
const Wildcard = "_"

type Pattern struct {
	Kind     PatternKind
	Ident    string // Variable / Ctor
	Children []PatternID
	Span     source.Span
}

// Binds reports whether the pattern introduces a binding.
func (p *Pattern) Binds() bool {
	return p.Kind == PatVariable && p.Ident != Wildcard
}

type Patterns struct {
	Arena *Arena[Pattern]
}

func NewPatterns(capHint uint) *Patterns {
	return &Patterns{Arena: NewArena[Pattern](capHint)}
}

func (p *Patterns) New(kind PatternKind, sp source.Span, ident string, children ...PatternID) PatternID {
	return PatternID(p.Arena.Allocate(Pattern{Kind: kind, Ident: ident, Children: children, Span: sp}))
}

func (p *Patterns) Get(id PatternID) *Pattern {
	return p.Arena.Get(uint32(id))
}

// Match is one dispatch site; clause order is significant.
type Match struct {
	Clauses []PatternID
	Span    source.Span
}
