package ast

import (
	"tt/internal/source"
)

type TypeKind uint8

const (
	TypeIdent TypeKind = iota
	TypeTuple
)

func (k TypeKind) String() string {
	if k == TypeTuple {
		return "tuple"
	}
	return "ident"
}

// TypeNode is either one (possibly labelled, array/option/hash) identifier
// or an ordered tuple of nodes.
type TypeNode struct {
	Kind     TypeKind
	Ident    string
	Label    string
	IsArray  bool
	IsOption bool
	IsHash   bool // зарезервировано, на генерацию не влияет
	Elems    []TypeID
	Span     source.Span
}

type Types struct {
	Arena *Arena[TypeNode]
}

func NewTypes(capHint uint) *Types {
	return &Types{Arena: NewArena[TypeNode](capHint)}
}

func (t *Types) NewIdent(sp source.Span, ident, label string, isArray, isOption, isHash bool) TypeID {
	return TypeID(t.Arena.Allocate(TypeNode{
		Kind:     TypeIdent,
		Ident:    ident,
		Label:    label,
		IsArray:  isArray,
		IsOption: isOption,
		IsHash:   isHash,
		Span:     sp,
	}))
}

func (t *Types) NewTuple(sp source.Span, elems ...TypeID) TypeID {
	return TypeID(t.Arena.Allocate(TypeNode{Kind: TypeTuple, Elems: elems, Span: sp}))
}

func (t *Types) Get(id TypeID) *TypeNode {
	return t.Arena.Get(uint32(id))
}
