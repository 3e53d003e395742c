package ast

import (
	"tt/internal/source"
)

type Constructor struct {
	Ident   string
	Payload TypeID // NoTypeID для конструктора без данных
	Span    source.Span
}

type Datatype struct {
	Ident      string   // как написано: "core.exp"
	Name       string   // последний сегмент: "exp"
	Qualifiers []string // все сегменты кроме последнего
	Ctors      []Constructor
	DeriveJSON bool
	JSONArg    string
	Span       source.Span
}

// Tag returns the discriminant of the named constructor.
func (d *Datatype) Tag(ctor string) (int, bool) {
	for i := range d.Ctors {
		if d.Ctors[i].Ident == ctor {
			return i, true
		}
	}
	return -1, false
}

// Registry is the closed result of one parse.
type Registry struct {
	Types    *Types
	Patterns *Patterns
	Matches  []Match

	datatypes map[string]*Datatype
	order     []string
	ctorOwner map[string]string
}

func newRegistry(hints Hints) *Registry {
	return &Registry{
		Types:     NewTypes(hints.Types),
		Patterns:  NewPatterns(hints.Patterns),
		datatypes: make(map[string]*Datatype),
		ctorOwner: make(map[string]string),
	}
}

// Datatype looks a datatype up by its raw dotted identifier.
func (r *Registry) Datatype(ident string) (*Datatype, bool) {
	d, ok := r.datatypes[ident]
	return d, ok
}

// Datatypes returns datatypes in declaration order.
func (r *Registry) Datatypes() []*Datatype {
	out := make([]*Datatype, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.datatypes[name])
	}
	return out
}

// Owner returns the datatype declaring ctor together with the ctor itself.
func (r *Registry) Owner(ctor string) (*Datatype, *Constructor, bool) {
	name, ok := r.ctorOwner[ctor]
	if !ok {
		return nil, nil, false
	}
	d := r.datatypes[name]
	i, _ := d.Tag(ctor)
	return d, &d.Ctors[i], true
}

func (r *Registry) Len() int { return len(r.order) }

// Merge imports datatypes of other that are not yet known here.
// Matcher files use it to see the definitions they dispatch over.
func (r *Registry) Merge(other *Registry) {
	for _, d := range other.Datatypes() {
		if _, ok := r.datatypes[d.Ident]; ok {
			continue
		}
		cp := *d
		cp.Ctors = make([]Constructor, len(d.Ctors))
		for i, c := range d.Ctors {
			c.Payload = r.importType(other.Types, c.Payload)
			cp.Ctors[i] = c
		}
		r.datatypes[cp.Ident] = &cp
		r.order = append(r.order, cp.Ident)
		for _, c := range cp.Ctors {
			if _, taken := r.ctorOwner[c.Ident]; !taken {
				r.ctorOwner[c.Ident] = cp.Ident
			}
		}
	}
}

func (r *Registry) importType(from *Types, id TypeID) TypeID {
	if !id.IsValid() {
		return NoTypeID
	}
	n := *from.Get(id)
	if n.Kind == TypeTuple {
		elems := make([]TypeID, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = r.importType(from, e)
		}
		n.Elems = elems
	}
	return TypeID(r.Types.Arena.Allocate(n))
}
