package types

import (
	"fmt"

	"tt/internal/ast"
	"tt/internal/diag"
)

type Kind uint8

const (
	KindDatatype Kind = iota
	KindSymbol
	KindUnit
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindDatatype:
		return "datatype"
	case KindSymbol:
		return "ident"
	case KindUnit:
		return "unit"
	case KindRange:
		return "range"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

type Shape uint8

const (
	ShapePlain Shape = iota
	ShapeArray
	ShapeOption
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeOption:
		return "option"
	}
	return "plain"
}

// builtin identifiers of the DSL
const (
	IdentSymbol = "ident"
	IdentUnit   = "unit"
	IdentRange  = "range"
)

// Field is one flattened member of an unboxed constructor.
type Field struct {
	Kind     Kind
	Shape    Shape
	Datatype *ast.Datatype // only for KindDatatype
	Label    string
	GoType   string
}

// Options configure how Go type text is spelled.
type Options struct {
	// Runtime is the package qualifier of the runtime, "ttrt" by default.
	Runtime string
	// Defs qualifies datatype names when they live in another package.
	Defs string
}

type Resolver struct {
	reg   *ast.Registry
	opts  Options
	namer *Namer
}

// NewResolver needs a closed registry: forward references between
// datatypes are resolved against the complete set.
func NewResolver(reg *ast.Registry, opts Options) *Resolver {
	if opts.Runtime == "" {
		opts.Runtime = "ttrt"
	}
	return &Resolver{reg: reg, opts: opts, namer: NewNamer()}
}

func (r *Resolver) Namer() *Namer { return r.namer }

// GoName is the Go type name of d, without the defs qualifier.
func (r *Resolver) GoName(d *ast.Datatype) string {
	return r.namer.GoName(d.Ident)
}

func (r *Resolver) qualified(d *ast.Datatype) string {
	if r.opts.Defs == "" {
		return r.GoName(d)
	}
	return r.opts.Defs + "." + r.GoName(d)
}

// DecomposeCtor flattens the payload of c; a ctor without payload has no fields.
func (r *Resolver) DecomposeCtor(c *ast.Constructor) ([]Field, error) {
	if !c.Payload.IsValid() {
		return nil, nil
	}
	return r.DecomposeType(c.Payload)
}

// DecomposeType flattens id depth-first, left to right.
func (r *Resolver) DecomposeType(id ast.TypeID) ([]Field, error) {
	var out []Field
	if err := r.decompose(id, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resolver) decompose(id ast.TypeID, out *[]Field) error {
	node := r.reg.Types.Get(id)
	if node == nil {
		return fmt.Errorf("types: dangling type id %d", id)
	}
	if node.Kind == ast.TypeTuple {
		for _, elem := range node.Elems {
			if err := r.decompose(elem, out); err != nil {
				return err
			}
		}
		return nil
	}
	f, err := r.DecomposeIdentType(node)
	if err != nil {
		return err
	}
	*out = append(*out, f)
	return nil
}

// DecomposeIdentType resolves one identifier node. Known datatypes win
// over the builtin names, so a datatype called `range` shadows the builtin.
func (r *Resolver) DecomposeIdentType(node *ast.TypeNode) (Field, error) {
	if node.Kind != ast.TypeIdent {
		return Field{}, fmt.Errorf("types: tuple where identifier expected")
	}
	if node.IsArray && node.IsOption {
		return Field{}, errorf(diag.DefArrayOptionConflict, node.Span, "array and option are not miscible")
	}
	shape := ShapePlain
	switch {
	case node.IsArray:
		shape = ShapeArray
	case node.IsOption:
		shape = ShapeOption
	}

	f := Field{Shape: shape, Label: node.Label}
	if d, ok := r.reg.Datatype(node.Ident); ok {
		f.Kind = KindDatatype
		f.Datatype = d
	} else {
		switch node.Ident {
		case IdentSymbol:
			f.Kind = KindSymbol
		case IdentUnit:
			f.Kind, f.Shape = KindUnit, ShapePlain
		case IdentRange:
			f.Kind, f.Shape = KindRange, ShapePlain
		default:
			return Field{}, errorf(diag.DefUnknownIdentifier, node.Span, "%s: identifier unknown", node.Ident)
		}
	}
	f.GoType = r.goType(f.Kind, f.Shape, f.Datatype)
	return f, nil
}

// DatatypeField is the plain reference to d, the type of a discriminant.
func (r *Resolver) DatatypeField(d *ast.Datatype) Field {
	return r.WithShape(Field{Kind: KindDatatype, Datatype: d}, ShapePlain)
}

// WithShape rewrites f to another shape; unit and range stay plain.
func (r *Resolver) WithShape(f Field, shape Shape) Field {
	if f.Kind == KindUnit || f.Kind == KindRange {
		shape = ShapePlain
	}
	f.Shape = shape
	f.GoType = r.goType(f.Kind, shape, f.Datatype)
	return f
}

// Elem is the element type of an array or option field.
func (r *Resolver) Elem(f Field) Field {
	f.Label = ""
	return r.WithShape(f, ShapePlain)
}

func (r *Resolver) goType(kind Kind, shape Shape, d *ast.Datatype) string {
	rt := r.opts.Runtime
	switch kind {
	case KindDatatype:
		name := r.qualified(d)
		switch shape {
		case ShapeArray:
			return "[]*" + name
		case ShapeOption:
			return rt + ".Ref[" + name + "]"
		}
		return "*" + name
	case KindSymbol:
		switch shape {
		case ShapeArray:
			return "[]" + rt + ".Symbol"
		case ShapeOption:
			return rt + ".Option[" + rt + ".Symbol]"
		}
		return rt + ".Symbol"
	case KindUnit:
		return rt + ".Unit"
	case KindRange:
		return rt + ".Range"
	}
	return "any"
}
