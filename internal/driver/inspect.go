package driver

import (
	"context"
	"strings"

	"tt/internal/ast"
	"tt/internal/diag"
	"tt/internal/types"
)

// RegistryExport is the serializable view of a closed registry used by
// `tt inspect`. Tags are shared by json, yaml and msgpack.
type RegistryExport struct {
	Source    string           `json:"source" yaml:"source" msgpack:"source"`
	Mode      string           `json:"mode" yaml:"mode" msgpack:"mode"`
	Datatypes []DatatypeExport `json:"datatypes" yaml:"datatypes" msgpack:"datatypes"`
	Matches   []MatchExport    `json:"matches,omitempty" yaml:"matches,omitempty" msgpack:"matches,omitempty"`
}

type DatatypeExport struct {
	Ident  string       `json:"ident" yaml:"ident" msgpack:"ident"`
	GoName string       `json:"go_name" yaml:"go_name" msgpack:"go_name"`
	JSON   *string      `json:"json,omitempty" yaml:"json,omitempty" msgpack:"json,omitempty"`
	Ctors  []CtorExport `json:"ctors" yaml:"ctors" msgpack:"ctors"`
}

type CtorExport struct {
	Ident   string        `json:"ident" yaml:"ident" msgpack:"ident"`
	Tag     int           `json:"tag" yaml:"tag" msgpack:"tag"`
	Payload string        `json:"payload,omitempty" yaml:"payload,omitempty" msgpack:"payload,omitempty"`
	Fields  []FieldExport `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields,omitempty"`
}

type FieldExport struct {
	Label  string `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Kind   string `json:"kind" yaml:"kind" msgpack:"kind"`
	Shape  string `json:"shape" yaml:"shape" msgpack:"shape"`
	GoType string `json:"go_type" yaml:"go_type" msgpack:"go_type"`
}

type MatchExport struct {
	Line    int      `json:"line" yaml:"line" msgpack:"line"`
	Clauses []string `json:"clauses" yaml:"clauses" msgpack:"clauses"`
}

type InspectResult struct {
	*ParseResult
	Export RegistryExport
}

// Inspect parses path and describes what was registered. Unresolvable field
// types are reported into the bag and leave the constructor without Fields.
func Inspect(ctx context.Context, path string, opts Options) (*InspectResult, error) {
	res, err := Parse(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	exp := RegistryExport{Source: res.File.Path, Mode: res.Mode.String()}
	rep := diag.BagReporter{Bag: res.Bag}
	reg := res.Registry
	resolver := types.NewResolver(reg, types.Options{})

	for _, d := range reg.Datatypes() {
		de := DatatypeExport{Ident: d.Ident, GoName: resolver.GoName(d), Ctors: make([]CtorExport, 0, len(d.Ctors))}
		if d.DeriveJSON {
			arg := d.JSONArg
			de.JSON = &arg
		}
		for i := range d.Ctors {
			c := &d.Ctors[i]
			ce := CtorExport{Ident: c.Ident, Tag: i, Payload: FormatType(reg.Types, c.Payload)}
			fields, err := resolver.DecomposeCtor(c)
			if !types.Report(rep, err) {
				for _, f := range fields {
					ce.Fields = append(ce.Fields, FieldExport{
						Label:  f.Label,
						Kind:   f.Kind.String(),
						Shape:  f.Shape.String(),
						GoType: f.GoType,
					})
				}
			}
			de.Ctors = append(de.Ctors, ce)
		}
		exp.Datatypes = append(exp.Datatypes, de)
	}

	for _, m := range reg.Matches {
		start, _ := res.FileSet.Resolve(m.Span)
		me := MatchExport{Line: int(start.Line), Clauses: make([]string, 0, len(m.Clauses))}
		for _, c := range m.Clauses {
			me.Clauses = append(me.Clauses, FormatPattern(reg.Patterns, c))
		}
		exp.Matches = append(exp.Matches, me)
	}
	return &InspectResult{ParseResult: res, Export: exp}, nil
}

// FormatType renders a type expression in definition syntax.
func FormatType(t *ast.Types, id ast.TypeID) string {
	if !id.IsValid() {
		return ""
	}
	var sb strings.Builder
	writeType(&sb, t, id)
	return sb.String()
}

func writeType(sb *strings.Builder, t *ast.Types, id ast.TypeID) {
	n := t.Get(id)
	if n.Kind == ast.TypeTuple {
		for i, e := range n.Elems {
			if i > 0 {
				sb.WriteString(" * ")
			}
			writeType(sb, t, e)
		}
		return
	}
	if n.Label != "" {
		sb.WriteString(n.Label)
		sb.WriteString(": ")
	}
	sb.WriteString(n.Ident)
	if n.IsArray {
		sb.WriteString("[]")
	}
	if n.IsOption {
		sb.WriteByte('?')
	}
	if n.IsHash {
		sb.WriteByte('#')
	}
}

// FormatPattern renders a pattern in matcher syntax.
func FormatPattern(p *ast.Patterns, id ast.PatternID) string {
	var sb strings.Builder
	writePattern(&sb, p, id)
	return sb.String()
}

func writePattern(sb *strings.Builder, p *ast.Patterns, id ast.PatternID) {
	n := p.Get(id)
	switch n.Kind {
	case ast.PatVariable:
		sb.WriteString(n.Ident)
	case ast.PatNone:
		sb.WriteString("None")
	case ast.PatSome:
		sb.WriteString("Some(")
		writePatterns(sb, p, n.Children)
		sb.WriteByte(')')
	case ast.PatList:
		sb.WriteByte('[')
		writePatterns(sb, p, n.Children)
		sb.WriteByte(']')
	case ast.PatCtor:
		sb.WriteString(n.Ident)
		sb.WriteByte('(')
		writePatterns(sb, p, n.Children)
		sb.WriteByte(')')
	}
}

func writePatterns(sb *strings.Builder, p *ast.Patterns, ids []ast.PatternID) {
	for i, c := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		writePattern(sb, p, c)
	}
}
