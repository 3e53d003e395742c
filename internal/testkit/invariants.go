// Package testkit holds checks shared by tests that feed arbitrary input
// through the front end.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tt/internal/ast"
	"tt/internal/source"
)

// CheckRegistrySpans verifies that a closed registry points only into sf:
//  1. every datatype, constructor, match and pattern span lies within the content
//  2. datatypes appear in increasing source order
//  3. constructors follow the name of their datatype
//  4. patterns of a match start after its match keyword
//
// Datatypes merged in from other files (Registry.Merge) are skipped.
func CheckRegistrySpans(reg *ast.Registry, sf *source.File) error {
	if reg == nil || sf == nil {
		return fmt.Errorf("nil registry or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	inFile := func(what string, sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s span points to file %d, want %d", what, sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > size {
			return fmt.Errorf("%s span %v outside content of %d bytes", what, sp, size)
		}
		return nil
	}

	var prevEnd uint32
	for _, d := range reg.Datatypes() {
		if d.Span.File != sf.ID {
			continue
		}
		if err := inFile("datatype "+d.Ident, d.Span); err != nil {
			return err
		}
		if d.Span.Start < prevEnd {
			return fmt.Errorf("datatype %s at %v starts before the previous one ends (%d)", d.Ident, d.Span, prevEnd)
		}
		prevEnd = d.Span.End
		for _, c := range d.Ctors {
			if err := inFile("ctor "+c.Ident, c.Span); err != nil {
				return err
			}
			if c.Span.Start < d.Span.End {
				return fmt.Errorf("ctor %s at %v precedes datatype name %s", c.Ident, c.Span, d.Ident)
			}
		}
	}

	for i, m := range reg.Matches {
		what := fmt.Sprintf("match #%d", i)
		if err := inFile(what, m.Span); err != nil {
			return err
		}
		for _, c := range m.Clauses {
			if err := checkPattern(reg.Patterns, c, m.Span, what, inFile); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkPattern(p *ast.Patterns, id ast.PatternID, outer source.Span, what string, inFile func(string, source.Span) error) error {
	n := p.Get(id)
	label := fmt.Sprintf("%s: %s pattern", what, n.Kind)
	if err := inFile(label, n.Span); err != nil {
		return err
	}
	if n.Span.Start < outer.Start {
		return fmt.Errorf("%s span %v starts before %v", label, n.Span, outer)
	}
	for _, c := range n.Children {
		if err := checkPattern(p, c, outer, what, inFile); err != nil {
			return err
		}
	}
	return nil
}
