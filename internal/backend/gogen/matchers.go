package gogen

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"tt/internal/ast"
	"tt/internal/diag"
	"tt/internal/source"
	"tt/internal/types"
)

// DispatcherName is the function host code calls at every match site.
const DispatcherName = "__match"

// site is one match, compiled.
type site struct {
	line    int
	disc    types.Field
	generic bool
	clauses []clause
}

func (s *site) funcName() string { return "match_L" + strconv.Itoa(s.line) }

func (s *site) discType() string {
	if s.generic {
		return "D"
	}
	return s.disc.GoType
}

// caseType is the continuation type of clause i. The dispatcher asserts
// unnamed types and instantiates generic sites with any.
func (s *site) caseType(i int, named bool) string {
	parts := make([]string, 0, len(s.clauses[i].bindings))
	for _, b := range s.clauses[i].bindings {
		goType := b.goType
		if s.generic && !named {
			goType = "any"
		}
		if named {
			parts = append(parts, b.name+" "+goType)
		} else {
			parts = append(parts, goType)
		}
	}
	return "func(" + strings.Join(parts, ", ") + ") R"
}

// GenerateMatchers emits the dispatch code for the match sites of reg.
// reg must already know the datatypes the patterns mention (Registry.Merge);
// fs resolves match spans to host lines.
func GenerateMatchers(reg *ast.Registry, fs *source.FileSet, opts Options) ([]byte, error) {
	opts.normalize()
	rt := opts.runtimeName()
	c := &compiler{
		reg:      reg,
		res:      types.NewResolver(reg, types.Options{Runtime: rt, Defs: opts.defsName()}),
		reporter: opts.Reporter,
		defs:     opts.defsName(),
	}

	byLine := make(map[int]source.Span, len(reg.Matches))
	sites := make([]site, 0, len(reg.Matches))
	for i := range reg.Matches {
		m := &reg.Matches[i]
		start, _ := fs.Resolve(m.Span)
		line := int(start.Line)
		if prev, ok := byLine[line]; ok {
			c.failed = true
			if c.reporter != nil {
				diag.ReportErrorf(c.reporter, diag.PatDuplicateLine, m.Span, "second match site on line %d; matchers are keyed by line", line).
					WithNote(prev, "first match site on this line").
					Emit()
			}
			continue
		}
		byLine[line] = m.Span
		sites = append(sites, c.compileSite(m, line))
	}
	if c.failed {
		return nil, ErrInvalidInput
	}
	slices.SortFunc(sites, func(a, b site) int { return cmp.Compare(a.line, b.line) })

	var p printer
	p.header(&opts)
	// defsUsed известен только после компиляции всех клауз
	defsImport := ""
	if c.defsUsed {
		defsImport = opts.DefsImport
	}
	p.imports(opts.RuntimeImport, defsImport)
	for i := range sites {
		emitSite(&p, &sites[i], rt, opts.Source)
	}
	emitDispatcher(&p, sites, rt)
	return p.formatted()
}

func (c *compiler) compileSite(m *ast.Match, line int) site {
	s := site{line: line}
	s.generic = true
	for _, id := range m.Clauses {
		if t, ok := c.infer(id); ok {
			s.disc, s.generic = t, false
			c.noteType(t)
			break
		}
	}
	generic := ""
	if s.generic {
		generic = "D"
	}

	reserved := map[string]bool{"disc": true, "R": true, "D": true}
	for i := range m.Clauses {
		reserved["case"+strconv.Itoa(i)] = true
	}
	for _, id := range m.Clauses {
		s.clauses = append(s.clauses, c.compileClause(id, s.disc, generic, reserved))
	}
	return s
}

func emitSite(p *printer, s *site, rt, src string) {
	params := make([]string, 0, len(s.clauses)+1)
	params = append(params, "disc "+s.discType())
	for i := range s.clauses {
		params = append(params, fmt.Sprintf("case%d %s", i, s.caseType(i, true)))
	}
	tparams := "R any"
	if s.generic {
		tparams = "D, R any"
	}

	p.line("func %s[%s](%s) R {", s.funcName(), tparams, strings.Join(params, ", "))
	for i, cl := range s.clauses {
		p.line("if %s {", cl.admissible())
		names := make([]string, 0, len(cl.bindings))
		for _, b := range cl.bindings {
			p.line("%s := %s", b.name, b.path)
			names = append(names, b.name)
		}
		p.line("return case%d(%s)", i, strings.Join(names, ", "))
		p.line("}")
	}
	p.line("panic(%s.NoMatch(%s, %d))", rt, strconv.Quote(src), s.line)
	p.line("}")
	p.blank()
}

func emitDispatcher(p *printer, sites []site, rt string) {
	p.line("// %s runs the matcher generated for the line it is called from.", DispatcherName)
	p.line("func %s[R any](disc any, cases ...any) R {", DispatcherName)
	p.line("file, line := %s.CallerLine(1)", rt)
	p.line("switch line {")
	for i := range sites {
		s := &sites[i]
		args := make([]string, 0, len(s.clauses)+1)
		inst := "R"
		if s.generic {
			inst = "any, R"
			args = append(args, "disc")
		} else {
			args = append(args, "disc.("+s.disc.GoType+")")
		}
		for j := range s.clauses {
			args = append(args, fmt.Sprintf("cases[%d].(%s)", j, s.caseType(j, false)))
		}
		p.line("case %d:", s.line)
		p.line("return %s[%s](%s)", s.funcName(), inst, strings.Join(args, ", "))
	}
	p.line("}")
	p.line("panic(&%s.UnknownSiteError{File: file, Line: line})", rt)
	p.line("}")
}
