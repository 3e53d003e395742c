package driver

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"tt/internal/ast"
	"tt/internal/clean"
	"tt/internal/diag"
	"tt/internal/lexer"
	"tt/internal/observ"
	"tt/internal/parser"
	"tt/internal/source"
	"tt/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File // исходный файл как на диске
	Parsed  *source.File // то, что видел лексер: очищенный текст в режиме matchers
	Mode    parser.Mode
	// Registry holds the datatypes of the input (definitions mode) or its match
	// sites plus the datatypes merged in from Options.Defs (matchers mode).
	Registry *ast.Registry
	Stats    parser.Result
	Bag      *diag.Bag
}

// Parse loads path and runs it through the front end. A non-nil result is
// returned whenever the file could be read; check Bag for user errors.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	span, ctx := trace.Start(ctx, trace.ScopePhase, "parse")
	defer span.End(path)

	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return nil, fmt.Errorf("invalid diagnostics limit %d: %w", opts.MaxDiagnostics, err)
	}

	fs := source.NewFileSet()
	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	mode := opts.Mode.Resolve(path)

	end := opts.Timer.Begin("load")
	id, err := fs.Load(path)
	end("")
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	res := &ParseResult{FileSet: fs, File: fs.Get(id), Mode: mode, Bag: bag}
	opts.Timer.Count("bytes", len(res.File.Content))

	var defs []*ast.Registry
	if mode == parser.ModeMatchers {
		for _, d := range opts.Defs {
			reg, err := parseDefinitions(ctx, fs, d, rep, maxErrors, opts.Timer)
			if err != nil {
				return nil, err
			}
			defs = append(defs, reg)
		}
		end := opts.Timer.Begin("clean")
		id = clean.CleanFile(fs, id)
		end("")
	}
	res.Parsed = fs.Get(id)

	end = opts.Timer.Begin("parse")
	reg, stats, err := parseFile(fs, id, mode, rep, maxErrors)
	end(fmt.Sprintf("%d decls, %d matches", stats.Decls, stats.Matches))
	if err != nil {
		return nil, err
	}
	for _, d := range defs {
		reg.Merge(d)
	}
	res.Registry, res.Stats = reg, stats
	opts.Timer.Count("datatypes", reg.Len())
	opts.Timer.Count("sites", len(reg.Matches))
	span.WithExtra("mode", mode.String())
	return res, nil
}

func parseDefinitions(ctx context.Context, fs *source.FileSet, path string, rep diag.Reporter, maxErrors uint, timer *observ.Timer) (*ast.Registry, error) {
	span, _ := trace.Start(ctx, trace.ScopeItem, "defs "+path)
	defer span.End("")

	end := timer.Begin("defs")
	defer end(path)
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load definitions %s: %w", path, err)
	}
	reg, _, err := parseFile(fs, id, parser.ModeDefinitions, rep, maxErrors)
	return reg, err
}

// parseFile lexes and parses one file of fs and closes the builder.
// Builder invariant violations are bugs in tt and come back as errors.
func parseFile(fs *source.FileSet, id source.FileID, mode parser.Mode, rep diag.Reporter, maxErrors uint) (reg *ast.Registry, stats parser.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			var inv *ast.InvariantError
			if e, ok := r.(error); ok && errors.As(e, &inv) {
				err = fmt.Errorf("internal error while parsing %s: %w", fs.Get(id).Path, inv)
				return
			}
			panic(r)
		}
	}()
	b := ast.NewBuilder(rep, ast.Hints{})
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	stats = parser.ParseFile(lx, b, parser.Options{Mode: mode, MaxErrors: maxErrors, Reporter: rep})
	return b.Finish(), stats, nil
}
