package driver

import (
	"context"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"path/filepath"

	"tt/internal/backend/gogen"
	"tt/internal/diag"
	ttparser "tt/internal/parser"
	"tt/internal/trace"
)

type GenerateResult struct {
	*ParseResult
	Output string // путь записанного файла
	Code   []byte
}

// Generate compiles path and writes <prefix><suffix>. On any failure the
// destination does not exist afterwards and the error is ErrDiagnostics
// (see Bag) or an I/O error.
func Generate(ctx context.Context, prefix, path string, opts Options) (*GenerateResult, error) {
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "gen")
	defer span.End(path)

	output := opts.OutputPath(prefix, opts.Mode.Resolve(path))
	res, err := Parse(ctx, path, opts)
	if err != nil {
		return nil, errors.Join(err, removeStale(output))
	}
	out := &GenerateResult{ParseResult: res, Output: output}

	code, genErr := generate(ctx, res, opts)
	if genErr == nil && res.Bag.HasErrors() {
		genErr = ErrDiagnostics
	}
	if genErr != nil {
		if err := removeStale(out.Output); err != nil {
			return out, errors.Join(genErr, err)
		}
		return out, genErr
	}
	out.Code = code

	end := opts.Timer.Begin("write")
	err = writeOutput(out.Output, code)
	end(out.Output)
	if err != nil {
		return out, errors.Join(err, removeStale(out.Output))
	}
	opts.Timer.Count("output_bytes", len(code))
	return out, nil
}

func generate(ctx context.Context, res *ParseResult, opts Options) ([]byte, error) {
	if res.Bag.HasErrors() {
		return nil, ErrDiagnostics
	}
	span, _ := trace.Start(ctx, trace.ScopePhase, "generate")
	defer span.End("")
	end := opts.Timer.Begin("generate")
	defer end("")

	g := opts.gogen()
	g.Reporter = diag.BagReporter{Bag: res.Bag}
	// только имя файла: вывод не зависит от каталога, из которого запущен tt
	g.Source = filepath.Base(res.File.Path)

	var (
		code []byte
		err  error
	)
	if res.Mode == ttparser.ModeMatchers {
		if pkg, ok := hostPackage(res.File.Path, res.File.Content); ok {
			g.Package = pkg
		}
		code, err = gogen.GenerateMatchers(res.Registry, res.FileSet, g)
	} else {
		code, err = gogen.GenerateDefinitions(res.Registry, g)
	}
	if errors.Is(err, gogen.ErrInvalidInput) {
		return nil, ErrDiagnostics
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate code for %s: %w", res.File.Path, err)
	}
	return code, nil
}

// hostPackage reads the package clause of the host file: generated matchers
// must live in the same package as the __match calls.
func hostPackage(path string, src []byte) (string, bool) {
	f, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly)
	if err != nil || f.Name == nil {
		return "", false
	}
	return f.Name.Name, true
}
