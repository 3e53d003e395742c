package driver

import (
	"fmt"

	"tt/internal/clean"
	"tt/internal/diag"
	"tt/internal/lexer"
	"tt/internal/parser"
	"tt/internal/source"
	"tt/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File // файл, который видел лексер
	Mode    parser.Mode
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path with trivia kept. Host Go files are cleaned first, so
// the tokens are exactly what the matcher parser would see.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	mode := opts.Mode.Resolve(path)
	if mode == parser.ModeMatchers {
		id = clean.CleanFile(fs, id)
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}, KeepTrivia: true})
	return &TokenizeResult{
		FileSet: fs,
		File:    fs.Get(id),
		Mode:    mode,
		Tokens:  lx.All(),
		Bag:     bag,
	}, nil
}

// CleanSource returns the cleaned text of a host Go file. Offsets and line
// breaks are those of the input.
func CleanSource(path string) ([]byte, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return clean.Clean(fs.Get(id).Content), nil
}
