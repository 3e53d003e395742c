package parser

import (
	"slices"

	"tt/internal/ast"
	"tt/internal/diag"
	"tt/internal/lexer"
	"tt/internal/source"
	"tt/internal/token"
)

// Mode selects the grammar entry point.
type Mode uint8

const (
	// ModeDefinitions parses a .tt file of datatype declarations.
	ModeDefinitions Mode = iota
	// ModeMatchers parses cleaned host source: a sequence of match sites.
	ModeMatchers
)

func (m Mode) String() string {
	if m == ModeMatchers {
		return "matchers"
	}
	return "definitions"
}

type Options struct {
	Mode          Mode
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Decls   int // завершённые объявления datatype
	Matches int // разобранные match, включая вложенные
	Errors  uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	b        *ast.Builder
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
	res      Result
}

// ParseFile разбирает один файл, вызывая семантические действия b в том
// порядке, в каком их вызвала бы LALR-грамматика (снизу вверх).
// Finish на b вызывает вызывающая сторона.
func ParseFile(lx *lexer.Lexer, b *ast.Builder, opts Options) Result {
	p := Parser{lx: lx, b: b, opts: opts}
	switch opts.Mode {
	case ModeMatchers:
		p.parseMatchFile()
	default:
		p.parseDefinitionFile()
	}
	p.res.Errors = p.opts.CurrentErrors
	return p.res
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// atIdent reports whether the next token is the identifier text.
func (p *Parser) atIdent(text string) bool {
	t := p.lx.Peek()
	return t.Kind == token.Ident && t.Text == text
}
