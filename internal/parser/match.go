package parser

import (
	"tt/internal/ast"
	"tt/internal/diag"
	"tt/internal/token"
)

// parseMatchFile: match*
func (p *Parser) parseMatchFile() {
	for !p.at(token.EOF) && !p.opts.Enough() {
		if p.at(token.KwMatch) {
			p.parseMatch()
			continue
		}
		tok := p.advance()
		p.err(diag.SynExpectMatch, tok.Span, "pattern text outside of a match site: "+describe(tok))
		p.resyncUntil(token.KwMatch)
	}
}

// match := 'match' '(' item* ')'
// item  := '|' pattern | match
func (p *Parser) parseMatch() {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
		p.resyncUntil(token.KwMatch)
		return
	}
	clauses := 0
	for !p.atOr(token.RParen, token.EOF) && !p.opts.Enough() {
		switch {
		case p.at(token.Pipe):
			p.advance()
			p.parsePattern()
			clauses++
		case p.at(token.KwMatch):
			p.parseMatch()
		default:
			tok := p.advance()
			p.err(diag.SynExpectPattern, tok.Span, "expected '|' before pattern, got "+describe(tok))
		}
	}
	end, _ := p.expect(token.RParen, diag.SynUnclosedParen)
	sp := kw.Span
	if end.Kind == token.RParen {
		sp = sp.Cover(end.Span)
	}
	p.b.ApplyMatch(sp, clauses)
	p.res.Matches++
}

// parsePattern всегда кладёт ровно один узел на стек шаблонов,
// даже после ошибки, чтобы арность ApplyMatch оставалась верной.
func (p *Parser) parsePattern() {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.Underscore:
		p.advance()
		p.b.PushPatternCtorOrVariable(tok.Span, ast.Wildcard)

	case tok.Kind == token.LBracket:
		p.advance()
		n := p.parsePatternList(token.RBracket)
		end, _ := p.expect(token.RBracket, diag.SynUnclosedBracket)
		p.b.ApplyListPattern(tok.Span.Cover(end.Span), n)

	case tok.Kind == token.Ident && tok.Text == "None":
		p.advance()
		sp := tok.Span
		if p.at(token.LParen) {
			p.advance()
			end, _ := p.expect(token.RParen, diag.SynUnclosedParen)
			sp = sp.Cover(end.Span)
		}
		p.b.ApplyOptionPattern(sp, false)

	case tok.Kind == token.Ident:
		p.advance()
		if !p.at(token.LParen) {
			p.b.PushPatternCtorOrVariable(tok.Span, tok.Text)
			return
		}
		p.advance()
		if tok.Text == "Some" {
			p.parsePattern()
			end, _ := p.expect(token.RParen, diag.SynUnclosedParen)
			p.b.ApplyOptionPattern(tok.Span.Cover(end.Span), true)
			return
		}
		n := p.parsePatternList(token.RParen)
		end, _ := p.expect(token.RParen, diag.SynUnclosedParen)
		p.b.ApplyCtorPattern(tok.Span.Cover(end.Span), tok.Text, n)

	default:
		sp := p.diagnosticSpan()
		p.err(diag.SynExpectPattern, sp, "expected pattern, got "+describe(tok))
		if !p.atOr(token.Pipe, token.RParen, token.RBracket, token.KwMatch, token.EOF) {
			p.advance()
		}
		p.b.PushPatternCtorOrVariable(sp, ast.Wildcard)
	}
}

// pats := pattern (',' pattern)*
func (p *Parser) parsePatternList(closer token.Kind) int {
	if p.at(closer) {
		return 0
	}
	n := 0
	for {
		p.parsePattern()
		n++
		if !p.at(token.Comma) {
			return n
		}
		p.advance()
	}
}
