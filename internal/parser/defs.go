package parser

import (
	"strings"

	"tt/internal/diag"
	"tt/internal/lexer"
	"tt/internal/source"
	"tt/internal/token"
)

// parseDefinitionFile: decl*
func (p *Parser) parseDefinitionFile() {
	for !p.at(token.EOF) && !p.opts.Enough() {
		if !p.parseDecl() {
			p.b.Abandon()
			p.resyncUntil(token.Semicolon, token.At)
			if p.at(token.Semicolon) {
				p.advance()
			}
		}
	}
}

// decl := declopt* qident '=' ctor ('|' ctor)* ';'?
func (p *Parser) parseDecl() bool {
	for p.at(token.At) {
		if !p.parseDeclOpt() {
			return false
		}
	}

	name, nameSpan, ok := p.parseQualifiedIdent()
	if !ok {
		return false
	}
	if _, ok := p.expect(token.Assign, diag.SynExpectEquals); !ok {
		return false
	}
	if !p.parseCtor() {
		return false
	}
	for p.at(token.Pipe) {
		p.advance()
		if !p.parseCtor() {
			return false
		}
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
	p.b.ApplyTypeDecl(nameSpan, name)
	p.res.Decls++
	return true
}

// declopt := '@' 'json' '(' STRING ')'
func (p *Parser) parseDeclOpt() bool {
	at := p.advance()
	opt, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return false
	}
	if opt.Text != "json" {
		p.err(diag.SynUnknownDeclOption, at.Span.Cover(opt.Span), "unknown declaration option @"+opt.Text)
		return false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
		return false
	}
	lit, ok := p.expect(token.StringLit, diag.SynExpectString)
	if !ok {
		return false
	}
	arg, err := lexer.Unquote(lit.Text)
	if err != nil {
		p.err(diag.LexBadEscape, lit.Span, err.Error())
		return false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen); !ok {
		return false
	}
	p.b.ApplyJsonDeclopt(arg)
	return true
}

// qident := IDENT ('.' IDENT)*
// Пустой последний сегмент ("a.") не синтаксическая ошибка: его отвергает builder.
func (p *Parser) parseQualifiedIdent() (string, source.Span, bool) {
	first, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return "", first.Span, false
	}
	name, sp := first.Text, first.Span
	for p.at(token.Dot) {
		dot := p.advance()
		name += "."
		sp = sp.Cover(dot.Span)
		if !p.at(token.Ident) {
			break
		}
		seg := p.advance()
		name += seg.Text
		sp = sp.Cover(seg.Span)
	}
	return name, sp, true
}

// ctor := IDENT (':' type)?
func (p *Parser) parseCtor() bool {
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return false
	}
	if p.at(token.Colon) {
		p.advance()
		if !p.parseType() {
			return false
		}
	}
	p.b.ApplyCtorDecl(name.Span, name.Text)
	return true
}

// type := atom ('*' atom)*
func (p *Parser) parseType() bool {
	start, ok := p.parseAtom()
	if !ok {
		return false
	}
	for p.at(token.Star) {
		p.advance()
		if _, ok := p.parseAtom(); !ok {
			return false
		}
		p.b.ApplyStar(start.Cover(p.lastSpan))
	}
	return true
}

// atom := (IDENT ':')? qident ('[' ']' | '?' | '#')*
func (p *Parser) parseAtom() (source.Span, bool) {
	if !p.at(token.Ident) {
		sp := p.diagnosticSpan()
		p.err(diag.SynExpectType, sp, "expected type, got "+describe(p.lx.Peek()))
		return sp, false
	}
	startSpan := p.lx.Peek().Span
	label := ""
	ident, _, _ := p.parseQualifiedIdent()
	if p.at(token.Colon) && !strings.Contains(ident, ".") {
		p.advance()
		if !p.at(token.Ident) {
			sp := p.diagnosticSpan()
			p.err(diag.SynExpectType, sp, "expected type after label "+ident)
			return sp, false
		}
		label = ident
		ident, _, _ = p.parseQualifiedIdent()
	}

	var isArray, isOption, isHash bool
	for {
		switch {
		case p.at(token.LBracket):
			p.advance()
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket); !ok {
				return startSpan, false
			}
			isArray = true
		case p.at(token.Question):
			p.advance()
			isOption = true
		case p.at(token.Hash):
			p.advance()
			isHash = true
		default:
			sp := startSpan.Cover(p.lastSpan)
			p.b.PushIdentifier(sp, ident, label, isArray, isOption, isHash)
			return sp, true
		}
	}
}
