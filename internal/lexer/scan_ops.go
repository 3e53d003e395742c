package lexer

import (
	"fmt"
	"unicode/utf8"

	"tt/internal/diag"
	"tt/internal/token"
)

var punct = [256]token.Kind{
	'=': token.Assign,
	'|': token.Pipe,
	';': token.Semicolon,
	':': token.Colon,
	',': token.Comma,
	'.': token.Dot,
	'*': token.Star,
	'?': token.Question,
	'#': token.Hash,
	'@': token.At,
	'_': token.Underscore,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
}

// scanPunct: вся пунктуация tt односимвольная.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	if k := punct[ch]; k != token.Invalid {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	// неизвестный символ: съедаем руну целиком, чтобы не резать UTF-8
	if ch >= utf8.RuneSelf {
		lx.bumpRune()
	} else {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", text))
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}
