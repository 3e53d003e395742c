package token_test

import (
	"testing"

	"tt/internal/source"
	"tt/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsPunct(t *testing.T) {
	ops := []token.Kind{
		token.Assign, token.Pipe, token.Semicolon, token.Colon, token.Comma,
		token.Dot, token.Star, token.Question, token.Hash, token.At,
		token.Underscore, token.LParen, token.RParen, token.LBracket, token.RBracket,
	}
	for _, k := range ops {
		if !tok(k).IsPunct() {
			t.Fatalf("%v should be punct", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.StringLit, token.KwMatch, token.EOF} {
		if tok(k).IsPunct() {
			t.Fatalf("%v must NOT be punct", k)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	if k, ok := token.LookupKeyword("match"); !ok || k != token.KwMatch {
		t.Fatalf("match should be a keyword, got %v %v", k, ok)
	}
	for _, s := range []string{"Match", "json", "Some", "None", "__match"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("%q must not be a keyword", s)
		}
	}
}

func TestKindStrings(t *testing.T) {
	if token.LBracket.String() != "LBracket" {
		t.Fatalf("unexpected name %q", token.LBracket.String())
	}
	if token.Assign.Describe() != "'='" || token.Ident.Describe() != "identifier" {
		t.Fatalf("unexpected descriptions %q %q", token.Assign.Describe(), token.Ident.Describe())
	}
	if token.TriviaBlockComment.String() != "BlockComment" {
		t.Fatalf("unexpected trivia name %q", token.TriviaBlockComment.String())
	}
}
