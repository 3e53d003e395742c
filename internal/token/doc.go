// Package token defines lexical token kinds and trivia of the tt surface syntax.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Comments and whitespace never reach the parser; they are Leading trivia.
//   - `@json` is lexed as At + Ident; declaration options are not keywords.
//   - `_` is always Underscore, `__x` is an identifier.
package token
