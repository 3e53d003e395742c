// Package diag defines the diagnostic model shared by the tt pipeline.
//
// Producers (lexer, parser, definition builder, type resolver, pattern
// compiler) never print. They emit through a Reporter; the driver collects
// everything into a Bag and hands it to internal/diagfmt for rendering.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: numeric identifier grouped by phase. 1xxx lexer, 2xxx syntax,
//     3xxx definitions, 4xxx patterns, 5xxx output. ID() gives the stable
//     textual form such as "DEF3001".
//   - Message: short and actionable.
//   - Primary: the source.Span the diagnostic points at.
//   - Notes: secondary spans, e.g. "first defined here".
//
// User errors are sticky: once a Bag holds an error the driver refuses to
// write any output. Violations of internal invariants are not diagnostics;
// they panic (see ast.InvariantError).
package diag
