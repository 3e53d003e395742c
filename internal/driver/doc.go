// Package driver runs the tt pipeline for one input file:
//
//	load -> (clean) -> lex -> parse -> close registry -> generate -> write
//
// Files ending in .tt are datatype definitions and produce <prefix>.go.
// Anything else is host Go source with __match sites and produces
// <prefix>.matchers.go; the datatypes it dispatches over come from the
// definition files listed in Options.Defs.
//
// All user errors end up in the returned diag.Bag. Go errors are reserved for
// I/O failures and for ErrDiagnostics, which says "look at the bag".
package driver
