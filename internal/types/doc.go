// Package types maps tt type expressions onto Go field types.
//
// A constructor payload is a tree of identifiers and tuples; the resolver
// flattens it depth-first into the field list of the unboxed struct and
// chooses a Go representation for every identifier: a pointer to a known
// datatype, a runtime Symbol, Unit or Range, each possibly wrapped as an
// array or an option.
package types
