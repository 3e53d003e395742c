// Package ttrt is the runtime imported by code that tt generates.
//
// Generated datatypes are allocated from an Arena passed explicitly to each
// constructor function and live until the arena is reset; there is no
// per-object free. Identifiers are interned into a SymbolTable and stored as
// Symbol values. Option and Ref are the optional containers used for `x?`
// fields, Unit and Range back the built-in `unit` and `range` types.
package ttrt
