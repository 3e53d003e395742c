// Package gogen emits Go source for tt registries.
//
// GenerateDefinitions turns datatypes into tagged-union node types that are
// allocated in a ttrt.Arena. GenerateMatchers turns the match sites of a
// cleaned host file into one dispatch function per host line plus the
// generic __match front end that picks the function by caller line.
// Both outputs go through go/format before they are returned.
package gogen
