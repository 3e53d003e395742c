package types

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Namer turns dotted DSL identifiers into exported Go names.
// A Namer holds a cases.Caser and is not safe for concurrent use.
type Namer struct {
	title cases.Caser
}

func NewNamer() *Namer {
	return &Namer{title: cases.Title(language.Und, cases.NoLower)}
}

// GoName joins the segments of ident in CamelCase: "core.exp" -> "CoreExp",
// "bin_op" -> "BinOp". Existing inner capitals are kept.
func (n *Namer) GoName(ident string) string {
	var sb strings.Builder
	for _, seg := range strings.FieldsFunc(ident, func(r rune) bool { return r == '.' || r == '_' }) {
		sb.WriteString(n.title.String(seg))
	}
	return sb.String()
}
