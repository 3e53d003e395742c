package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// StringLit is a double-quoted string, quotes included in Text.
	StringLit
	// KwMatch opens a match site in cleaned host source.
	KwMatch // match

	Assign     // =
	Pipe       // |
	Semicolon  // ;
	Colon      // :
	Comma      // ,
	Dot        // .
	Star       // *
	Question   // ?
	Hash       // #
	At         // @
	Underscore // _
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	StringLit:  "StringLit",
	KwMatch:    "KwMatch",
	Assign:     "Assign",
	Pipe:       "Pipe",
	Semicolon:  "Semicolon",
	Colon:      "Colon",
	Comma:      "Comma",
	Dot:        "Dot",
	Star:       "Star",
	Question:   "Question",
	Hash:       "Hash",
	At:         "At",
	Underscore: "Underscore",
	LParen:     "LParen",
	RParen:     "RParen",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindText = map[Kind]string{
	EOF:        "end of file",
	KwMatch:    "'match'",
	Assign:     "'='",
	Pipe:       "'|'",
	Semicolon:  "';'",
	Colon:      "':'",
	Comma:      "','",
	Dot:        "'.'",
	Star:       "'*'",
	Question:   "'?'",
	Hash:       "'#'",
	At:         "'@'",
	Underscore: "'_'",
	LParen:     "'('",
	RParen:     "')'",
	LBracket:   "'['",
	RBracket:   "']'",
}

// Describe renders the kind for "expected X" style messages.
func (k Kind) Describe() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	switch k {
	case Ident:
		return "identifier"
	case StringLit:
		return "string literal"
	}
	return k.String()
}
