package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadEscape                Code = 1004

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectIdentifier  Code = 2002
	SynExpectEquals      Code = 2003
	SynExpectType        Code = 2004
	SynUnclosedParen     Code = 2005
	SynUnclosedBracket   Code = 2006
	SynUnknownDeclOption Code = 2007
	SynExpectMatch       Code = 2008
	SynExpectPattern     Code = 2009
	SynExpectString      Code = 2010

	// Definitions
	DefInfo                Code = 3000
	DefDuplicateCtor       Code = 3001
	DefDuplicateDatatype   Code = 3002
	DefEmptyUnqualified    Code = 3003
	DefUnknownIdentifier   Code = 3004
	DefArrayOptionConflict Code = 3005
	DefGoNameCollision     Code = 3006

	// Patterns
	PatInfo             Code = 4000
	PatUnknownCtor      Code = 4001
	PatArityMismatch    Code = 4002
	PatShapeMismatch    Code = 4003
	PatUnknownDiscType  Code = 4004
	PatDuplicateBinding Code = 4005
	PatDuplicateLine    Code = 4006
	PatReservedBinding  Code = 4007

	// IO / output
	IOInfo  Code = 5000
	IOError Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadEscape:                "Invalid escape in string literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectEquals:             "Expected '=' after datatype name",
		SynExpectType:               "Expected type",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBracket:          "Unclosed bracket",
		SynUnknownDeclOption:        "Unknown declaration option",
		SynExpectMatch:              "Expected match",
		SynExpectPattern:            "Expected pattern",
		SynExpectString:             "Expected string literal",
		DefInfo:                     "Definition information",
		DefDuplicateCtor:            "Constructor defined more than once",
		DefDuplicateDatatype:        "Datatype defined more than once",
		DefEmptyUnqualified:         "Datatype has empty unqualified name",
		DefUnknownIdentifier:        "Identifier unknown",
		DefArrayOptionConflict:      "Array and option are not miscible",
		DefGoNameCollision:          "Generated Go name is taken",
		PatInfo:                     "Pattern information",
		PatUnknownCtor:              "Unknown constructor in pattern",
		PatArityMismatch:            "Constructor pattern arity mismatch",
		PatShapeMismatch:            "Pattern does not fit the matched type",
		PatUnknownDiscType:          "Cannot determine the matched type",
		PatDuplicateBinding:         "Variable bound more than once in a clause",
		PatDuplicateLine:            "Several match sites on one line",
		PatReservedBinding:          "Binding name is reserved",
		IOInfo:                      "I/O information",
		IOError:                     "I/O failure",
	}
)

// ID returns the stable textual identifier, e.g. "DEF3001".
func (c Code) ID() string {
	ic := int(c)
	switch {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("DEF%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("PAT%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Title returns the short human description of the code.
func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
