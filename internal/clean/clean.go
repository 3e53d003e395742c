package clean

import (
	"bytes"

	"tt/internal/source"
)

type state uint8

const (
	stEntry state = iota
	stLineComment
	stBlockComment
	stPassthrough // внутри /*| ... */
	stString
	stChar
	stRawString
)

var matchIdent = []byte("__match")

// Clean returns the matcher view of src. len(Clean(src)) == len(src).
func Clean(src []byte) []byte {
	out := make([]byte, len(src))
	var (
		st     = stEntry
		depths []int // глубина скобок для каждого открытого __match
	)
	at := func(i int) byte {
		if i < len(src) {
			return src[i]
		}
		return 0
	}
	blank := func(i int) {
		if c := src[i]; c == '\n' || c == '\r' {
			out[i] = c
		} else {
			out[i] = ' '
		}
	}

	for i := 0; i < len(src); i++ {
		c0, c1 := src[i], at(i+1)
		switch st {
		case stEntry:
			switch {
			case c0 == '/' && c1 == '/':
				st = stLineComment
				out[i] = ' '
			case c0 == '/' && c1 == '*' && at(i+2) == '|':
				out[i], out[i+1] = ' ', ' '
				i++
				st = stPassthrough
			case c0 == '/' && c1 == '*':
				out[i], out[i+1] = ' ', ' '
				i++
				st = stBlockComment
			case c0 == '_' && isMatchAt(src, i):
				copy(out[i:], "  match")
				i += len(matchIdent) - 1
				depths = append(depths, 0)
			case c0 == '"':
				st = stString
				out[i] = ' '
			case c0 == '\'':
				st = stChar
				out[i] = ' '
			case c0 == '`':
				st = stRawString
				out[i] = ' '
			case c0 == '(' && len(depths) > 0:
				depths[len(depths)-1]++
				if depths[len(depths)-1] == 1 {
					out[i] = '('
				} else {
					out[i] = ' '
				}
			case c0 == ')' && len(depths) > 0:
				depths[len(depths)-1]--
				if depths[len(depths)-1] == 0 {
					out[i] = ')'
					depths = depths[:len(depths)-1]
				} else {
					out[i] = ' '
				}
			default:
				blank(i)
			}

		case stLineComment:
			blank(i)
			if c0 == '\n' {
				st = stEntry
			}

		case stBlockComment:
			if c0 == '*' && c1 == '/' {
				out[i], out[i+1] = ' ', ' '
				i++
				st = stEntry
				continue
			}
			blank(i)

		case stPassthrough:
			if c0 == '*' && c1 == '/' {
				out[i], out[i+1] = ' ', ' '
				i++
				st = stEntry
				continue
			}
			out[i] = c0

		case stString, stChar:
			quote := byte('"')
			if st == stChar {
				quote = '\''
			}
			switch {
			case c0 == '\\' && i+1 < len(src):
				blank(i)
				blank(i + 1)
				i++
			case c0 == quote:
				out[i] = ' '
				st = stEntry
			default:
				blank(i)
			}

		case stRawString:
			blank(i)
			if c0 == '`' {
				st = stEntry
			}
		}
	}
	return out
}

// isMatchAt reports whether src[i:] starts a standalone __match identifier.
func isMatchAt(src []byte, i int) bool {
	if !bytes.HasPrefix(src[i:], matchIdent) {
		return false
	}
	if i > 0 && isIdentByte(src[i-1]) {
		return false
	}
	end := i + len(matchIdent)
	return end >= len(src) || !isIdentByte(src[end])
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= 0x80 ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// CleanFile cleans the file with the given id and registers the result in fs
// under the same path. Spans into the returned file resolve to the original
// line and column.
func CleanFile(fs *source.FileSet, id source.FileID) source.FileID {
	f := fs.Get(id)
	cleaned := Clean(f.Content)
	return fs.Add(f.Path, cleaned, f.Flags|source.FileCleaned)
}
