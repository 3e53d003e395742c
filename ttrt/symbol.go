package ttrt

import (
	"slices"
)

// Symbol is an interned identifier. The zero value is the empty symbol.
type Symbol uint32

const NoSymbol Symbol = 0

func (s Symbol) IsValid() bool { return s != NoSymbol }

type SymbolTable struct {
	byID  []string          // индекс -> строка (byID[0] = "" для NoSymbol)
	index map[string]Symbol // строка -> Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byID:  []string{""},
		index: map[string]Symbol{"": NoSymbol},
	}
}

// Intern вставляет строку и возвращает её Symbol.
// Если строка уже есть, возвращает существующий.
func (t *SymbolTable) Intern(s string) Symbol {
	if id, ok := t.index[s]; ok {
		return id
	}
	// собственная копия, чтобы не держать исходный буфер
	cpy := string([]byte(s))
	id := Symbol(len(t.byID))
	t.byID = append(t.byID, cpy)
	t.index[cpy] = id
	return id
}

// Lookup возвращает строку по Symbol.
func (t *SymbolTable) Lookup(id Symbol) (string, bool) {
	if int(id) >= len(t.byID) {
		return "", false
	}
	return t.byID[id], true
}

// MustLookup паникует на неизвестном Symbol.
func (t *SymbolTable) MustLookup(id Symbol) string {
	s, ok := t.Lookup(id)
	if !ok {
		panic("ttrt: unknown symbol")
	}
	return s
}

// Len counts NoSymbol too, so it is never less than 1.
func (t *SymbolTable) Len() int {
	return len(t.byID)
}

func (t *SymbolTable) Snapshot() []string {
	return slices.Clone(t.byID)
}
