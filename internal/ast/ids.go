package ast

type (
	TypeID    uint32
	PatternID uint32
)

const (
	NoTypeID    TypeID    = 0
	NoPatternID PatternID = 0
)

func (id TypeID) IsValid() bool    { return id != NoTypeID }
func (id PatternID) IsValid() bool { return id != NoPatternID }
