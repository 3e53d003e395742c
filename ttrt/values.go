package ttrt

import "fmt"

// Unit is the zero-size value of the built-in `unit` type.
type Unit struct{}

// Range is a half-open byte range in some source file.
type Range struct {
	File  uint32
	Begin uint32
	End   uint32
}

func (r Range) Len() uint32 { return r.End - r.Begin }

func (r Range) Empty() bool { return r.Begin == r.End }

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d", r.File, r.Begin, r.End)
}

// NoCopy is embedded into generated node types; `go vet -copylocks`
// flags any copy of a value that contains it.
type NoCopy struct{}

func (*NoCopy) Lock()   {}
func (*NoCopy) Unlock() {}
