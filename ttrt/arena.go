package ttrt

import (
	"reflect"
)

const (
	minChunk = 16
	maxChunk = 4096
)

// Arena is a typed bump allocator. Objects of one type are carved out of
// contiguous chunks; chunks grow geometrically up to maxChunk elements.
// An Arena must not be used from several goroutines at once.
type Arena struct {
	slabs   map[reflect.Type]any
	objects int
	resets  int
}

type slab[T any] struct {
	chunk []T
	next  int
}

func NewArena() *Arena {
	return &Arena{slabs: make(map[reflect.Type]any)}
}

// New returns zeroed storage for one T owned by a.
// The pointer stays valid until a.Reset.
func New[T any](a *Arena) *T {
	key := reflect.TypeFor[T]()
	s, _ := a.slabs[key].(*slab[T])
	if s == nil {
		s = &slab[T]{}
		a.slabs[key] = s
	}
	if s.next == len(s.chunk) {
		size := min(max(2*len(s.chunk), minChunk), maxChunk)
		s.chunk = make([]T, size)
		s.next = 0
	}
	p := &s.chunk[s.next]
	s.next++
	a.objects++
	return p
}

// Len reports how many objects were allocated since the last Reset.
func (a *Arena) Len() int { return a.objects }

// Reset drops every object at once. Pointers obtained before Reset must not
// be used afterwards.
func (a *Arena) Reset() {
	clear(a.slabs)
	a.objects = 0
	a.resets++
}

// Generation counts resets; handy for asserting that a tree was built in the
// current arena epoch.
func (a *Arena) Generation() int { return a.resets }
