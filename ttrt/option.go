package ttrt

// Option holds a value or nothing. Used for optional symbols.
type Option[T any] struct {
	v  T
	ok bool
}

func Some[T any](v T) Option[T] { return Option[T]{v: v, ok: true} }

func None[T any]() Option[T] { return Option[T]{} }

func (o Option[T]) IsSome() bool { return o.ok }

// Get returns the held value; it panics on None.
func (o Option[T]) Get() T {
	if !o.ok {
		panic("ttrt: Get on empty Option")
	}
	return o.v
}

func (o Option[T]) GetOr(def T) T {
	if !o.ok {
		return def
	}
	return o.v
}

// Ref is a nullable reference to an arena-owned node.
type Ref[T any] struct {
	p *T
}

// SomeRef wraps p; a nil p yields the empty Ref.
func SomeRef[T any](p *T) Ref[T] { return Ref[T]{p: p} }

func NoneRef[T any]() Ref[T] { return Ref[T]{} }

func (r Ref[T]) IsSome() bool { return r.p != nil }

// Get returns the referenced node; it panics on an empty Ref.
func (r Ref[T]) Get() *T {
	if r.p == nil {
		panic("ttrt: Get on empty Ref")
	}
	return r.p
}
