package ast

import (
	"errors"
	"fmt"
)

// ErrStackUnderflow means the grammar asked for more nodes than it pushed.
var ErrStackUnderflow = errors.New("builder stack underflow")

// InvariantError reports a grammar/builder desynchronisation. It is raised
// with panic and is never a user-facing diagnostic.
type InvariantError struct {
	Op  string
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("ast: %s: %v", e.Op, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

func invariant(op string, err error) {
	panic(&InvariantError{Op: op, Err: err})
}

func invariantf(op, format string, args ...any) {
	invariant(op, fmt.Errorf(format, args...))
}
