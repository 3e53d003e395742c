package types

import (
	"errors"
	"fmt"

	"tt/internal/diag"
	"tt/internal/source"
)

// Error is a user error found while resolving a type; the caller reports it.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func errorf(code diag.Code, sp source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

// Report forwards err to r when it is a resolver Error; other errors are
// reported as internal IO failures. Returns false when err is nil.
func Report(r diag.Reporter, err error) bool {
	if err == nil {
		return false
	}
	if r == nil {
		return true
	}
	var te *Error
	if errors.As(err, &te) {
		diag.ReportError(r, te.Code, te.Span, te.Msg).Emit()
		return true
	}
	diag.ReportError(r, diag.IOError, source.Span{}, err.Error()).Emit()
	return true
}
