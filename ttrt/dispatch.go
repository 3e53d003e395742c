package ttrt

import (
	"fmt"
	"runtime"
)

// NoMatchError is raised (via panic) when no clause of a match site accepts
// the value.
type NoMatchError struct {
	File string
	Line int
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("ttrt: no clause matched at %s:%d", e.File, e.Line)
}

func NoMatch(file string, line int) error {
	return &NoMatchError{File: file, Line: line}
}

// UnknownSiteError means the line-keyed dispatcher was called from a line
// for which no matcher was generated; the matchers file is stale.
type UnknownSiteError struct {
	File string
	Line int
}

func (e *UnknownSiteError) Error() string {
	return fmt.Sprintf("ttrt: no matcher generated for %s:%d, regenerate matchers", e.File, e.Line)
}

// CallerLine returns the position skip frames above its caller.
// Generated dispatchers call CallerLine(1) to find their call site.
func CallerLine(skip int) (file string, line int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "?", 0
	}
	return file, line
}
