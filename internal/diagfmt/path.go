package diagfmt

import (
	"tt/internal/source"
)

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if int(id) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(id)
	switch mode {
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeAbsolute, PathModeBasename, PathModeAuto:
		return f.FormatPath(mode.String(), "")
	default:
		return f.Path
	}
}

// validSpan guards renderers against spans that do not belong to fs.
func validSpan(fs *source.FileSet, sp source.Span) bool {
	if int(sp.File) >= fs.Len() {
		return false
	}
	n := len(fs.Get(sp.File).Content)
	return sp.Start <= sp.End && int(sp.End) <= n
}
