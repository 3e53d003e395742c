package driver

import (
	"errors"
	"path/filepath"
	"strings"

	"tt/internal/backend/gogen"
	"tt/internal/observ"
	"tt/internal/parser"
	"tt/internal/project"
)

// DefinitionExt marks datatype definition files.
const DefinitionExt = ".tt"

// ErrDiagnostics is returned when the input had errors; they are in the bag.
var ErrDiagnostics = errors.New("input has errors")

// Mode picks the grammar; ModeAuto decides by file extension.
type Mode uint8

const (
	ModeAuto Mode = iota
	ModeDefinitions
	ModeMatchers
)

func (m Mode) String() string {
	switch m {
	case ModeDefinitions:
		return "definitions"
	case ModeMatchers:
		return "matchers"
	}
	return "auto"
}

// Resolve turns ModeAuto into a concrete parser mode for path.
func (m Mode) Resolve(path string) parser.Mode {
	switch m {
	case ModeDefinitions:
		return parser.ModeDefinitions
	case ModeMatchers:
		return parser.ModeMatchers
	}
	if strings.EqualFold(filepath.Ext(path), DefinitionExt) {
		return parser.ModeDefinitions
	}
	return parser.ModeMatchers
}

type Options struct {
	Mode           Mode
	MaxDiagnostics int

	Package       string
	RuntimeImport string
	DefsImport    string
	// Defs are definition files loaded before a matcher file.
	Defs          []string
	DefsSuffix    string
	MatcherSuffix string

	Timer *observ.Timer // nil disables timings
}

// OptionsFromConfig maps tt.toml onto driver options; CLI flags are applied
// on top by the caller.
func OptionsFromConfig(cfg project.Config) Options {
	return Options{
		MaxDiagnostics: cfg.MaxDiagnostics,
		Package:        cfg.Package,
		RuntimeImport:  cfg.Runtime,
		DefsImport:     cfg.DefsImport,
		Defs:           append([]string(nil), cfg.Defs...),
		DefsSuffix:     cfg.DefsSuffix,
		MatcherSuffix:  cfg.MatcherSuffix,
	}
}

// OutputPath is where Generate writes for the given prefix.
func (o *Options) OutputPath(prefix string, mode parser.Mode) string {
	suffix := o.DefsSuffix
	if suffix == "" {
		suffix = ".go"
	}
	if mode == parser.ModeMatchers {
		suffix = o.MatcherSuffix
		if suffix == "" {
			suffix = ".matchers.go"
		}
	}
	return prefix + suffix
}

func (o *Options) gogen() gogen.Options {
	return gogen.Options{
		Package:       o.Package,
		RuntimeImport: o.RuntimeImport,
		DefsImport:    o.DefsImport,
	}
}
