package gogen

import (
	"errors"
	"path"

	"tt/internal/diag"
)

const DefaultRuntimeImport = "tt/ttrt"

// ErrInvalidInput is returned when user errors were reported; no output is
// produced in that case.
var ErrInvalidInput = errors.New("gogen: input has errors")

type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// RuntimeImport is the import path of the runtime package.
	RuntimeImport string
	// DefsImport is set when matchers live outside the package that holds
	// the generated datatypes.
	DefsImport string
	// Source names the input in the file header and in no-match panics.
	Source   string
	Reporter diag.Reporter
}

func (o *Options) normalize() {
	if o.Package == "" {
		o.Package = "ast"
	}
	if o.RuntimeImport == "" {
		o.RuntimeImport = DefaultRuntimeImport
	}
}

func (o *Options) runtimeName() string { return path.Base(o.RuntimeImport) }

func (o *Options) defsName() string {
	if o.DefsImport == "" {
		return ""
	}
	return path.Base(o.DefsImport)
}
