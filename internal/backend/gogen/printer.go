package gogen

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"strconv"
)

// printer накапливает текст; отступы расставит go/format.
type printer struct {
	buf bytes.Buffer
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *printer) blank() { p.buf.WriteByte('\n') }

func (p *printer) header(opts *Options) {
	p.line("// Code generated by tt. DO NOT EDIT.")
	if opts.Source != "" {
		p.line("// source: %s", opts.Source)
	}
	p.blank()
	p.line("package %s", opts.Package)
	p.blank()
}

func (p *printer) imports(paths ...string) {
	var live []string
	for _, ip := range paths {
		if ip != "" {
			live = append(live, ip)
		}
	}
	slices.Sort(live)
	switch len(live) {
	case 0:
		return
	case 1:
		p.line("import %s", strconv.Quote(live[0]))
	default:
		p.line("import (")
		for _, ip := range live {
			p.line("%s", strconv.Quote(ip))
		}
		p.line(")")
	}
	p.blank()
}

func (p *printer) formatted() ([]byte, error) {
	out, err := format.Source(p.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gogen: generated code does not parse: %w", err)
	}
	return out, nil
}
