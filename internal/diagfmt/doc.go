// Package diagfmt renders diagnostics and token streams for humans and tools:
// a colored caret-underlined pretty form, JSON, and the one-line short form.
package diagfmt
