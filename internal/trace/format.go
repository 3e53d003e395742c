package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

type Format uint8

const (
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatText:
		return "text"
	case FormatNDJSON:
		return "ndjson"
	}
	return "unknown"
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

type eventJSON struct {
	Seq      uint64            `json:"seq"`
	Offset   int64             `json:"offset_us"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span"`
	ParentID uint64            `json:"parent,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// WriteEvent writes one event; offsets are relative to start.
func WriteEvent(w io.Writer, ev Event, format Format, start time.Time) error {
	if format == FormatNDJSON {
		data, err := json.Marshal(eventJSON{
			Seq:      ev.Seq,
			Offset:   ev.Time.Sub(start).Microseconds(),
			Kind:     ev.Kind.String(),
			Scope:    ev.Scope.String(),
			SpanID:   ev.SpanID,
			ParentID: ev.ParentID,
			Name:     ev.Name,
			Detail:   ev.Detail,
			Extra:    ev.Extra,
		})
		if err != nil {
			return err
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	}
	_, err := io.WriteString(w, formatLine(ev, start))
	return err
}

// formatLine renders ev as one indented line:
//
//	[  0.412ms]   end    phase parse (duration=0.3ms)
func formatLine(ev Event, start time.Time) string {
	var sb strings.Builder
	ms := float64(ev.Time.Sub(start).Microseconds()) / 1000
	fmt.Fprintf(&sb, "[%8.3fms] ", ms)
	sb.WriteString(strings.Repeat("  ", ev.Depth))
	fmt.Fprintf(&sb, "%-6s %s %s", ev.Kind, ev.Scope, ev.Name)
	if ev.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(ev.Detail)
	}
	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(ev.Extra[k])
		}
		sb.WriteByte(')')
	}
	sb.WriteByte('\n')
	return sb.String()
}
