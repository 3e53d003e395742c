package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeItem, false},
		{LevelDetail, ScopeItem, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
		{LevelError, ScopeItem, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, l := range []Level{LevelOff, LevelError, LevelPhase, LevelDetail, LevelDebug} {
		got, err := ParseLevel(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l.String(), got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("expected error for unknown level")
	}
	if _, err := ParseMode("tape"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestStartNestsSpans(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), ring)

	phase, ctx := Start(ctx, ScopePhase, "generate")
	item, _ := Start(ctx, ScopeItem, "datatype calc.exp")
	node, _ := Start(ctx, ScopeNode, "ctor A")
	if node != nil {
		t.Fatalf("node span should be filtered at detail level")
	}
	item.End("")
	phase.End("ok")

	evs := ring.Snapshot()
	if len(evs) != 4 {
		t.Fatalf("got %d events, want 4", len(evs))
	}
	if evs[1].ParentID != phase.ID() || evs[1].Depth != 1 {
		t.Errorf("item span not nested: %+v", evs[1])
	}
	if evs[3].Kind != KindSpanEnd || evs[3].Detail != "ok" || evs[3].Extra["duration"] == "" {
		t.Errorf("unexpected end event: %+v", evs[3])
	}
	for i, ev := range evs {
		if ev.Seq != uint64(i+1) {
			t.Errorf("event %d has seq %d", i, ev.Seq)
		}
	}
}

func TestRingWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for i := 0; i < 5; i++ {
		ring.Emit(Event{Kind: KindPoint, Name: string(rune('a' + i))})
	}
	evs := ring.Snapshot()
	var names []string
	for _, ev := range evs {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ""); got != "cde" {
		t.Fatalf("snapshot = %q, want cde", got)
	}
}

func TestStreamFormats(t *testing.T) {
	var text, nd bytes.Buffer
	st := NewStreamTracer(&text, LevelPhase, FormatText)
	js := NewStreamTracer(&nd, LevelPhase, FormatNDJSON)
	m := NewMultiTracer(LevelPhase, st, js)

	s := Begin(m, ScopePhase, "parse", nil)
	s.End("")
	if err := m.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(text.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "begin  phase parse") {
		t.Fatalf("text output:\n%s", text.String())
	}
	if !strings.Contains(lines[1], "duration=") {
		t.Errorf("end line lacks duration: %q", lines[1])
	}

	for _, line := range strings.Split(strings.TrimSpace(nd.String()), "\n") {
		var ev eventJSON
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad ndjson %q: %v", line, err)
		}
		if ev.Scope != "phase" || ev.Name != "parse" {
			t.Errorf("unexpected event %+v", ev)
		}
	}
}

func TestFormatLineIndent(t *testing.T) {
	start := time.Unix(0, 0)
	ev := Event{Time: start.Add(1500 * time.Microsecond), Kind: KindPoint, Scope: ScopeNode, Depth: 2, Name: "clause", Detail: "L13#1"}
	got := formatLine(ev, start)
	want := "[   1.500ms]     point  node clause: L13#1\n"
	if got != want {
		t.Errorf("formatLine = %q, want %q", got, want)
	}
}

func TestNopAndNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	if s := Begin(tr, ScopeDriver, "gen", nil); s != nil {
		t.Errorf("nop tracer produced a span")
	}
	var s *Span
	s.End("")
	s.Point("x", "")
}
