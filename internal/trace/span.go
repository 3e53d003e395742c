package trace

import (
	"sync/atomic"
	"time"
)

var spanCounter atomic.Uint64

// Span is an open interval of work. A nil *Span is valid and does nothing.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	depth    int
	scope    Scope
	name     string
	start    time.Time
	extra    map[string]string
}

// Begin opens a span under parent (nil for a root) and emits its begin event.
// Returns nil when t does not take events of this scope.
func Begin(t Tracer, scope Scope, name string, parent *Span) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return nil
	}
	s := &Span{
		tracer: t,
		id:     spanCounter.Add(1),
		scope:  scope,
		name:   name,
		start:  time.Now(),
	}
	if parent != nil {
		s.parentID = parent.id
		s.depth = parent.depth + 1
	}
	t.Emit(Event{
		Time:     s.start,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		Depth:    s.depth,
		Name:     name,
	})
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// WithExtra attaches a key/value pair that is reported with the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil {
		return nil
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// End emits the end event with the elapsed time in Extra["duration"].
func (s *Span) End(detail string) {
	if s == nil {
		return
	}
	now := time.Now()
	extra := s.extra
	if extra == nil {
		extra = make(map[string]string, 1)
	}
	extra["duration"] = now.Sub(s.start).String()
	s.tracer.Emit(Event{
		Time:     now,
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		Depth:    s.depth,
		Name:     s.name,
		Detail:   detail,
		Extra:    extra,
	})
}

// Point emits an instantaneous event inside s.
func (s *Span) Point(name, detail string) {
	if s == nil || !s.tracer.Level().ShouldEmit(ScopeNode) {
		return
	}
	s.tracer.Emit(Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    ScopeNode,
		SpanID:   s.id,
		ParentID: s.parentID,
		Depth:    s.depth + 1,
		Name:     name,
		Detail:   detail,
	})
}
