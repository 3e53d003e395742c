package diag

import (
	"testing"

	"tt/internal/source"
)

func TestBagLimitIsSticky(t *testing.T) {
	b := NewBag(1)
	r := BagReporter{Bag: b}
	r.Report(SynUnexpectedToken, SevWarning, source.Span{}, "first", nil)
	r.Report(DefDuplicateCtor, SevError, source.Span{}, "dropped", nil)

	if b.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", b.Len())
	}
	if b.Dropped() != 1 {
		t.Fatalf("expected 1 dropped, got %d", b.Dropped())
	}
	if !b.HasErrors() {
		t.Fatalf("dropped diagnostics must still count as errors")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	sp := func(s uint32) source.Span { return source.Span{Start: s, End: s + 1} }
	b.Add(NewError(PatUnknownCtor, sp(9), "b"))
	b.Add(NewError(PatUnknownCtor, sp(2), "a"))
	b.Add(New(SevWarning, PatReservedBinding, sp(2), "w"))
	b.Add(NewError(PatUnknownCtor, sp(2), "a"))

	b.Dedup()
	b.Sort()

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items after dedup, got %d", len(items))
	}
	if items[0].Message != "a" || items[1].Message != "w" || items[2].Message != "b" {
		t.Fatalf("unexpected order: %q %q %q", items[0].Message, items[1].Message, items[2].Message)
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(0)
	counter := &CountingReporter{Next: BagReporter{Bag: b}}
	r := NewDedupReporter(counter)
	for range 3 {
		ReportError(r, SynExpectType, source.Span{Start: 4, End: 5}, "expected type").Emit()
	}
	if b.Len() != 1 || counter.Errors != 1 {
		t.Fatalf("expected single forwarded diagnostic, got bag=%d count=%d", b.Len(), counter.Errors)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(0)
	rb := ReportErrorf(BagReporter{Bag: b}, DefUnknownIdentifier, source.Span{}, "identifier unknown: %s", "Foo").
		WithNote(source.Span{Start: 1}, "used here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", b.Len())
	}
	d := b.Items()[0]
	if d.Message != "identifier unknown: Foo" || len(d.Notes) != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}
