package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Errorf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cross-file Cover must keep receiver, got %v", got)
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 0, Start: 0, End: 10}
	if !outer.Contains(Span{File: 0, Start: 2, End: 10}) {
		t.Error("expected containment")
	}
	if outer.Contains(Span{File: 0, Start: 2, End: 11}) {
		t.Error("unexpected containment")
	}
	if !(Span{Start: 3, End: 3}).Empty() || outer.Len() != 10 {
		t.Error("Empty/Len mismatch")
	}
}
