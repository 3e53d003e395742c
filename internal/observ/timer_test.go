package observ

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	cur := time.Unix(0, 0)
	return func() time.Time {
		now := cur
		cur = cur.Add(step)
		return now
	}
}

func TestTimerStages(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)

	end := tm.Begin("parse")
	end("3 datatypes")
	end("ignored")
	err := tm.Measure("write", func() error { return errors.New("disk full") })
	if err == nil {
		t.Fatalf("Measure swallowed the error")
	}
	tm.Count("datatypes", 2)
	tm.Count("datatypes", 1)
	tm.Count("sites", 4)

	r := tm.Report()
	if len(r.Stages) != 2 {
		t.Fatalf("got %d stages", len(r.Stages))
	}
	if r.Stages[0].DurationMS != 2 || r.Stages[0].Note != "3 datatypes" {
		t.Errorf("parse stage = %+v", r.Stages[0])
	}
	if r.Stages[1].Note != "disk full" {
		t.Errorf("write stage = %+v", r.Stages[1])
	}
	if r.TotalMS != 4 || r.Counters["datatypes"] != 3 {
		t.Errorf("report = %+v", r)
	}

	var buf bytes.Buffer
	if err := tm.WriteSummary(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"parse", "// disk full", "total", "counters: datatypes=3 sites=4"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary lacks %q:\n%s", want, out)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Begin("x")("")
	tm.Count("x", 1)
	if r := tm.Report(); len(r.Stages) != 0 {
		t.Errorf("nil timer reported stages")
	}
}
