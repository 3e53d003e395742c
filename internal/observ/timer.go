package observ

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// Stage is one timed step of a tt run (load, clean, parse, generate, write).
type Stage struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	done  bool
}

// Timer collects stage durations and a few counters for --timings.
type Timer struct {
	stages   []Stage
	counters map[string]int
	order    []string
	now      func() time.Time
}

func NewTimer() *Timer {
	return &Timer{stages: make([]Stage, 0, 6), counters: make(map[string]int), now: time.Now}
}

// Begin starts a stage and returns a function that closes it.
// Calling the returned function twice keeps the first duration.
func (t *Timer) Begin(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.stages = append(t.stages, Stage{Name: name, Start: t.now()})
	idx := len(t.stages) - 1
	return func(note string) {
		s := &t.stages[idx]
		if s.done {
			return
		}
		s.Dur = t.now().Sub(s.Start)
		s.Note = note
		s.done = true
	}
}

// Measure times fn as one stage; a failing fn gets its error as the note.
func (t *Timer) Measure(name string, fn func() error) error {
	end := t.Begin(name)
	err := fn()
	if err != nil {
		end(err.Error())
	} else {
		end("")
	}
	return err
}

// Count adds n to a named counter (datatypes, sites, tokens, bytes).
func (t *Timer) Count(name string, n int) {
	if t == nil {
		return
	}
	if _, ok := t.counters[name]; !ok {
		t.order = append(t.order, name)
	}
	t.counters[name] += n
}

type StageReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS  float64        `json:"total_ms"`
	Stages   []StageReport  `json:"stages"`
	Counters map[string]int `json:"counters,omitempty"`
}

// Report snapshots the timer; unfinished stages report zero.
func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	var total time.Duration
	for _, s := range t.stages {
		total += s.Dur
		r.Stages = append(r.Stages, StageReport{Name: s.Name, DurationMS: millis(s.Dur), Note: s.Note})
	}
	r.TotalMS = millis(total)
	if len(t.counters) > 0 {
		r.Counters = make(map[string]int, len(t.counters))
		for k, v := range t.counters {
			r.Counters[k] = v
		}
	}
	return r
}

// WriteSummary prints an aligned table of stages followed by counters.
func (t *Timer) WriteSummary(w io.Writer) error {
	r := t.Report()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "stage\tms\t")
	for _, s := range r.Stages {
		note := ""
		if s.Note != "" {
			note = "  // " + s.Note
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%s\n", s.Name, s.DurationMS, note)
	}
	fmt.Fprintf(tw, "total\t%.2f\t\n", r.TotalMS)
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(t.order) == 0 {
		return nil
	}
	parts := make([]string, 0, len(t.order))
	for _, name := range t.order {
		parts = append(parts, fmt.Sprintf("%s=%d", name, t.counters[name]))
	}
	_, err := fmt.Fprintf(w, "counters: %s\n", strings.Join(parts, " "))
	return err
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
