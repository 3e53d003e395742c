// Package trace records what the tt pipeline is doing: which phase runs,
// which datatype or match site is being generated, how long it took.
//
// Tracing is off by default and costs a nil check then. Enable it with
//
//	tt gen --trace=- --trace-level=phase out/ast defs.tt
//
// A StreamTracer writes events as they happen (text or NDJSON), a
// RingTracer keeps the last events in memory so the CLI can dump them when
// the generator panics, and MultiTracer does both.
//
// Spans nest through the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopePhase, "parse")
//	defer span.End("")
package trace
