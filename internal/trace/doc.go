// Package trace is the structured event log of the idlc pipeline.
//
// Tracers are attached to a context and picked up by every stage that takes
// one:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "resolve", 0)
//	defer span.End("")
//
// # Levels
//
//   - LevelOff: nothing is emitted
//   - LevelError: failures only
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-include events
//   - LevelDebug: everything, including one event per definition
//
// # Scopes
//
//   - ScopeDriver: CLI and driver operations
//   - ScopePass: one resolution pass over a document
//   - ScopeInclude: resolution of an included document
//   - ScopeDefinition: a single definition being resolved
package trace
