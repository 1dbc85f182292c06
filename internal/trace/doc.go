// Package trace records what the candidc front end is doing while it runs.
//
// Events are grouped into scopes. The driver scope covers a whole command,
// the pass scope covers load, bind and check, the module scope covers a
// single .did file being read and parsed.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "check", 0)
//	defer sp.End("")
//
// Stream tracers write each event as it happens. Ring tracers keep the most
// recent events in memory so they can be dumped after a failure.
package trace
