// Package trace records driver and binder activity for hlslbind.
//
// Tracing is off unless requested on the command line:
//
//	hlslbind check --trace=- --trace-level=phase shader.hlsl
//
// A Tracer is stored in the context. Spans nest through the context too, so
// a pass started under a file span is parented to it without any ids being
// passed around:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, "shader.hlsl")
//	defer span.End()
//
// Levels gate scopes: LevelPhase shows driver and pass boundaries,
// LevelDetail adds per-file spans and LevelDebug adds binder node points.
// Stream writes events as they arrive, Ring keeps the newest events for a
// dump after a failed run, and ModeBoth does both.
package trace
