// Package observability defines the tracing, metrics and logging interfaces
// the Sarvam provider reports through, plus the attribute, span, event and
// metric names it uses.
//
// [Provider] composes [Tracer], [Metrics] and [Logger]. It is injected on the
// provider with WithObserver or carried in a [context.Context] via
// [ContextWithObserver]; the current [Span] travels with [ContextWithSpan] so
// the HTTP helpers can attach request events to it.
package observability
