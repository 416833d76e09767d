// Package slogobs provides an observability.Provider backed by log/slog.
// Spans, span events and metric updates are written as debug records; the
// provider's own log calls keep their level. [New] reads SARVAM_LOG_FORMAT and
// SARVAM_LOG_LEVEL unless [WithFormat], [WithLevel], [WithOutput] or
// [WithLogger] say otherwise.
package slogobs
