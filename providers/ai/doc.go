// Package ai defines the shared, provider-agnostic types and interfaces used
// by every model provider in this module. Each provider's conversion layer is
// responsible for mapping these types to its own wire format, keeping callers
// decoupled from vendor-specific details.
//
// The central interfaces are [Provider] for synchronous chat completions,
// [StreamProvider] for SSE-based streaming, and [SpeechProvider] /
// [TranscriptionProvider] for audio. Request data flows through [ChatRequest]
// and responses are returned as [ChatResponse]. For streaming, [ChatStream]
// yields [StreamEvent] values: start/delta/end triples per text, reasoning and
// tool-call channel, followed by a single finish event.
//
// Failures are reported with the typed errors in errors.go ([APICallError],
// [UnsupportedFunctionalityError], [InvalidResponseError]) so callers can use
// errors.As to branch on them.
package ai
