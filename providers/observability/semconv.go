package observability

// Semantic conventions for observability attributes.

// --- Model call attributes ---

const (
	// AttrLLMProvider is the provider name, always "sarvam" in this module
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier (e.g. "sarvam-m", "bulbul:v2")
	AttrLLMModel = "llm.model"

	// AttrLLMEndpoint is the API endpoint URL
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMRequestID is the request identifier returned by the API
	AttrLLMRequestID = "llm.request.id"

	// AttrLLMResponseID is the completion identifier returned by the API
	AttrLLMResponseID = "llm.response.id"

	// AttrLLMFinishReason is the unified finish reason
	AttrLLMFinishReason = "llm.finish_reason"

	// AttrLLMTemperature is the sampling temperature used
	AttrLLMTemperature = "llm.temperature"

	// AttrLLMMaxTokens is the maximum tokens allowed
	AttrLLMMaxTokens = "llm.max_tokens" // #nosec G101 -- Not a credential, token refers to LLM tokens

	// AttrLLMStream is true for streamed chat calls
	AttrLLMStream = "llm.stream"

	// AttrLLMWarnings lists the settings reported back as call warnings
	AttrLLMWarnings = "llm.warnings"

	// AttrLLMToolMode is "native" or "simulated"
	AttrLLMToolMode = "llm.tool_mode"
)

// --- Token usage attributes ---

const (
	// AttrLLMTokensPrompt is the number of prompt tokens
	AttrLLMTokensPrompt = "llm.tokens.prompt" // #nosec G101 -- Not a credential, token refers to LLM tokens

	// AttrLLMTokensCompletion is the number of completion tokens
	AttrLLMTokensCompletion = "llm.tokens.completion" // #nosec G101 -- Not a credential, token refers to LLM tokens

	// AttrLLMTokensTotal is the total number of tokens
	AttrLLMTokensTotal = "llm.tokens.total" // #nosec G101 -- Not a credential, token refers to LLM tokens
)

// --- Speech and text service attributes ---

const (
	// AttrSpeechVoice is the TTS speaker
	AttrSpeechVoice = "speech.voice"

	// AttrSpeechLanguage is the BCP-47 language code sent or detected
	AttrSpeechLanguage = "speech.language"

	// AttrSpeechAudioBytes is the size of uploaded or returned audio
	AttrSpeechAudioBytes = "speech.audio.bytes"

	// AttrTextInputLength is the character count of text inputs
	AttrTextInputLength = "text.input.length"

	// AttrTextSourceLanguage is the source language of a translation
	AttrTextSourceLanguage = "text.language.source"

	// AttrTextTargetLanguage is the target language of a translation
	AttrTextTargetLanguage = "text.language.target"
)

// --- Request attributes ---

const (
	// AttrRequestMessagesCount is the number of messages in the request
	AttrRequestMessagesCount = "request.messages_count"

	// AttrRequestToolsCount is the number of tools in the request
	AttrRequestToolsCount = "request.tools_count"

	// AttrRequestAttempt is the 1-based attempt number under retry
	AttrRequestAttempt = "request.attempt"
)

// --- HTTP attributes ---

const (
	// AttrHTTPMethod is the HTTP method (GET, POST, etc.)
	AttrHTTPMethod = "http.method"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body.size"

	// AttrHTTPResponseBodySize is the response body size in bytes
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- General attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrErrorType is the error type/class
	AttrErrorType = "error.type"

	// AttrDuration is the operation duration
	AttrDuration = "duration"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"
)

// --- Span names ---

const (
	SpanChat              = "sarvam.chat"
	SpanChatStream        = "sarvam.chat.stream"
	SpanSpeech            = "sarvam.speech"
	SpanTranscription     = "sarvam.transcription"
	SpanSpeechTranslation = "sarvam.speech_translation"
	SpanTranslate         = "sarvam.translate"
	SpanTransliterate     = "sarvam.transliterate"
	SpanIdentifyLanguage  = "sarvam.identify_language"
)

// --- Event names ---

const (
	// EventLLMRequestStart marks the start of a provider request
	EventLLMRequestStart = "llm.request.start"

	// EventLLMRequestEnd marks the end of a provider request
	EventLLMRequestEnd = "llm.request.end"

	// EventTokensReceived marks usage reported by the API
	EventTokensReceived = "llm.tokens.received" // #nosec G101 -- Not a credential, token refers to LLM tokens

	// EventRequestRetry marks a retried attempt
	EventRequestRetry = "request.retry"

	// EventStreamChunkError marks a chunk that failed to decode
	EventStreamChunkError = "stream.chunk.error"
)

// --- Metric names ---

const (
	// MetricRequestCount counts provider calls, labelled by span name
	MetricRequestCount = "sarvam.request.count"

	// MetricRequestDuration records call latency in milliseconds
	MetricRequestDuration = "sarvam.request.duration"

	// MetricRequestErrors counts failed provider calls
	MetricRequestErrors = "sarvam.request.errors"

	// MetricTokensTotal counts total tokens
	MetricTokensTotal = "sarvam.tokens.total"

	// MetricTokensPrompt counts prompt tokens
	MetricTokensPrompt = "sarvam.tokens.prompt"

	// MetricTokensCompletion counts completion tokens
	MetricTokensCompletion = "sarvam.tokens.completion"
)
