package sarvam

import (
	"encoding/json"
	"fmt"
)

// ChatOptions are Sarvam-specific chat settings passed as
// ChatRequest.ProviderOptions["sarvam"], either as ChatOptions, *ChatOptions
// or a map with the JSON field names.
type ChatOptions struct {
	// ReasoningEffort is "low", "medium" or "high"; empty disables thinking mode
	ReasoningEffort string `json:"reasoning_effort,omitempty"`
	// WikiGrounding lets the model ground answers in Wikipedia
	WikiGrounding *bool `json:"wiki_grounding,omitempty"`
	// SimulateToolCalling forces prompt-based tool calling even on models with native support
	SimulateToolCalling bool `json:"simulate_tool_calling,omitempty"`
}

// SpeechOptions are Sarvam-specific text-to-speech settings.
type SpeechOptions struct {
	Pitch               *float64 `json:"pitch,omitempty"`    // -0.75..0.75
	Loudness            *float64 `json:"loudness,omitempty"` // 0.3..3
	SampleRate          int      `json:"speech_sample_rate,omitempty"`
	EnablePreprocessing *bool    `json:"enable_preprocessing,omitempty"`
}

// TranscriptionOptions are Sarvam-specific speech-to-text and
// speech-translation settings.
type TranscriptionOptions struct {
	// LanguageCode of the audio; "unknown" lets the model detect it
	LanguageCode    string `json:"language_code,omitempty"`
	WithTimestamps  bool   `json:"with_timestamps,omitempty"`
	WithDiarization bool   `json:"with_diarization,omitempty"`
	NumSpeakers     int    `json:"num_speakers,omitempty"`
	// Prompt conditions speech translation; ignored by plain transcription
	Prompt string `json:"prompt,omitempty"`
}

var reasoningEfforts = map[string]bool{"low": true, "medium": true, "high": true}

// providerOptions decodes options[providerName] into T. A missing entry
// yields the zero value.
func providerOptions[T any](options map[string]any) (T, error) {
	var decoded T
	raw, ok := options[providerName]
	if !ok || raw == nil {
		return decoded, nil
	}

	switch value := raw.(type) {
	case T:
		return value, nil
	case *T:
		if value != nil {
			decoded = *value
		}
		return decoded, nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return decoded, fmt.Errorf("error encoding %s provider options: %w", providerName, err)
	}
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return decoded, fmt.Errorf("invalid %s provider options: %w", providerName, err)
	}
	return decoded, nil
}
