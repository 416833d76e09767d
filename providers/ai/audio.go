package ai

// SpeechRequest asks a SpeechProvider to read Text aloud.
type SpeechRequest struct {
	Model        string  `json:"model,omitempty"`
	Text         string  `json:"text"`
	Voice        string  `json:"voice,omitempty"`
	Language     string  `json:"language,omitempty"`
	OutputFormat string  `json:"output_format,omitempty"` // e.g. "wav", "mp3"
	Speed        float64 `json:"speed,omitempty"`         // 0 leaves the provider default
	Instructions string  `json:"instructions,omitempty"`

	ProviderOptions map[string]any    `json:"provider_options,omitempty"`
	Headers         map[string]string `json:"-"`
}

// SpeechResponse carries the synthesized audio.
type SpeechResponse struct {
	Audio     []byte           `json:"-"`
	MediaType string           `json:"media_type"`
	Warnings  []CallWarning    `json:"warnings,omitempty"`
	Metadata  ResponseMetadata `json:"metadata"`
}

// TranscriptionRequest asks a TranscriptionProvider to transcribe Audio.
type TranscriptionRequest struct {
	Model     string `json:"model,omitempty"`
	Audio     []byte `json:"-"`
	MediaType string `json:"media_type,omitempty"` // e.g. "audio/wav"
	Filename  string `json:"filename,omitempty"`   // Derived from MediaType when empty

	ProviderOptions map[string]any    `json:"provider_options,omitempty"`
	Headers         map[string]string `json:"-"`
}

// TranscriptSegment is a timed slice of a transcript.
type TranscriptSegment struct {
	Text      string  `json:"text"`
	Start     float64 `json:"start"` // seconds
	End       float64 `json:"end"`   // seconds
	SpeakerID string  `json:"speaker_id,omitempty"`
}

// TranscriptionResponse carries the recognized text.
type TranscriptionResponse struct {
	Text              string              `json:"text"`
	Segments          []TranscriptSegment `json:"segments,omitempty"`
	Language          string              `json:"language,omitempty"`
	DurationInSeconds *float64            `json:"duration_in_seconds,omitempty"`
	Warnings          []CallWarning       `json:"warnings,omitempty"`
	Metadata          ResponseMetadata    `json:"metadata"`
}
