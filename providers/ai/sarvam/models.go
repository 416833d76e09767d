package sarvam

import (
	"encoding/json"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/jsonschema"
)

/*
	CHAT COMPLETIONS - INPUT
*/

// chatCompletionRequest is the /v1/chat/completions body.
type chatCompletionRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      *float64      `json:"temperature,omitempty"`
	TopP             *float64      `json:"top_p,omitempty"`
	MaxTokens        *int          `json:"max_tokens,omitempty"`
	Stop             []string      `json:"stop,omitempty"`
	Seed             *int          `json:"seed,omitempty"`
	FrequencyPenalty *float64      `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64      `json:"presence_penalty,omitempty"`
	N                *int          `json:"n,omitempty"`

	ReasoningEffort string `json:"reasoning_effort,omitempty"` // low, medium, high
	WikiGrounding   *bool  `json:"wiki_grounding,omitempty"`

	Tools      []chatTool `json:"tools,omitempty"`
	ToolChoice any        `json:"tool_choice,omitempty"` // "auto", "none", "required" or chatNamedToolChoice

	Stream bool `json:"stream,omitempty"`
}

type chatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`   // role=assistant
	ToolCallID string         `json:"tool_call_id,omitempty"` // role=tool
}

type chatTool struct {
	Type     string       `json:"type"` // "function"
	Function chatFunction `json:"function"`
}

type chatFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

type chatNamedToolChoice struct {
	Type     string `json:"type"` // "function"
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

type chatToolCall struct {
	ID       string               `json:"id"`
	Type     string               `json:"type"`
	Function chatToolCallFunction `json:"function"`
}

type chatToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON document as a string
}

/*
	CHAT COMPLETIONS - OUTPUT
*/

type chatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage,omitempty"`
}

type chatChoice struct {
	Index        int                 `json:"index"`
	Message      chatResponseMessage `json:"message"`
	FinishReason *string             `json:"finish_reason"`
}

type chatResponseMessage struct {
	Role             string         `json:"role"`
	Content          *string        `json:"content"`
	ReasoningContent *string        `json:"reasoning_content,omitempty"`
	ToolCalls        []chatToolCall `json:"tool_calls,omitempty"`
}

type chatUsage struct {
	PromptTokens            int `json:"prompt_tokens"`
	CompletionTokens        int `json:"completion_tokens"`
	TotalTokens             int `json:"total_tokens"`
	CompletionTokensDetails *struct {
		ReasoningTokens int `json:"reasoning_tokens,omitempty"`
	} `json:"completion_tokens_details,omitempty"`
}

/*
	CHAT COMPLETIONS - STREAMING

	Each SSE data frame is one chatCompletionStreamChunk; the stream ends with
	"data: [DONE]".
*/

type chatCompletionStreamChunk struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	// Choices is nil when the key is missing or null, which only a
	// usage-only or error frame may omit
	Choices *[]streamChoice `json:"choices"`
	Usage   *chatUsage      `json:"usage,omitempty"`

	// Set when the server aborts the stream after it started
	Error   *errorDetail `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
	Detail  any          `json:"detail,omitempty"`
}

type streamChoice struct {
	Index        int         `json:"index"`
	Delta        streamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason"`
}

// streamDelta fields are pointers so an absent field differs from "".
type streamDelta struct {
	Role             string               `json:"role,omitempty"`
	Content          *string              `json:"content,omitempty"`
	ReasoningContent *string              `json:"reasoning_content,omitempty"`
	ToolCalls        []streamToolCallPart `json:"tool_calls,omitempty"`
}

// streamToolCallPart is one fragment of a tool call. The first fragment for
// an index carries the id and function name; later ones carry argument text.
type streamToolCallPart struct {
	Index    *int   `json:"index"`
	ID       string `json:"id,omitempty"`
	Type     string `json:"type,omitempty"`
	Function *struct {
		Name      string `json:"name,omitempty"`
		Arguments string `json:"arguments,omitempty"`
	} `json:"function,omitempty"`
}

/*
	TEXT TO SPEECH
*/

type textToSpeechRequest struct {
	Text                string   `json:"text"`
	TargetLanguageCode  string   `json:"target_language_code"`
	Speaker             string   `json:"speaker,omitempty"`
	Pitch               *float64 `json:"pitch,omitempty"`
	Pace                *float64 `json:"pace,omitempty"`
	Loudness            *float64 `json:"loudness,omitempty"`
	SpeechSampleRate    int      `json:"speech_sample_rate,omitempty"`
	EnablePreprocessing *bool    `json:"enable_preprocessing,omitempty"`
	Model               string   `json:"model"`
	OutputAudioCodec    string   `json:"output_audio_codec,omitempty"`
}

type textToSpeechResponse struct {
	RequestID string   `json:"request_id"`
	Audios    []string `json:"audios"` // base64
}

/*
	SPEECH TO TEXT (multipart requests, JSON responses)
*/

type speechToTextResponse struct {
	RequestID          string              `json:"request_id"`
	Transcript         string              `json:"transcript"`
	Timestamps         *wordTimestamps     `json:"timestamps,omitempty"`
	DiarizedTranscript *diarizedTranscript `json:"diarized_transcript,omitempty"`
	LanguageCode       *string             `json:"language_code,omitempty"`
}

type wordTimestamps struct {
	Words            []string  `json:"words"`
	StartTimeSeconds []float64 `json:"start_time_seconds"`
	EndTimeSeconds   []float64 `json:"end_time_seconds"`
}

type diarizedTranscript struct {
	Entries []diarizedEntry `json:"entries"`
}

type diarizedEntry struct {
	Transcript       string  `json:"transcript"`
	StartTimeSeconds float64 `json:"start_time_seconds"`
	EndTimeSeconds   float64 `json:"end_time_seconds"`
	SpeakerID        string  `json:"speaker_id"`
}

type speechToTextTranslateResponse struct {
	RequestID          string              `json:"request_id"`
	Transcript         string              `json:"transcript"`
	LanguageCode       *string             `json:"language_code,omitempty"`
	DiarizedTranscript *diarizedTranscript `json:"diarized_transcript,omitempty"`
}

/*
	TEXT SERVICES
*/

type translateRequest struct {
	Input               string `json:"input"`
	SourceLanguageCode  string `json:"source_language_code"`
	TargetLanguageCode  string `json:"target_language_code"`
	SpeakerGender       string `json:"speaker_gender,omitempty"`
	Mode                string `json:"mode,omitempty"`
	Model               string `json:"model,omitempty"`
	EnablePreprocessing bool   `json:"enable_preprocessing,omitempty"`
	OutputScript        string `json:"output_script,omitempty"`
	NumeralsFormat      string `json:"numerals_format,omitempty"`
}

type translateResponse struct {
	RequestID          string `json:"request_id"`
	TranslatedText     string `json:"translated_text"`
	SourceLanguageCode string `json:"source_language_code"`
}

type transliterateRequest struct {
	Input                      string `json:"input"`
	SourceLanguageCode         string `json:"source_language_code"`
	TargetLanguageCode         string `json:"target_language_code"`
	NumeralsFormat             string `json:"numerals_format,omitempty"`
	SpokenFormNumeralsLanguage string `json:"spoken_form_numerals_language,omitempty"`
	SpokenForm                 bool   `json:"spoken_form,omitempty"`
}

type transliterateResponse struct {
	RequestID          string `json:"request_id"`
	TransliteratedText string `json:"transliterated_text"`
	SourceLanguageCode string `json:"source_language_code"`
}

type languageIdentificationRequest struct {
	Input string `json:"input"`
}

type languageIdentificationResponse struct {
	RequestID    string  `json:"request_id"`
	LanguageCode *string `json:"language_code"`
	ScriptCode   *string `json:"script_code"`
}

/*
	ERRORS
*/

// errorEnvelope covers {"error":{...}}, {"message":"..."} and FastAPI's
// {"detail": ...} shapes.
type errorEnvelope struct {
	Error   *errorDetail `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
	Detail  any          `json:"detail,omitempty"`
}

type errorDetail struct {
	Message   string `json:"message"`
	Code      any    `json:"code,omitempty"` // string or number
	RequestID string `json:"request_id,omitempty"`
}

// UnmarshalJSON also accepts a bare string, as in {"error":"boom"}.
func (detail *errorDetail) UnmarshalJSON(data []byte) error {
	var message string
	if err := json.Unmarshal(data, &message); err == nil {
		*detail = errorDetail{Message: message}
		return nil
	}
	type object errorDetail
	return json.Unmarshal(data, (*object)(detail))
}
