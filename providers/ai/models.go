package ai

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/jsonschema"
)

/*
	##### PROVIDER INPUT #####
*/

// ChatRequest represents a request to send a chat message
type ChatRequest struct {
	Model            string            `json:"model,omitempty"`             // Model name or identifier
	SystemPrompt     string            `json:"system_prompt,omitempty"`     // Optional system prompt, sent before Messages
	Messages         []Message         `json:"messages"`                    // Conversation turns in order
	Tools            []ToolDescription `json:"tools,omitempty"`             // Tool definitions if any
	ToolChoice       *ToolChoice       `json:"tool_choice,omitempty"`       // Nil means "auto" when tools are present
	ResponseFormat   *ResponseFormat   `json:"response_format,omitempty"`   // Optional response format
	GenerationConfig *GenerationConfig `json:"generation_config,omitempty"` // Optional sampling configuration

	// ProviderOptions carries provider-specific settings keyed by provider name
	// (e.g. "sarvam"). Values are either the provider's typed options struct or
	// a map that can be decoded into it.
	ProviderOptions map[string]any `json:"provider_options,omitempty"`

	// Headers are sent with this request only and override provider defaults.
	Headers map[string]string `json:"-"`
}

// ToolType distinguishes user-defined functions from provider-executed tools.
type ToolType string

const (
	ToolTypeFunction ToolType = "function" // User-defined function, the default
	ToolTypeProvider ToolType = "provider" // Provider-defined tool executed server side
)

type ToolDescription struct {
	Type        ToolType           `json:"type,omitempty"` // Empty means ToolTypeFunction
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// ToolChoiceType is the tool-choice directive sent with a request.
type ToolChoiceType string

const (
	ToolChoiceAuto     ToolChoiceType = "auto"     // Model decides
	ToolChoiceNone     ToolChoiceType = "none"     // Never call tools
	ToolChoiceRequired ToolChoiceType = "required" // Must call at least one tool
	ToolChoiceTool     ToolChoiceType = "tool"     // Must call ToolName
)

// ToolChoice selects how the model may use the declared tools.
type ToolChoice struct {
	Type     ToolChoiceType `json:"type"`
	ToolName string         `json:"tool_name,omitempty"` // Only for ToolChoiceTool
}

// Message represents a single message in a conversation
type Message struct {
	// Core fields (always present)
	Role    MessageRole `json:"role"`
	Content string      `json:"content,omitempty"`

	// ContentParts carries multimodal input. When set it takes precedence over Content.
	ContentParts []ContentPart `json:"content_parts,omitempty"`

	// Tool calling fields
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // For role=assistant requesting tools
	ToolCallID string     `json:"tool_call_id,omitempty"` // For role=tool, links to the tool call being responded to
	Name       string     `json:"name,omitempty"`         // For role=tool, name of the tool that generated this response

	Reasoning string `json:"reasoning,omitempty"` // Chain-of-thought produced by an earlier assistant turn
}

// ContentType identifies the kind of payload carried by a ContentPart.
type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
)

// ContentPart is a single piece of multimodal message content.
type ContentPart struct {
	Type  ContentType `json:"type"`
	Text  string      `json:"text,omitempty"`
	Image *ImageData  `json:"image,omitempty"`
}

// ImageData references an image either inline (base64) or by URI.
type ImageData struct {
	MimeType string `json:"mime_type,omitempty"`
	Data     string `json:"data,omitempty"` // base64, no data: prefix
	URI      string `json:"uri,omitempty"`
}

// NewTextPart returns a text ContentPart.
func NewTextPart(text string) ContentPart {
	return ContentPart{Type: ContentTypeText, Text: text}
}

// NewImagePart returns an image ContentPart with inline base64 data.
func NewImagePart(mimeType, base64Data string) ContentPart {
	return ContentPart{Type: ContentTypeImage, Image: &ImageData{MimeType: mimeType, Data: base64Data}}
}

type GenerationConfig struct {
	MaxTokens        int      `json:"max_tokens,omitempty"`        // Optional max tokens for the response
	Temperature      *float64 `json:"temperature,omitempty"`       // Sampling temperature. Nil leaves the provider default.
	TopP             *float64 `json:"top_p,omitempty"`             // Nucleus sampling [0..1]
	TopK             *int     `json:"top_k,omitempty"`             // Top-k sampling, not supported by every provider
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"` // Penalty [-2..2] for frequent tokens
	PresencePenalty  *float64 `json:"presence_penalty,omitempty"`  // Penalty [-2..2] for tokens already present
	Seed             *int     `json:"seed,omitempty"`              // Deterministic sampling seed
	StopSequences    []string `json:"stop_sequences,omitempty"`    // Generation stops at any of these
	N                int      `json:"n,omitempty"`                 // Number of choices; only the first is returned
}

type ResponseFormat struct {
	OutputSchema *jsonschema.Schema `json:"output_schema,omitempty"` // Optional schema for structured response. Implementation may vary by provider.
	Type         string             `json:"type,omitempty"`          // "text" or "json"
}

/*
	##### PROVIDER OUTPUT #####
*/

type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
	ReasoningTokens  int `json:"reasoning_tokens,omitempty"`
}

// ResponseMetadata describes where a result came from.
type ResponseMetadata struct {
	ID        string      `json:"id,omitempty"`
	ModelID   string      `json:"model_id,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Headers   http.Header `json:"-"`
}

// ChatResponse represents the response from a chat completion
type ChatResponse struct {
	Id           string       `json:"id"`
	Model        string       `json:"model"`
	Created      int64        `json:"created"`
	Content      string       `json:"content"`
	Reasoning    string       `json:"reasoning,omitempty"`
	ToolCalls    []ToolCall   `json:"tool_calls,omitempty"`
	FinishReason FinishReason `json:"finish_reason,omitempty"`
	Usage        *Usage       `json:"usage,omitempty"`

	Warnings []CallWarning   `json:"warnings,omitempty"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ToolCall represents a function/tool call request from the LLM
type ToolCall struct {
	ID       string           `json:"id,omitempty"` // Unique identifier for this tool call
	Type     string           `json:"type"`         // "function"
	Function ToolCallFunction `json:"function"`
}

type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string
}

// ToolResult represents a standardized tool execution result.
type ToolResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ToJSON converts the ToolResult to a JSON string.
func (tr ToolResult) ToJSON() (string, error) {
	bytes, err := json.Marshal(tr)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

/*
	##### ENUMS #####
*/

// MessageRole represents the role of a message; compatible with string
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Middle llm response
	RoleTool      MessageRole = "tool"      // Tool/function output
)

// FinishReason is the normalized reason a generation stopped.
type FinishReason string

const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonContentFilter FinishReason = "content-filter"
	FinishReasonToolCalls     FinishReason = "tool-calls"
	FinishReasonError         FinishReason = "error"
	FinishReasonOther         FinishReason = "other"
	FinishReasonUnknown       FinishReason = "unknown"
)

// WarningType classifies a CallWarning.
type WarningType string

const (
	WarningUnsupportedSetting WarningType = "unsupported-setting"
	WarningUnsupportedTool    WarningType = "unsupported-tool"
	WarningOther              WarningType = "other"
)

// CallWarning reports a request option the provider ignored or adjusted.
// The call still succeeds.
type CallWarning struct {
	Type    WarningType `json:"type"`
	Setting string      `json:"setting,omitempty"` // unsupported-setting
	Tool    string      `json:"tool,omitempty"`    // unsupported-tool
	Details string      `json:"details,omitempty"`
	Message string      `json:"message,omitempty"` // other
}
