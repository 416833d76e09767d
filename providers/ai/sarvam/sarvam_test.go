package sarvam

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
)

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("SARVAM_API_KEY", "env-key")
	t.Setenv("SARVAM_API_BASE_URL", "https://proxy.example.test/")

	provider := New()
	if provider.apiKey != "env-key" {
		t.Errorf("apiKey: got %q", provider.apiKey)
	}
	if provider.baseURL != "https://proxy.example.test" {
		t.Errorf("baseURL should be trimmed, got %q", provider.baseURL)
	}
}

func TestNew_DefaultBaseURL(t *testing.T) {
	t.Setenv("SARVAM_API_BASE_URL", "")
	if got := New().baseURL; got != defaultBaseURL {
		t.Errorf("baseURL: got %q, want %q", got, defaultBaseURL)
	}
}

func TestGenerateToolCallID(t *testing.T) {
	first, second := generateToolCallID(), generateToolCallID()
	if first == second {
		t.Error("expected unique ids")
	}
	if len(first) != len("call_")+32 {
		t.Errorf("unexpected id shape %q", first)
	}
}

func TestHeaderOptions_Precedence(t *testing.T) {
	provider := New()
	provider.WithAPIKey("secret")
	provider.WithHeaders(map[string]string{
		"X-Team":               "search",
		"Api-Subscription-Key": "override-attempt",
	})

	headers := http.Header{}
	for _, option := range provider.headerOptions(map[string]string{"X-Team": "voice"}) {
		headers.Set(option.Key, option.Value)
	}

	if got := headers.Get(apiKeyHeader); got != "secret" {
		t.Errorf("provider headers must not replace the key, got %q", got)
	}
	if got := headers.Get("X-Team"); got != "voice" {
		t.Errorf("request header should win, got %q", got)
	}
}

func TestSendMessage_MissingAPIKey(t *testing.T) {
	called := false
	provider := newTestProvider(t, func(http.ResponseWriter, *http.Request) { called = true })
	provider.WithAPIKey("")

	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}}})
	if !errors.Is(err, ai.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if called {
		t.Error("no request should be sent without a key")
	}
}

func TestIsStopMessage(t *testing.T) {
	provider := New()
	tests := []struct {
		name     string
		response *ai.ChatResponse
		want     bool
	}{
		{"nil", nil, true},
		{"stop", &ai.ChatResponse{Content: "done", FinishReason: ai.FinishReasonStop}, true},
		{"tool calls", &ai.ChatResponse{ToolCalls: []ai.ToolCall{{ID: "1"}}, FinishReason: ai.FinishReasonToolCalls}, false},
		{"length", &ai.ChatResponse{Content: "trunc", FinishReason: ai.FinishReasonLength}, true},
		{"unknown with content", &ai.ChatResponse{Content: "x", FinishReason: ai.FinishReasonUnknown}, true},
		{"tool calls with stop reason", &ai.ChatResponse{ToolCalls: []ai.ToolCall{{ID: "1"}}, FinishReason: ai.FinishReasonStop}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := provider.IsStopMessage(tt.response); got != tt.want {
				t.Errorf("IsStopMessage() = %v, want %v", got, tt.want)
			}
		})
	}
}
