package sarvam

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/jsonschema"
	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/utils"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability/slogobs"
)

func userRequest(model, content string) ai.ChatRequest {
	return ai.ChatRequest{Model: model, Messages: []ai.Message{{Role: ai.RoleUser, Content: content}}}
}

func warningSettings(warnings []ai.CallWarning) []string {
	var settings []string
	for _, warning := range warnings {
		settings = append(settings, string(warning.Type)+":"+warning.Setting)
	}
	return settings
}

func TestGetArgs_GenerationConfig(t *testing.T) {
	request := userRequest("", "hi")
	request.GenerationConfig = &ai.GenerationConfig{
		MaxTokens:     256,
		Temperature:   utils.Ptr(3.5),
		TopP:          utils.Ptr(0.9),
		TopK:          utils.Ptr(40),
		Seed:          utils.Ptr(7),
		StopSequences: []string{"###"},
		N:             2,
	}
	request.ResponseFormat = &ai.ResponseFormat{Type: "json"}

	args, err := New().getArgs(request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := args.body
	if body.Model != DefaultChatModel {
		t.Errorf("Model: got %q", body.Model)
	}
	if body.Temperature == nil || *body.Temperature != 2 {
		t.Errorf("temperature should be clamped to 2, got %v", body.Temperature)
	}
	if body.MaxTokens == nil || *body.MaxTokens != 256 || body.N == nil || *body.N != 2 {
		t.Errorf("max_tokens/n: %+v", body)
	}
	if *body.TopP != 0.9 || *body.Seed != 7 || body.Stop[0] != "###" {
		t.Errorf("sampling settings not copied: %+v", body)
	}

	got := strings.Join(warningSettings(args.warnings), ",")
	want := "unsupported-setting:temperature,unsupported-setting:topK,other:,unsupported-setting:responseFormat"
	if got != want {
		t.Errorf("warnings = %s, want %s", got, want)
	}
}

func TestGetArgs_ReasoningEffort(t *testing.T) {
	request := userRequest(ModelSarvamM, "hi")
	request.ProviderOptions = map[string]any{"sarvam": ChatOptions{ReasoningEffort: "high", WikiGrounding: utils.Ptr(true)}}

	args, err := New().getArgs(request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.body.ReasoningEffort != "high" || args.body.WikiGrounding == nil || !*args.body.WikiGrounding {
		t.Errorf("provider options not applied: %+v", args.body)
	}

	request.ProviderOptions = map[string]any{"sarvam": map[string]any{"reasoning_effort": "extreme"}}
	_, err = New().getArgs(request)
	var invalid *ai.InvalidArgumentError
	if !errors.As(err, &invalid) || invalid.Argument != "reasoning_effort" {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}

	request.ProviderOptions = map[string]any{"sarvam": ChatOptions{ReasoningEffort: "low"}}
	provider := New().WithCapabilities(Capabilities{})
	args, err = provider.getArgs(request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.body.ReasoningEffort != "" || len(args.warnings) != 1 || args.warnings[0].Setting != "reasoningEffort" {
		t.Errorf("reasoning should be dropped with a warning: %+v %+v", args.body, args.warnings)
	}
}

func TestGetArgs_ToolModes(t *testing.T) {
	request := userRequest(ModelSarvam105B, "Weather in Pune?")
	request.SystemPrompt = "You are helpful."
	request.Tools = []ai.ToolDescription{weatherTool}
	request.ToolChoice = &ai.ToolChoice{Type: ai.ToolChoiceRequired}

	native, err := New().getArgs(request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if native.simulated || len(native.body.Tools) != 1 || native.body.ToolChoice != "required" {
		t.Errorf("native mode: %+v", native)
	}

	request.ProviderOptions = map[string]any{"sarvam": ChatOptions{SimulateToolCalling: true}}
	simulated, err := New().getArgs(request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !simulated.simulated || simulated.body.Tools != nil || simulated.body.ToolChoice != nil {
		t.Errorf("simulated mode must not send tools: %+v", simulated.body)
	}
	system := simulated.body.Messages[0]
	if system.Role != "system" || !strings.HasPrefix(system.Content, "You are helpful.\n\n") || !strings.Contains(system.Content, "You must call at least one tool.") {
		t.Errorf("tool prompt should extend the system message: %q", system.Content)
	}
	if len(simulated.body.Messages) != 2 {
		t.Errorf("no extra system message expected, got %d", len(simulated.body.Messages))
	}
}

func TestSendMessage_Success(t *testing.T) {
	provider := newTestProvider(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", request.URL.Path)
		}
		if got := request.Header.Get("api-subscription-key"); got != "test-key" {
			t.Errorf("api-subscription-key: got %q", got)
		}
		if request.Header.Get("Authorization") != "" {
			t.Error("Authorization header must not be sent")
		}
		if got := request.Header.Get("X-Trace"); got != "abc" {
			t.Errorf("request header missing, got %q", got)
		}

		body := decodeBody(t, request)
		if body["model"] != "sarvam-m" || body["stream"] != nil {
			t.Errorf("unexpected body %v", body)
		}

		writer.Header().Set("X-Request-Id", "req-42")
		writeJSON(writer, http.StatusOK, `{
			"id":"chatcmpl-1","object":"chat.completion","created":1700000000,"model":"sarvam-m",
			"choices":[{"index":0,"message":{"role":"assistant","content":"नमस्ते","reasoning_content":"greet back"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":5,"completion_tokens":3,"total_tokens":8,"completion_tokens_details":{"reasoning_tokens":2}}
		}`)
	})

	request := userRequest(ModelSarvamM, "Hello")
	request.Headers = map[string]string{"X-Trace": "abc"}
	response, err := provider.SendMessage(context.Background(), request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if response.Content != "नमस्ते" || response.Reasoning != "greet back" {
		t.Errorf("content/reasoning: %q / %q", response.Content, response.Reasoning)
	}
	if response.FinishReason != ai.FinishReasonStop {
		t.Errorf("FinishReason: got %q", response.FinishReason)
	}
	if response.Usage == nil || response.Usage.TotalTokens != 8 || response.Usage.ReasoningTokens != 2 {
		t.Errorf("Usage: got %+v", response.Usage)
	}
	if response.Id != "chatcmpl-1" || response.Created != 1700000000 || response.Metadata.RequestID != "req-42" {
		t.Errorf("metadata: %+v", response.Metadata)
	}
}

func TestSendMessage_NativeToolCalls(t *testing.T) {
	provider := newTestProvider(t, func(writer http.ResponseWriter, request *http.Request) {
		body := decodeBody(t, request)
		tools, _ := body["tools"].([]any)
		if len(tools) != 1 {
			t.Errorf("expected tools in body, got %v", body["tools"])
		}
		writeJSON(writer, http.StatusOK, `{
			"id":"c2","model":"sarvam-30b","created":1700000001,
			"choices":[{"index":0,"message":{"role":"assistant","content":null,"tool_calls":[
				{"id":"call_a","type":"function","function":{"name":"weather","arguments":"{\"city\":\"Pune\"}"}},
				{"type":"function","function":{"name":"weather","arguments":""}}
			]},"finish_reason":"tool_calls"}]
		}`)
	})

	request := userRequest(ModelSarvam30B, "Weather?")
	request.Tools = []ai.ToolDescription{weatherTool}
	response, err := provider.SendMessage(context.Background(), request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(response.ToolCalls) != 2 {
		t.Fatalf("expected 2 tool calls, got %d", len(response.ToolCalls))
	}
	if response.ToolCalls[0].ID != "call_a" || response.ToolCalls[0].Function.Arguments != `{"city":"Pune"}` {
		t.Errorf("first call: %+v", response.ToolCalls[0])
	}
	if response.ToolCalls[1].ID != "gen_1" || response.ToolCalls[1].Function.Arguments != "{}" {
		t.Errorf("missing id and arguments should be filled: %+v", response.ToolCalls[1])
	}
	if response.FinishReason != ai.FinishReasonToolCalls || provider.IsStopMessage(response) {
		t.Errorf("tool call response should not stop: %q", response.FinishReason)
	}
}

func TestSendMessage_SimulatedToolCalls(t *testing.T) {
	provider := newTestProvider(t, func(writer http.ResponseWriter, request *http.Request) {
		body := decodeBody(t, request)
		if body["tools"] != nil {
			t.Error("simulated mode must not send tools")
		}
		writeJSON(writer, http.StatusOK, `{"id":"c3","model":"sarvam-m","created":1700000002,"choices":[{"index":0,
			"message":{"role":"assistant","content":"{\"tool_calls\":[{\"name\":\"weather\",\"arguments\":{\"city\":\"Pune\"}}]}"},
			"finish_reason":"stop"}]}`)
	})

	request := userRequest(ModelSarvamM, "Weather?")
	request.Tools = []ai.ToolDescription{weatherTool}
	response, err := provider.SendMessage(context.Background(), request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(response.ToolCalls) != 1 || response.ToolCalls[0].ID != "gen_1" || response.ToolCalls[0].Function.Arguments != `{"city":"Pune"}` {
		t.Fatalf("tool calls: %+v", response.ToolCalls)
	}
	if response.Content != "" || response.FinishReason != ai.FinishReasonToolCalls {
		t.Errorf("content=%q finish=%q", response.Content, response.FinishReason)
	}
}

func TestSendMessage_NoChoices(t *testing.T) {
	provider := newTestProvider(t, func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusOK, `{"id":"c4","choices":[]}`)
	})

	_, err := provider.SendMessage(context.Background(), userRequest("", "hi"))
	var invalid *ai.InvalidResponseError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidResponseError, got %v", err)
	}
}

func TestSendMessage_APIErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	provider := newTestProvider(t, func(writer http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeJSON(writer, http.StatusBadRequest, `{"error":{"message":"messages must alternate","code":"invalid_request_error","request_id":"r-9"}}`)
	})

	_, err := provider.SendMessage(context.Background(), userRequest("", "hi"))
	var apiErr *ai.APICallError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APICallError, got %v", err)
	}
	if apiErr.StatusCode != 400 || apiErr.Message != "messages must alternate" || apiErr.RequestID != "r-9" {
		t.Errorf("unexpected error fields: %+v", apiErr)
	}
	if calls.Load() != 1 {
		t.Errorf("400 must not be retried, got %d calls", calls.Load())
	}
}

func TestSendMessage_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	provider := newTestProvider(t, func(writer http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			writeJSON(writer, http.StatusServiceUnavailable, `{"message":"overloaded"}`)
			return
		}
		writeJSON(writer, http.StatusOK, `{"id":"c5","choices":[{"index":0,"message":{"content":"ok"},"finish_reason":"stop"}]}`)
	})

	observer := slogobs.New(slogobs.WithOutput(&strings.Builder{}))
	provider.WithObserver(observer)

	response, err := provider.SendMessage(context.Background(), userRequest("", "hi"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Content != "ok" || calls.Load() != 3 {
		t.Errorf("content=%q calls=%d", response.Content, calls.Load())
	}
	if response.Model != DefaultChatModel {
		t.Errorf("model should fall back to the requested one, got %q", response.Model)
	}
	if got := observer.CounterValue("sarvam.request.count"); got != 1 {
		t.Errorf("request counter: got %d", got)
	}
	if got := observer.CounterValue("sarvam.request.errors"); got != 0 {
		t.Errorf("error counter: got %d", got)
	}
}

func TestSendMessage_ImagePartFailsBeforeRequest(t *testing.T) {
	provider := newTestProvider(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	})
	request := ai.ChatRequest{Messages: []ai.Message{{Role: ai.RoleUser, ContentParts: []ai.ContentPart{ai.NewImagePart("image/png", "AA==")}}}}

	_, err := provider.SendMessage(context.Background(), request)
	var unsupported *ai.UnsupportedFunctionalityError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFunctionalityError, got %v", err)
	}
}

func TestSendMessage_ToolSchemaFromStruct(t *testing.T) {
	type lookupArgs struct {
		Query string `json:"query" jsonschema:"description=Search terms"`
		Limit int    `json:"limit,omitempty"`
	}
	schema, err := jsonschema.GenerateJSONSchema[lookupArgs]()
	if err != nil {
		t.Fatalf("GenerateJSONSchema: %v", err)
	}

	provider := newTestProvider(t, func(writer http.ResponseWriter, request *http.Request) {
		body := decodeBody(t, request)
		tool := body["tools"].([]any)[0].(map[string]any)
		parameters := tool["function"].(map[string]any)["parameters"].(map[string]any)
		if parameters["type"] != "object" || parameters["required"].([]any)[0] != "query" {
			t.Errorf("parameters: %v", parameters)
		}
		writeJSON(writer, http.StatusOK, `{"id":"c6","choices":[{"index":0,"message":{"content":"done"},"finish_reason":"stop"}]}`)
	})

	request := userRequest(ModelSarvam105B, "search")
	request.Tools = []ai.ToolDescription{{Name: "lookup", Parameters: schema}}
	if _, err := provider.SendMessage(context.Background(), request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
