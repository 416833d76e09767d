package sarvam

import (
	"strings"
	"testing"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
)

func preparedWeatherTools(t *testing.T) []chatTool {
	t.Helper()
	prepared, err := prepareTools([]ai.ToolDescription{weatherTool}, nil)
	if err != nil {
		t.Fatalf("prepareTools: %v", err)
	}
	return prepared.Tools
}

func sequentialIDs() func() string {
	ids := []string{"sim_1", "sim_2", "sim_3"}
	return func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
}

func TestBuildSimulatedToolPrompt(t *testing.T) {
	tools := preparedWeatherTools(t)

	prompt, err := buildSimulatedToolPrompt(tools, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"- weather: Current weather for a city", `"required":["city"]`, `{"tool_calls":[`, "answer the user directly"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	forced, _ := buildSimulatedToolPrompt(tools, &ai.ToolChoice{Type: ai.ToolChoiceTool, ToolName: "weather"})
	if !strings.Contains(forced, `You must call the tool "weather".`) {
		t.Errorf("forced prompt: %s", forced)
	}

	none, _ := buildSimulatedToolPrompt(tools, &ai.ToolChoice{Type: ai.ToolChoiceNone})
	if none != "" {
		t.Errorf("tool choice none must not inject a prompt, got %q", none)
	}
}

func TestParseSimulatedToolCalls(t *testing.T) {
	tools := preparedWeatherTools(t)

	tests := []struct {
		name      string
		content   string
		wantOK    bool
		wantText  string
		wantCalls int
		wantArgs  string
	}{
		{
			name:      "plain object",
			content:   `{"tool_calls":[{"name":"weather","arguments":{"city":"Pune"}}]}`,
			wantOK:    true,
			wantCalls: 1,
			wantArgs:  `{"city":"Pune"}`,
		},
		{
			name:      "prose and fence",
			content:   "Let me check.\n```json\n{\"tool_calls\":[{\"name\":\"weather\",\"arguments\":{\"city\":\"Goa\"}}]}\n```",
			wantOK:    true,
			wantText:  "Let me check.",
			wantCalls: 1,
			wantArgs:  `{"city":"Goa"}`,
		},
		{
			name:      "string encoded arguments",
			content:   `{"tool_calls":[{"name":"weather","arguments":"{\"city\":\"Agra\"}"}]}`,
			wantOK:    true,
			wantCalls: 1,
			wantArgs:  `{"city":"Agra"}`,
		},
		{
			name:      "missing arguments",
			content:   `{"tool_calls":[{"name":"weather"}]}`,
			wantOK:    true,
			wantCalls: 1,
			wantArgs:  `{}`,
		},
		{
			name:     "undeclared tool",
			content:  `{"tool_calls":[{"name":"stocks","arguments":{}}]}`,
			wantOK:   false,
			wantText: `{"tool_calls":[{"name":"stocks","arguments":{}}]}`,
		},
		{
			name:     "plain answer",
			content:  "It is sunny in Pune.",
			wantOK:   false,
			wantText: "It is sunny in Pune.",
		},
		{
			name:     "json without tool calls",
			content:  `Here you go: {"city":"Pune"}`,
			wantOK:   false,
			wantText: `Here you go: {"city":"Pune"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls, text, ok := parseSimulatedToolCalls(tt.content, tools, sequentialIDs())
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			if len(calls) != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", len(calls), tt.wantCalls)
			}
			if tt.wantCalls > 0 {
				if calls[0].ID != "sim_1" || calls[0].Function.Name != "weather" {
					t.Errorf("call: %+v", calls[0])
				}
				if calls[0].Function.Arguments != tt.wantArgs {
					t.Errorf("arguments = %q, want %q", calls[0].Function.Arguments, tt.wantArgs)
				}
			}
		})
	}
}

func TestParseSimulatedToolCalls_RepairsTruncatedJSON(t *testing.T) {
	calls, _, ok := parseSimulatedToolCalls(`{"tool_calls":[{"name":"weather","arguments":{"city":"Pune"}}`, preparedWeatherTools(t), sequentialIDs())
	if !ok || len(calls) != 1 {
		t.Fatalf("expected the truncated reply to be repaired, ok=%v calls=%+v", ok, calls)
	}
}
