package sarvam

import (
	"errors"
	"testing"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/jsonschema"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
)

var weatherTool = ai.ToolDescription{
	Name:        "weather",
	Description: "Current weather for a city",
	Parameters: &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{"city": {Type: "string"}},
		Required:   []string{"city"},
	},
}

func TestPrepareTools_NoTools(t *testing.T) {
	prepared, err := prepareTools(nil, &ai.ToolChoice{Type: ai.ToolChoiceRequired})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prepared.Tools != nil || prepared.ToolChoice != nil || prepared.Warnings != nil {
		t.Errorf("expected nothing, got %+v", prepared)
	}
}

func TestPrepareTools_FunctionAndProviderTools(t *testing.T) {
	tools := []ai.ToolDescription{
		weatherTool,
		{Name: "noop"},
		{Type: ai.ToolTypeProvider, Name: "web_search"},
	}

	prepared, err := prepareTools(tools, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prepared.Tools) != 2 {
		t.Fatalf("expected 2 function tools, got %d", len(prepared.Tools))
	}
	if prepared.Tools[0].Type != "function" || prepared.Tools[0].Function.Parameters.Required[0] != "city" {
		t.Errorf("weather tool: got %+v", prepared.Tools[0])
	}
	if params := prepared.Tools[1].Function.Parameters; params == nil || params.Type != "object" {
		t.Errorf("missing parameters should default to an empty object, got %+v", params)
	}
	if len(prepared.Warnings) != 1 || prepared.Warnings[0].Type != ai.WarningUnsupportedTool || prepared.Warnings[0].Tool != "web_search" {
		t.Errorf("warnings: got %+v", prepared.Warnings)
	}
	if prepared.ToolChoice != nil {
		t.Errorf("nil choice should not be sent, got %v", prepared.ToolChoice)
	}
}

func TestPrepareTools_ToolChoice(t *testing.T) {
	for _, choiceType := range []ai.ToolChoiceType{ai.ToolChoiceAuto, ai.ToolChoiceNone, ai.ToolChoiceRequired} {
		prepared, err := prepareTools([]ai.ToolDescription{weatherTool}, &ai.ToolChoice{Type: choiceType})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", choiceType, err)
		}
		if prepared.ToolChoice != string(choiceType) {
			t.Errorf("%s: got %v", choiceType, prepared.ToolChoice)
		}
	}

	prepared, err := prepareTools([]ai.ToolDescription{weatherTool}, &ai.ToolChoice{Type: ai.ToolChoiceTool, ToolName: "weather"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	named, ok := prepared.ToolChoice.(chatNamedToolChoice)
	if !ok || named.Type != "function" || named.Function.Name != "weather" {
		t.Errorf("named choice: got %#v", prepared.ToolChoice)
	}
}

func TestPrepareTools_UnknownChoice(t *testing.T) {
	_, err := prepareTools([]ai.ToolDescription{weatherTool}, &ai.ToolChoice{Type: "sometimes"})
	var unsupported *ai.UnsupportedFunctionalityError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFunctionalityError, got %v", err)
	}
}
