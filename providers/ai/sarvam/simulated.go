package sarvam

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/utils"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
)

// Simulated tool calling: models without native function calling are told
// about the tools in a system prompt and answer with a JSON object of the
// form {"tool_calls":[{"name":"...","arguments":{...}}]}.

type simulatedToolCalls struct {
	ToolCalls []simulatedToolCall `json:"tool_calls"`
}

type simulatedToolCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// buildSimulatedToolPrompt renders the tool instructions. It returns "" when
// there is nothing to inject: no function tools, or a "none" tool choice.
func buildSimulatedToolPrompt(tools []chatTool, choice *ai.ToolChoice) (string, error) {
	if len(tools) == 0 {
		return "", nil
	}
	if choice != nil && choice.Type == ai.ToolChoiceNone {
		return "", nil
	}

	var builder strings.Builder
	builder.WriteString("You have access to the following tools:\n\n")
	for _, tool := range tools {
		parameters, err := json.Marshal(tool.Function.Parameters)
		if err != nil {
			return "", fmt.Errorf("error encoding parameters of tool %s: %w", tool.Function.Name, err)
		}
		fmt.Fprintf(&builder, "- %s", tool.Function.Name)
		if tool.Function.Description != "" {
			fmt.Fprintf(&builder, ": %s", tool.Function.Description)
		}
		fmt.Fprintf(&builder, "\n  parameters: %s\n", parameters)
	}

	builder.WriteString("\nTo call tools, reply with only a JSON object and no other text:\n")
	builder.WriteString(`{"tool_calls":[{"name":"<tool name>","arguments":{<arguments>}}]}`)
	builder.WriteString("\n")

	switch {
	case choice != nil && choice.Type == ai.ToolChoiceRequired:
		builder.WriteString("You must call at least one tool.")
	case choice != nil && choice.Type == ai.ToolChoiceTool:
		fmt.Fprintf(&builder, "You must call the tool %q.", choice.ToolName)
	default:
		builder.WriteString("If no tool is needed, answer the user directly in plain text.")
	}
	return builder.String(), nil
}

// parseSimulatedToolCalls looks for a tool_calls object in content. Calls to
// undeclared tools are discarded. When no call survives, ok is false and the
// content should be used unchanged; otherwise text is whatever prose preceded
// the JSON object.
func parseSimulatedToolCalls(content string, tools []chatTool, newID func() string) (toolCalls []ai.ToolCall, text string, ok bool) {
	span, found := utils.ExtractJSONObject(content)
	if !found || !strings.Contains(span, "tool_calls") {
		return nil, content, false
	}

	parsed, err := utils.ParseJSONAs[simulatedToolCalls](span)
	if err != nil {
		return nil, content, false
	}

	for _, call := range parsed.ToolCalls {
		if !slices.ContainsFunc(tools, func(tool chatTool) bool { return tool.Function.Name == call.Name }) {
			continue
		}
		arguments := strings.TrimSpace(string(call.Arguments))
		// some replies encode the arguments object as a string
		var encoded string
		if strings.HasPrefix(arguments, `"`) && json.Unmarshal([]byte(arguments), &encoded) == nil {
			arguments = encoded
		}
		if arguments == "" || arguments == "null" {
			arguments = "{}"
		}
		toolCalls = append(toolCalls, ai.ToolCall{
			ID:   newID(),
			Type: "function",
			Function: ai.ToolCallFunction{
				Name:      call.Name,
				Arguments: arguments,
			},
		})
	}
	if len(toolCalls) == 0 {
		return nil, content, false
	}

	prefix := content
	if index := strings.Index(content, span); index >= 0 {
		prefix = content[:index]
	}
	prefix = strings.TrimSpace(prefix)
	prefix = strings.TrimSuffix(prefix, "```json")
	prefix = strings.TrimSuffix(prefix, "```")
	return toolCalls, strings.TrimSpace(prefix), true
}
