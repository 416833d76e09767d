package sarvam

import (
	"fmt"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/jsonschema"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
)

// preparedTools is the tool section of a chat request.
type preparedTools struct {
	Tools      []chatTool
	ToolChoice any
	Warnings   []ai.CallWarning
}

// emptyParameters is sent for tools declared without a schema; the API
// rejects a null parameters object.
func emptyParameters() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}}
}

// prepareTools maps tool definitions and the tool choice to the Sarvam
// function-calling schema. Provider-defined tools are dropped with a warning.
func prepareTools(tools []ai.ToolDescription, choice *ai.ToolChoice) (preparedTools, error) {
	var prepared preparedTools
	if len(tools) == 0 {
		return prepared, nil
	}

	for _, tool := range tools {
		if tool.Type != "" && tool.Type != ai.ToolTypeFunction {
			prepared.Warnings = append(prepared.Warnings, ai.CallWarning{
				Type:    ai.WarningUnsupportedTool,
				Tool:    tool.Name,
				Details: fmt.Sprintf("tool type %q is not supported", tool.Type),
			})
			continue
		}

		parameters := tool.Parameters
		if parameters == nil {
			parameters = emptyParameters()
		}
		prepared.Tools = append(prepared.Tools, chatTool{
			Type: "function",
			Function: chatFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  parameters,
			},
		})
	}

	if len(prepared.Tools) == 0 || choice == nil {
		return prepared, nil
	}

	switch choice.Type {
	case ai.ToolChoiceAuto, ai.ToolChoiceNone, ai.ToolChoiceRequired:
		prepared.ToolChoice = string(choice.Type)
	case ai.ToolChoiceTool:
		named := chatNamedToolChoice{Type: "function"}
		named.Function.Name = choice.ToolName
		prepared.ToolChoice = named
	default:
		return preparedTools{}, &ai.UnsupportedFunctionalityError{Functionality: fmt.Sprintf("tool choice type %q", choice.Type)}
	}
	return prepared, nil
}
