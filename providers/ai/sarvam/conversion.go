package sarvam

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
)

// convertMessages flattens the system prompt and conversation into the
// Sarvam message array. With simulated set, tool calls and tool results are
// rewritten as plain assistant and user text and adjacent turns of the same
// role are merged, since the model has never seen the tool wire format.
func convertMessages(request ai.ChatRequest, simulated bool) ([]chatMessage, error) {
	messages := make([]chatMessage, 0, len(request.Messages)+1)
	if request.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: string(ai.RoleSystem), Content: request.SystemPrompt})
	}

	for index, message := range request.Messages {
		var converted chatMessage
		var err error
		switch message.Role {
		case ai.RoleSystem:
			converted.Role = string(ai.RoleSystem)
			converted.Content, err = messageText(message)
		case ai.RoleUser:
			converted.Role = string(ai.RoleUser)
			converted.Content, err = messageText(message)
		case ai.RoleAssistant:
			converted, err = convertAssistantMessage(message, simulated)
		case ai.RoleTool:
			converted = convertToolMessage(message, simulated)
		default:
			err = fmt.Errorf("unsupported role %q", message.Role)
		}
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", index, err)
		}
		messages = append(messages, converted)
	}

	if simulated {
		messages = mergeAdjacent(messages)
	}
	return messages, nil
}

// messageText joins the text parts of a message. Image parts cannot be sent
// because chat content is a plain string.
func messageText(message ai.Message) (string, error) {
	if len(message.ContentParts) == 0 {
		return message.Content, nil
	}

	var builder strings.Builder
	for _, part := range message.ContentParts {
		switch part.Type {
		case ai.ContentTypeText:
			builder.WriteString(part.Text)
		case ai.ContentTypeImage:
			return "", &ai.UnsupportedFunctionalityError{Functionality: "image content parts"}
		default:
			return "", &ai.UnsupportedFunctionalityError{Functionality: fmt.Sprintf("content part type %q", part.Type)}
		}
	}
	return builder.String(), nil
}

func convertAssistantMessage(message ai.Message, simulated bool) (chatMessage, error) {
	content, err := messageText(message)
	if err != nil {
		return chatMessage{}, err
	}
	converted := chatMessage{Role: string(ai.RoleAssistant), Content: content}
	if len(message.ToolCalls) == 0 {
		return converted, nil
	}

	if simulated {
		rendered, err := renderSimulatedToolCalls(message.ToolCalls)
		if err != nil {
			return chatMessage{}, err
		}
		converted.Content = joinNonEmpty("\n", content, rendered)
		return converted, nil
	}

	for _, toolCall := range message.ToolCalls {
		arguments := toolCall.Function.Arguments
		if arguments == "" {
			arguments = "{}"
		}
		converted.ToolCalls = append(converted.ToolCalls, chatToolCall{
			ID:   toolCall.ID,
			Type: "function",
			Function: chatToolCallFunction{
				Name:      toolCall.Function.Name,
				Arguments: arguments,
			},
		})
	}
	return converted, nil
}

func convertToolMessage(message ai.Message, simulated bool) chatMessage {
	if !simulated {
		return chatMessage{Role: string(ai.RoleTool), Content: message.Content, ToolCallID: message.ToolCallID}
	}

	name := message.Name
	if name == "" {
		name = message.ToolCallID
	}
	return chatMessage{
		Role:    string(ai.RoleUser),
		Content: fmt.Sprintf("Result of tool %q:\n%s", name, message.Content),
	}
}

// renderSimulatedToolCalls writes earlier tool calls in the same JSON shape
// the simulated tool prompt asks the model to produce.
func renderSimulatedToolCalls(toolCalls []ai.ToolCall) (string, error) {
	calls := make([]simulatedToolCall, 0, len(toolCalls))
	for _, toolCall := range toolCalls {
		arguments := json.RawMessage(toolCall.Function.Arguments)
		if len(arguments) == 0 || !json.Valid(arguments) {
			arguments = json.RawMessage("{}")
		}
		calls = append(calls, simulatedToolCall{Name: toolCall.Function.Name, Arguments: arguments})
	}

	encoded, err := json.Marshal(simulatedToolCalls{ToolCalls: calls})
	if err != nil {
		return "", fmt.Errorf("error encoding tool calls: %w", err)
	}
	return string(encoded), nil
}

// mergeAdjacent joins consecutive user or assistant turns. System turns stay
// separate so their order is kept.
func mergeAdjacent(messages []chatMessage) []chatMessage {
	merged := make([]chatMessage, 0, len(messages))
	for _, message := range messages {
		last := len(merged) - 1
		if last >= 0 && merged[last].Role == message.Role && message.Role != string(ai.RoleSystem) {
			merged[last].Content = joinNonEmpty("\n\n", merged[last].Content, message.Content)
			continue
		}
		merged = append(merged, message)
	}
	return merged
}

func joinNonEmpty(separator string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		if value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, separator)
}
