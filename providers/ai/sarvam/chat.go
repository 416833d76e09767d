package sarvam

import (
	"context"
	"fmt"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/utils"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability"
)

const (
	minTemperature = 0.0
	maxTemperature = 2.0

	toolModeNative    = "native"
	toolModeSimulated = "simulated"
)

// chatArgs is a fully prepared chat call.
type chatArgs struct {
	body     chatCompletionRequest
	warnings []ai.CallWarning

	// simulated is set when tool instructions were injected into the prompt;
	// tools then holds the declared tools for parsing the reply.
	simulated bool
	tools     []chatTool
}

// getArgs builds the request body and the warnings for settings the chat
// endpoint cannot honour.
func (p *SarvamProvider) getArgs(request ai.ChatRequest) (chatArgs, error) {
	var args chatArgs

	model := request.Model
	if model == "" {
		model = DefaultChatModel
	}
	capabilities := p.capabilitiesFor(model)

	options, err := providerOptions[ChatOptions](request.ProviderOptions)
	if err != nil {
		return args, err
	}

	args.body = chatCompletionRequest{
		Model:         model,
		WikiGrounding: options.WikiGrounding,
	}

	if options.ReasoningEffort != "" {
		if !reasoningEfforts[options.ReasoningEffort] {
			return args, &ai.InvalidArgumentError{
				Argument: "reasoning_effort",
				Message:  fmt.Sprintf("must be low, medium or high, got %q", options.ReasoningEffort),
			}
		}
		if capabilities.Reasoning {
			args.body.ReasoningEffort = options.ReasoningEffort
		} else {
			args.warnings = append(args.warnings, ai.CallWarning{
				Type:    ai.WarningUnsupportedSetting,
				Setting: "reasoningEffort",
				Details: fmt.Sprintf("model %s does not support reasoning", model),
			})
		}
	}

	args.warnings = append(args.warnings, applyGenerationConfig(&args.body, request.GenerationConfig)...)

	if format := request.ResponseFormat; format != nil && (format.Type == "json" || format.OutputSchema != nil) {
		args.warnings = append(args.warnings, ai.CallWarning{
			Type:    ai.WarningUnsupportedSetting,
			Setting: "responseFormat",
			Details: "JSON response format is not supported",
		})
	}

	prepared, err := prepareTools(request.Tools, request.ToolChoice)
	if err != nil {
		return args, err
	}
	args.warnings = append(args.warnings, prepared.Warnings...)

	simulatedHistory := !capabilities.NativeToolCalling || options.SimulateToolCalling
	args.body.Messages, err = convertMessages(request, simulatedHistory)
	if err != nil {
		return args, err
	}

	if !simulatedHistory {
		args.body.Tools = prepared.Tools
		args.body.ToolChoice = prepared.ToolChoice
		return args, nil
	}

	prompt, err := buildSimulatedToolPrompt(prepared.Tools, request.ToolChoice)
	if err != nil {
		return args, err
	}
	if prompt != "" {
		args.body.Messages = injectSystemPrompt(args.body.Messages, prompt)
		args.simulated = true
		args.tools = prepared.Tools
	}
	return args, nil
}

// applyGenerationConfig copies sampling settings into body and reports the
// ones that were dropped or adjusted.
func applyGenerationConfig(body *chatCompletionRequest, config *ai.GenerationConfig) []ai.CallWarning {
	if config == nil {
		return nil
	}
	var warnings []ai.CallWarning

	if config.Temperature != nil {
		temperature := *config.Temperature
		if temperature < minTemperature || temperature > maxTemperature {
			clamped := min(max(temperature, minTemperature), maxTemperature)
			warnings = append(warnings, ai.CallWarning{
				Type:    ai.WarningUnsupportedSetting,
				Setting: "temperature",
				Details: fmt.Sprintf("temperature %g is outside [0, 2] and was clamped to %g", temperature, clamped),
			})
			temperature = clamped
		}
		body.Temperature = &temperature
	}

	if config.TopK != nil {
		warnings = append(warnings, ai.CallWarning{Type: ai.WarningUnsupportedSetting, Setting: "topK"})
	}
	if config.N > 1 {
		warnings = append(warnings, ai.CallWarning{
			Type:    ai.WarningOther,
			Message: fmt.Sprintf("n=%d requested; only the first choice is returned", config.N),
		})
		body.N = utils.Ptr(config.N)
	}
	if config.MaxTokens > 0 {
		body.MaxTokens = utils.Ptr(config.MaxTokens)
	}

	body.TopP = config.TopP
	body.Seed = config.Seed
	body.FrequencyPenalty = config.FrequencyPenalty
	body.PresencePenalty = config.PresencePenalty
	body.Stop = config.StopSequences
	return warnings
}

// injectSystemPrompt appends prompt to the leading system message, or adds
// one when the conversation has none.
func injectSystemPrompt(messages []chatMessage, prompt string) []chatMessage {
	if len(messages) > 0 && messages[0].Role == string(ai.RoleSystem) {
		messages[0].Content = joinNonEmpty("\n\n", messages[0].Content, prompt)
		return messages
	}
	return append([]chatMessage{{Role: string(ai.RoleSystem), Content: prompt}}, messages...)
}

func (args chatArgs) toolMode() string {
	switch {
	case args.simulated:
		return toolModeSimulated
	case len(args.body.Tools) > 0:
		return toolModeNative
	}
	return ""
}

func (args chatArgs) spanAttributes(stream bool) []observability.Attribute {
	attrs := []observability.Attribute{
		observability.Bool(observability.AttrLLMStream, stream),
		observability.Int(observability.AttrRequestMessagesCount, len(args.body.Messages)),
		observability.Int(observability.AttrRequestToolsCount, len(args.body.Tools)+len(args.tools)),
	}
	if mode := args.toolMode(); mode != "" {
		attrs = append(attrs, observability.String(observability.AttrLLMToolMode, mode))
	}
	if args.body.Temperature != nil {
		attrs = append(attrs, observability.Float64(observability.AttrLLMTemperature, *args.body.Temperature))
	}
	if args.body.MaxTokens != nil {
		attrs = append(attrs, observability.Int(observability.AttrLLMMaxTokens, *args.body.MaxTokens))
	}
	return attrs
}

// SendMessage calls /v1/chat/completions and maps the first choice.
func (p *SarvamProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if err := p.checkAPIKey(); err != nil {
		return nil, err
	}
	args, err := p.getArgs(request)
	if err != nil {
		return nil, err
	}

	scope := p.beginCall(ctx, observability.SpanChat, chatCompletionsEndpoint, args.body.Model, args.spanAttributes(false)...)
	scope.warnings(args.warnings)

	response, err := p.sendChat(scope, args, request.Headers)
	if err != nil {
		scope.end(err)
		return nil, err
	}

	scope.usage(response.Usage)
	scope.end(nil,
		observability.String(observability.AttrLLMResponseID, response.Id),
		observability.String(observability.AttrLLMFinishReason, string(response.FinishReason)),
	)
	return response, nil
}

func (p *SarvamProvider) sendChat(scope *callScope, args chatArgs, requestHeaders map[string]string) (*ai.ChatResponse, error) {
	httpResponse, body, err := postJSON[chatCompletionResponse](p, scope, chatCompletionsEndpoint, args.body, requestHeaders)
	if err != nil {
		return nil, err
	}
	if body == nil || len(body.Choices) == 0 {
		return nil, &ai.InvalidResponseError{Reason: "chat completion has no choices", Body: utils.JSONToString(body)}
	}

	choice := body.Choices[0]
	response := &ai.ChatResponse{
		Content:      deref(choice.Message.Content),
		Reasoning:    deref(choice.Message.ReasoningContent),
		FinishReason: mapFinishReason(choice.FinishReason),
		Usage:        convertUsage(body.Usage),
		Warnings:     args.warnings,
	}

	for _, toolCall := range choice.Message.ToolCalls {
		response.ToolCalls = append(response.ToolCalls, p.convertToolCall(toolCall))
	}

	if args.simulated && len(response.ToolCalls) == 0 {
		if toolCalls, text, ok := parseSimulatedToolCalls(response.Content, args.tools, p.newID); ok {
			response.ToolCalls = toolCalls
			response.Content = text
			response.FinishReason = ai.FinishReasonToolCalls
		}
	}

	model := body.Model
	if model == "" {
		model = args.body.Model
	}
	response.Metadata = p.responseMetadata(body.ID, model, body.Created, "", httpResponse)
	response.Id = response.Metadata.ID
	response.Model = response.Metadata.ModelID
	response.Created = response.Metadata.Timestamp.Unix()
	return response, nil
}

func (p *SarvamProvider) convertToolCall(toolCall chatToolCall) ai.ToolCall {
	id := toolCall.ID
	if id == "" {
		id = p.newID()
	}
	arguments := toolCall.Function.Arguments
	if arguments == "" {
		arguments = "{}"
	}
	return ai.ToolCall{
		ID:   id,
		Type: "function",
		Function: ai.ToolCallFunction{
			Name:      toolCall.Function.Name,
			Arguments: arguments,
		},
	}
}

func convertUsage(usage *chatUsage) *ai.Usage {
	if usage == nil {
		return nil
	}
	converted := &ai.Usage{
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}
	if usage.CompletionTokensDetails != nil {
		converted.ReasoningTokens = usage.CompletionTokensDetails.ReasoningTokens
	}
	return converted
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
