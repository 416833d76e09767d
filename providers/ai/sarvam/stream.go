package sarvam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/utils"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability"
)

const (
	textChannelID      = "text-0"
	reasoningChannelID = "reasoning-0"
)

// StreamMessage implements ai.StreamProvider. The request body matches
// SendMessage with stream enabled. When tool calling is simulated the reply
// has to be parsed as a whole, so the call is made synchronously and replayed
// as a single event sequence.
func (p *SarvamProvider) StreamMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatStream, error) {
	if err := p.checkAPIKey(); err != nil {
		return nil, err
	}
	args, err := p.getArgs(request)
	if err != nil {
		return nil, err
	}

	if args.simulated || !p.capabilitiesFor(args.body.Model).Streaming {
		response, err := p.SendMessage(ctx, request)
		if err != nil {
			return nil, err
		}
		return ai.NewSingleEventStream(response), nil
	}

	args.body.Stream = true
	scope := p.beginCall(ctx, observability.SpanChatStream, chatCompletionsEndpoint, args.body.Model, args.spanAttributes(true)...)
	scope.warnings(args.warnings)

	url := p.baseURL + chatCompletionsEndpoint
	httpResponse, err := utils.DoPostStream(scope.ctx, p.client, url, "", args.body, p.headerOptions(request.Headers)...)
	if err != nil {
		err = toAPICallError(err)
		scope.end(err)
		return nil, err
	}

	translator := p.newChunkTranslator(args.body.Model, httpResponse.Header.Get("X-Request-Id"))
	translator.headers = httpResponse.Header.Clone()
	sseScanner := utils.NewSSEScanner(httpResponse.Body)

	iteratorFunc := func(yield func(ai.StreamEvent, error) bool) {
		defer utils.CloseWithLog(httpResponse.Body)

		var streamErr error
		defer func() {
			scope.usage(translator.usage)
			if streamErr == nil && translator.failed {
				streamErr = errors.New(translator.errorMessage)
			}
			scope.end(streamErr, observability.String(observability.AttrLLMFinishReason, string(translator.finishReason())))
		}()

		if !yield(ai.StreamEvent{Type: ai.StreamEventStart, Warnings: args.warnings}, nil) {
			return
		}

		for !translator.failed {
			if err := scope.ctx.Err(); err != nil {
				streamErr = err
				yield(ai.StreamEvent{}, err)
				return
			}

			payload, sseErr := sseScanner.Next()
			if sseErr == io.EOF {
				break
			}
			if sseErr != nil {
				streamErr = fmt.Errorf("SSE read error: %w", sseErr)
				yield(ai.StreamEvent{}, streamErr)
				return
			}

			scope.trace("Sarvam stream chunk", observability.String("chunk", utils.TruncateStringDefault(payload)))
			for _, event := range translator.process(payload) {
				if event.Type == ai.StreamEventError {
					scope.event(observability.EventStreamChunkError, observability.String(observability.AttrError, event.Error))
				}
				if !yield(event, nil) {
					return
				}
			}
		}

		for _, event := range translator.finish() {
			if !yield(event, nil) {
				return
			}
		}
	}

	return ai.NewChatStream(iteratorFunc), nil
}

// streamingToolCall accumulates the argument fragments of one tool call.
type streamingToolCall struct {
	id        string
	name      string
	arguments strings.Builder
	done      bool
}

// chunkTranslator turns stream chunks into ordered stream events. Text and
// reasoning each use a single channel; tool calls get one channel per index.
type chunkTranslator struct {
	provider  *SarvamProvider
	model     string
	requestID string
	headers   http.Header

	metadataSent     bool
	textStarted      bool
	reasoningStarted bool

	toolCalls map[int]*streamingToolCall
	toolOrder []int

	reason *string
	usage  *ai.Usage

	failed       bool
	errorMessage string
}

func (p *SarvamProvider) newChunkTranslator(model, requestID string) *chunkTranslator {
	return &chunkTranslator{
		provider:  p,
		model:     model,
		requestID: requestID,
		toolCalls: make(map[int]*streamingToolCall),
	}
}

// process handles one SSE payload. After a malformed chunk or an error
// object it returns nothing more.
func (t *chunkTranslator) process(payload string) []ai.StreamEvent {
	if t.failed {
		return nil
	}

	var chunk chatCompletionStreamChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return t.fail(nil, fmt.Sprintf("malformed stream chunk: %v", err))
	}

	if chunk.Error != nil || chunk.Detail != nil || (chunk.Message != "" && chunk.Choices == nil) {
		message, _, _ := parseErrorBody([]byte(payload))
		if message == "" {
			message = "stream aborted by server"
		}
		return t.fail(nil, message)
	}
	if chunk.Choices == nil && chunk.Usage == nil {
		return t.fail(nil, "malformed stream chunk: missing choices")
	}

	var events []ai.StreamEvent
	if !t.metadataSent && (chunk.ID != "" || chunk.Model != "" || chunk.Created != 0) {
		t.metadataSent = true
		model := chunk.Model
		if model == "" {
			model = t.model
		}
		metadata := t.provider.responseMetadata(chunk.ID, model, chunk.Created, t.requestID, nil)
		metadata.Headers = t.headers
		events = append(events, ai.StreamEvent{Type: ai.StreamEventResponseMetadata, Metadata: &metadata})
	}

	if chunk.Usage != nil {
		t.usage = convertUsage(chunk.Usage)
	}

	var choices []streamChoice
	if chunk.Choices != nil {
		choices = *chunk.Choices
	}
	for _, choice := range choices {
		if choice.Index != 0 {
			continue
		}
		delta := choice.Delta

		if delta.ReasoningContent != nil && *delta.ReasoningContent != "" {
			if !t.reasoningStarted {
				t.reasoningStarted = true
				events = append(events, ai.StreamEvent{Type: ai.StreamEventReasoningStart, ID: reasoningChannelID})
			}
			events = append(events, ai.StreamEvent{Type: ai.StreamEventReasoningDelta, ID: reasoningChannelID, Delta: *delta.ReasoningContent})
		}

		if delta.Content != nil && *delta.Content != "" {
			if !t.textStarted {
				t.textStarted = true
				events = append(events, ai.StreamEvent{Type: ai.StreamEventTextStart, ID: textChannelID})
			}
			events = append(events, ai.StreamEvent{Type: ai.StreamEventTextDelta, ID: textChannelID, Delta: *delta.Content})
		}

		for _, part := range delta.ToolCalls {
			var malformed string
			events, malformed = t.processToolCallPart(events, part)
			if malformed != "" {
				return t.fail(events, malformed)
			}
		}

		if choice.FinishReason != nil && *choice.FinishReason != "" {
			t.reason = choice.FinishReason
		}
	}

	return events
}

// processToolCallPart appends the events for one tool-call fragment. A
// non-empty second result reports a fragment that fails validation.
func (t *chunkTranslator) processToolCallPart(events []ai.StreamEvent, part streamToolCallPart) ([]ai.StreamEvent, string) {
	if part.Index == nil {
		return events, "tool call fragment without index"
	}
	index := *part.Index

	var name, arguments string
	if part.Function != nil {
		name = part.Function.Name
		arguments = part.Function.Arguments
	}

	toolCall, exists := t.toolCalls[index]
	if !exists {
		if name == "" {
			return events, fmt.Sprintf("tool call %d started without a function name", index)
		}
		id := part.ID
		if id == "" {
			id = t.provider.newID()
		}
		toolCall = &streamingToolCall{id: id, name: name}
		t.toolCalls[index] = toolCall
		t.toolOrder = append(t.toolOrder, index)
		events = append(events, ai.StreamEvent{Type: ai.StreamEventToolInputStart, ID: id, ToolName: name})
	}

	if toolCall.done || arguments == "" {
		return events, ""
	}

	toolCall.arguments.WriteString(arguments)
	events = append(events, ai.StreamEvent{Type: ai.StreamEventToolInputDelta, ID: toolCall.id, Delta: arguments})

	if accumulated := toolCall.arguments.String(); json.Valid([]byte(accumulated)) {
		events = append(events, t.completeToolCall(toolCall, accumulated)...)
	}
	return events, ""
}

func (t *chunkTranslator) completeToolCall(toolCall *streamingToolCall, arguments string) []ai.StreamEvent {
	toolCall.done = true
	return []ai.StreamEvent{
		{Type: ai.StreamEventToolInputEnd, ID: toolCall.id},
		{
			Type: ai.StreamEventToolCall,
			ID:   toolCall.id,
			ToolCall: &ai.ToolCall{
				ID:       toolCall.id,
				Type:     "function",
				Function: ai.ToolCallFunction{Name: toolCall.name, Arguments: arguments},
			},
		},
	}
}

func (t *chunkTranslator) fail(events []ai.StreamEvent, message string) []ai.StreamEvent {
	t.failed = true
	t.errorMessage = message
	return append(events, ai.StreamEvent{Type: ai.StreamEventError, Error: message})
}

func (t *chunkTranslator) finishReason() ai.FinishReason {
	if t.failed {
		return ai.FinishReasonError
	}
	return mapFinishReason(t.reason)
}

// finish closes every open channel and emits the terminal finish event.
// Tool calls whose arguments never became valid JSON are flushed if they can
// be repaired; after a failure they are only closed.
func (t *chunkTranslator) finish() []ai.StreamEvent {
	var events []ai.StreamEvent
	if t.reasoningStarted {
		events = append(events, ai.StreamEvent{Type: ai.StreamEventReasoningEnd, ID: reasoningChannelID})
	}
	if t.textStarted {
		events = append(events, ai.StreamEvent{Type: ai.StreamEventTextEnd, ID: textChannelID})
	}

	for _, index := range t.toolOrder {
		toolCall := t.toolCalls[index]
		if toolCall.done {
			continue
		}
		if !t.failed {
			if arguments, ok := repairArguments(toolCall.arguments.String()); ok {
				events = append(events, t.completeToolCall(toolCall, arguments)...)
				continue
			}
		}
		toolCall.done = true
		events = append(events, ai.StreamEvent{Type: ai.StreamEventToolInputEnd, ID: toolCall.id})
	}

	return append(events, ai.StreamEvent{Type: ai.StreamEventFinish, FinishReason: t.finishReason(), Usage: t.usage})
}

// repairArguments closes truncated argument JSON. Calls that never received
// arguments get an empty object.
func repairArguments(arguments string) (string, bool) {
	if strings.TrimSpace(arguments) == "" {
		return "{}", true
	}
	repaired, err := utils.RepairJSON(arguments)
	if err != nil || !json.Valid([]byte(repaired)) {
		return "", false
	}
	return repaired, true
}
