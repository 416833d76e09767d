package ai

import (
	"fmt"
	"iter"
	"strings"
)

// StreamEventType identifies the kind of event carried by a StreamEvent.
type StreamEventType string

const (
	// StreamEventStart is always the first event and carries call warnings.
	StreamEventStart StreamEventType = "stream-start"
	// StreamEventResponseMetadata carries the response id, model and timestamp.
	StreamEventResponseMetadata StreamEventType = "response-metadata"

	StreamEventTextStart StreamEventType = "text-start"
	StreamEventTextDelta StreamEventType = "text-delta"
	StreamEventTextEnd   StreamEventType = "text-end"

	StreamEventReasoningStart StreamEventType = "reasoning-start"
	StreamEventReasoningDelta StreamEventType = "reasoning-delta"
	StreamEventReasoningEnd   StreamEventType = "reasoning-end"

	// StreamEventToolInputStart opens a tool call; ID and ToolName are set.
	StreamEventToolInputStart StreamEventType = "tool-input-start"
	// StreamEventToolInputDelta carries a fragment of the JSON arguments.
	StreamEventToolInputDelta StreamEventType = "tool-input-delta"
	// StreamEventToolInputEnd closes a tool call's argument stream.
	StreamEventToolInputEnd StreamEventType = "tool-input-end"
	// StreamEventToolCall carries a complete tool call with valid JSON arguments.
	StreamEventToolCall StreamEventType = "tool-call"

	// StreamEventFinish is always the last event and carries usage and the finish reason.
	StreamEventFinish StreamEventType = "finish"
	// StreamEventError reports a failure the stream recovered from enough to finish.
	StreamEventError StreamEventType = "error"
)

// StreamEvent represents a single event yielded during response streaming.
// Only the fields relevant to Type are populated.
type StreamEvent struct {
	Type StreamEventType `json:"type"`

	// ID identifies the text, reasoning or tool-call channel the event belongs to.
	ID string `json:"id,omitempty"`
	// Delta is the text, reasoning or argument fragment for *-delta events.
	Delta string `json:"delta,omitempty"`
	// ToolName is set on tool-input-start.
	ToolName string `json:"tool_name,omitempty"`
	// ToolCall is set on tool-call.
	ToolCall *ToolCall `json:"tool_call,omitempty"`

	Warnings     []CallWarning     `json:"warnings,omitempty"`      // stream-start
	Metadata     *ResponseMetadata `json:"metadata,omitempty"`      // response-metadata
	Usage        *Usage            `json:"usage,omitempty"`         // finish
	FinishReason FinishReason      `json:"finish_reason,omitempty"` // finish
	Error        string            `json:"error,omitempty"`         // error
}

// ChatStream wraps a streaming iterator and provides automatic accumulation
// of events into a final ChatResponse. It supports both range-based iteration
// for real-time token processing and a convenience Collect() method for callers
// who want the complete response.
//
// Callers must consume the stream, either by iterating with Iter() (breaking
// out early is fine) or by calling Collect(). The provider holds the HTTP
// response body open until the iterator completes or is abandoned.
type ChatStream struct {
	iterator iter.Seq2[StreamEvent, error]
}

// NewChatStream creates a ChatStream from a raw streaming iterator.
// The iterator yields StreamEvent values with a nil error, and may yield a
// non-nil error to signal a transport failure that ends the stream.
func NewChatStream(iterator iter.Seq2[StreamEvent, error]) *ChatStream {
	return &ChatStream{iterator: iterator}
}

// NewSingleEventStream replays a synchronous ChatResponse as a complete event
// sequence: stream-start, metadata, one delta per channel, tool calls, finish.
func NewSingleEventStream(response *ChatResponse) *ChatStream {
	iteratorFunc := func(yield func(StreamEvent, error) bool) {
		if !yield(StreamEvent{Type: StreamEventStart, Warnings: response.Warnings}, nil) {
			return
		}

		metadata := response.Metadata
		if !yield(StreamEvent{Type: StreamEventResponseMetadata, Metadata: &metadata}, nil) {
			return
		}

		if response.Reasoning != "" {
			for _, event := range channelEvents(StreamEventReasoningStart, StreamEventReasoningDelta, StreamEventReasoningEnd, "reasoning-0", response.Reasoning) {
				if !yield(event, nil) {
					return
				}
			}
		}

		if response.Content != "" {
			for _, event := range channelEvents(StreamEventTextStart, StreamEventTextDelta, StreamEventTextEnd, "text-0", response.Content) {
				if !yield(event, nil) {
					return
				}
			}
		}

		for index := range response.ToolCalls {
			toolCall := response.ToolCalls[index]
			events := []StreamEvent{
				{Type: StreamEventToolInputStart, ID: toolCall.ID, ToolName: toolCall.Function.Name},
				{Type: StreamEventToolInputDelta, ID: toolCall.ID, Delta: toolCall.Function.Arguments},
				{Type: StreamEventToolInputEnd, ID: toolCall.ID},
				{Type: StreamEventToolCall, ID: toolCall.ID, ToolCall: &toolCall},
			}
			for _, event := range events {
				if !yield(event, nil) {
					return
				}
			}
		}

		yield(StreamEvent{Type: StreamEventFinish, FinishReason: response.FinishReason, Usage: response.Usage}, nil)
	}

	return NewChatStream(iteratorFunc)
}

func channelEvents(start, delta, end StreamEventType, id, content string) []StreamEvent {
	return []StreamEvent{
		{Type: start, ID: id},
		{Type: delta, ID: id, Delta: content},
		{Type: end, ID: id},
	}
}

// Iter returns the underlying iterator for use with range-over-func loops.
//
// Example:
//
//	for event, err := range stream.Iter() {
//	    if err != nil { handle error }
//	    if event.Type == ai.StreamEventTextDelta {
//	        fmt.Print(event.Delta)
//	    }
//	}
func (stream *ChatStream) Iter() iter.Seq2[StreamEvent, error] {
	return stream.iterator
}

// Collect consumes the entire stream and returns the accumulated ChatResponse.
// Tool calls are taken from tool-call events, so only completed calls appear.
// A transport error stops collection at once. An error event does not: the
// stream is drained to its terminal finish event, then the partial response is
// returned together with the first error.
func (stream *ChatStream) Collect() (*ChatResponse, error) {
	accumulated := &ChatResponse{}
	var content, reasoning strings.Builder
	var streamErr error

	for event, err := range stream.iterator {
		if err != nil {
			accumulated.Content = content.String()
			accumulated.Reasoning = reasoning.String()
			return accumulated, err
		}

		switch event.Type {
		case StreamEventStart:
			accumulated.Warnings = append(accumulated.Warnings, event.Warnings...)

		case StreamEventResponseMetadata:
			if event.Metadata != nil {
				accumulated.Metadata = *event.Metadata
				accumulated.Id = event.Metadata.ID
				accumulated.Model = event.Metadata.ModelID
				if !event.Metadata.Timestamp.IsZero() {
					accumulated.Created = event.Metadata.Timestamp.Unix()
				}
			}

		case StreamEventTextDelta:
			content.WriteString(event.Delta)

		case StreamEventReasoningDelta:
			reasoning.WriteString(event.Delta)

		case StreamEventToolCall:
			if event.ToolCall != nil {
				accumulated.ToolCalls = append(accumulated.ToolCalls, *event.ToolCall)
			}

		case StreamEventFinish:
			accumulated.FinishReason = event.FinishReason
			accumulated.Usage = event.Usage

		case StreamEventError:
			if streamErr == nil {
				streamErr = fmt.Errorf("stream error: %s", event.Error)
			}
		}
	}

	accumulated.Content = content.String()
	accumulated.Reasoning = reasoning.String()
	return accumulated, streamErr
}
