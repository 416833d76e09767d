package sarvam

import "github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"

// mapFinishReason normalizes the finish_reason strings of the chat endpoint.
func mapFinishReason(reason *string) ai.FinishReason {
	if reason == nil {
		return ai.FinishReasonUnknown
	}

	switch *reason {
	case "stop":
		return ai.FinishReasonStop
	case "length":
		return ai.FinishReasonLength
	case "content_filter":
		return ai.FinishReasonContentFilter
	case "tool_calls", "function_call":
		return ai.FinishReasonToolCalls
	case "error":
		return ai.FinishReasonError
	case "":
		return ai.FinishReasonUnknown
	default:
		return ai.FinishReasonOther
	}
}
