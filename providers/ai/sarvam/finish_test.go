package sarvam

import (
	"testing"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/utils"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
)

func TestMapFinishReason(t *testing.T) {
	tests := []struct {
		input *string
		want  ai.FinishReason
	}{
		{nil, ai.FinishReasonUnknown},
		{utils.Ptr(""), ai.FinishReasonUnknown},
		{utils.Ptr("stop"), ai.FinishReasonStop},
		{utils.Ptr("length"), ai.FinishReasonLength},
		{utils.Ptr("content_filter"), ai.FinishReasonContentFilter},
		{utils.Ptr("tool_calls"), ai.FinishReasonToolCalls},
		{utils.Ptr("function_call"), ai.FinishReasonToolCalls},
		{utils.Ptr("error"), ai.FinishReasonError},
		{utils.Ptr("eos"), ai.FinishReasonOther},
	}

	for _, tt := range tests {
		name := "<nil>"
		if tt.input != nil {
			name = *tt.input
		}
		t.Run(name, func(t *testing.T) {
			if got := mapFinishReason(tt.input); got != tt.want {
				t.Errorf("mapFinishReason(%s) = %q, want %q", name, got, tt.want)
			}
		})
	}
}
