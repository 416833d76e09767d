package sarvam

import (
	"testing"
)

func TestProviderOptions(t *testing.T) {
	enabled := true

	tests := []struct {
		name    string
		options map[string]any
		want    ChatOptions
		wantErr bool
	}{
		{name: "missing", options: nil, want: ChatOptions{}},
		{name: "other provider", options: map[string]any{"openai": ChatOptions{ReasoningEffort: "high"}}, want: ChatOptions{}},
		{name: "value", options: map[string]any{"sarvam": ChatOptions{ReasoningEffort: "low"}}, want: ChatOptions{ReasoningEffort: "low"}},
		{name: "pointer", options: map[string]any{"sarvam": &ChatOptions{SimulateToolCalling: true}}, want: ChatOptions{SimulateToolCalling: true}},
		{
			name:    "map",
			options: map[string]any{"sarvam": map[string]any{"reasoning_effort": "medium", "wiki_grounding": true}},
			want:    ChatOptions{ReasoningEffort: "medium", WikiGrounding: &enabled},
		},
		{name: "wrong shape", options: map[string]any{"sarvam": map[string]any{"wiki_grounding": "yes"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := providerOptions[ChatOptions](tt.options)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.ReasoningEffort != tt.want.ReasoningEffort || got.SimulateToolCalling != tt.want.SimulateToolCalling {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if (got.WikiGrounding == nil) != (tt.want.WikiGrounding == nil) {
				t.Errorf("WikiGrounding: got %v, want %v", got.WikiGrounding, tt.want.WikiGrounding)
			}
		})
	}
}
