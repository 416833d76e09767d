package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestJSONToString(t *testing.T) {
	body := map[string]any{"input": "नमस्ते", "target_language_code": "hi-IN"}

	compact := JSONToString(body)
	if strings.Contains(compact, "\n") || !strings.Contains(compact, `"input":"नमस्ते"`) {
		t.Errorf("compact: %q", compact)
	}

	indented := JSONToString(body, true)
	if !strings.Contains(indented, "\n  \"input\"") {
		t.Errorf("indented: %q", indented)
	}
}

func TestJSONToString_MarshalError(t *testing.T) {
	if got := JSONToString(make(chan int)); !strings.HasPrefix(got, `{"error":`) {
		t.Errorf("expected error JSON, got %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact", input: "hello", maxLen: 5, want: "hello"},
		{name: "ascii cut", input: "hello world", maxLen: 5, want: "hello... (truncated, total: 11 bytes)"},
		// every Devanagari rune is three bytes; a cut at 4 backs off to 3
		{name: "rune boundary", input: "नमस्ते", maxLen: 4, want: "न... (truncated, total: 18 bytes)"},
		{name: "zero uses default", input: strings.Repeat("a", DefaultMaxStringLength), maxLen: 0, want: strings.Repeat("a", DefaultMaxStringLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("result is not valid UTF-8: %q", got)
			}
		})
	}
}

func TestTruncateStringDefault(t *testing.T) {
	long := strings.Repeat("த", DefaultMaxStringLength)
	got := TruncateStringDefault(long)
	if !strings.HasSuffix(got, "bytes)") || !utf8.ValidString(got) {
		t.Errorf("unexpected truncation: %q", got[len(got)-40:])
	}
	if negative := TruncateString(long, -1); negative != got {
		t.Error("negative maxLen should use the default")
	}
}
