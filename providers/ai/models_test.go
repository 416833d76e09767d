package ai

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewPart_Constructors(t *testing.T) {
	text := NewTextPart("hello")
	if text.Type != ContentTypeText || text.Text != "hello" {
		t.Errorf("NewTextPart: got %+v", text)
	}

	image := NewImagePart("image/png", "aGVsbG8=")
	if image.Type != ContentTypeImage || image.Image == nil {
		t.Fatalf("NewImagePart: got %+v", image)
	}
	if image.Image.MimeType != "image/png" || image.Image.Data != "aGVsbG8=" {
		t.Errorf("NewImagePart image data: got %+v", image.Image)
	}
}

func TestToolResult_ToJSON(t *testing.T) {
	result := ToolResult{Success: true, Data: map[string]int{"n": 1}}
	encoded, err := result.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if encoded != `{"success":true,"data":{"n":1}}` {
		t.Errorf("got %s", encoded)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusRequestTimeout, true},
		{http.StatusConflict, true},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			if got := IsRetryableStatus(tt.status); got != tt.want {
				t.Errorf("IsRetryableStatus(%d) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestIsRetryable_WrappedAPICallError(t *testing.T) {
	apiErr := &APICallError{URL: "https://example.test", StatusCode: 429, Message: "slow down", Retryable: true}
	wrapped := fmt.Errorf("chat failed: %w", apiErr)

	if !IsRetryable(wrapped) {
		t.Error("expected wrapped retryable APICallError to be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors must not be retryable")
	}

	var target *APICallError
	if !errors.As(wrapped, &target) || target.StatusCode != 429 {
		t.Errorf("errors.As failed: %+v", target)
	}
}

func TestAPICallError_Message(t *testing.T) {
	err := &APICallError{URL: "u", StatusCode: 400, Code: "invalid_request", Message: "bad"}
	if got := err.Error(); got != "API call to u failed with status 400 (invalid_request): bad" {
		t.Errorf("got %q", got)
	}
}
