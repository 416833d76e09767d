package sarvam

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
)

func TestIdentifyLanguage(t *testing.T) {
	provider := newTestProvider(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/text-lid" {
			t.Errorf("unexpected path %s", request.URL.Path)
		}
		if body := decodeBody(t, request); body["input"] != "আপনি কেমন আছেন?" {
			t.Errorf("unexpected body %v", body)
		}
		writeJSON(writer, http.StatusOK, `{"request_id":"lid-1","language_code":"bn-IN","script_code":"Beng"}`)
	})

	response, err := provider.IdentifyLanguage(context.Background(), LanguageIdentificationRequest{Input: "আপনি কেমন আছেন?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Language != LanguageBengali || response.Script != "Beng" || response.Metadata.RequestID != "lid-1" {
		t.Errorf("response: %+v", response)
	}
}

func TestIdentifyLanguage_Undetermined(t *testing.T) {
	provider := newTestProvider(t, func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusOK, `{"request_id":"lid-2","language_code":null,"script_code":null}`)
	})

	response, err := provider.IdentifyLanguage(context.Background(), LanguageIdentificationRequest{Input: "12345"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Language != "" || response.Script != "" {
		t.Errorf("expected empty codes, got %+v", response)
	}
}

func TestIdentifyLanguage_EmptyInput(t *testing.T) {
	provider := New()
	provider.WithAPIKey("key")
	_, err := provider.IdentifyLanguage(context.Background(), LanguageIdentificationRequest{})
	var invalid *ai.InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
}
