package sarvam

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestProvider points a provider at a fake Sarvam server. Retries are fast
// and generated tool call IDs are deterministic (gen_1, gen_2, ...).
func newTestProvider(t *testing.T, handler http.HandlerFunc) *SarvamProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider := New()
	provider.WithAPIKey("test-key")
	provider.WithBaseURL(server.URL)
	provider.WithHttpClient(server.Client())
	provider.WithRetry(RetryConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond})

	generated := 0
	provider.newID = func() string {
		generated++
		return fmt.Sprintf("gen_%d", generated)
	}
	provider.now = func() time.Time { return fixedNow }
	return provider
}

// decodeBody reads a JSON request body into a generic map.
func decodeBody(t *testing.T, request *http.Request) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(request.Body)
	if err != nil {
		t.Fatalf("failed to read request body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("request body is not JSON: %v\n%s", err, raw)
	}
	return body
}

func writeJSON(writer http.ResponseWriter, status int, body string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_, _ = io.WriteString(writer, body)
}

// writeSSE writes one SSE data frame and flushes it.
func writeSSE(writer http.ResponseWriter, data string) {
	fmt.Fprintf(writer, "data: %s\n\n", data)
	if flusher, ok := writer.(http.Flusher); ok {
		flusher.Flush()
	}
}

func writeSSEDone(writer http.ResponseWriter) {
	writeSSE(writer, "[DONE]")
}
