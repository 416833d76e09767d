package sarvam

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/utils"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability"
)

const (
	defaultBaseURL = "https://api.sarvam.ai"
	providerName   = "sarvam"

	chatCompletionsEndpoint        = "/v1/chat/completions"
	textToSpeechEndpoint           = "/text-to-speech"
	speechToTextEndpoint           = "/speech-to-text"
	speechToTextTranslateEndpoint  = "/speech-to-text-translate"
	translateEndpoint              = "/translate"
	transliterateEndpoint          = "/transliterate"
	languageIdentificationEndpoint = "/text-lid"

	apiKeyHeader = "api-subscription-key" // #nosec G101 -- header name, not a credential
)

// SarvamProvider implements ai.StreamProvider, ai.SpeechProvider and
// ai.TranscriptionProvider against the Sarvam REST API, plus the Sarvam-only
// text services.
type SarvamProvider struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	headers      map[string]string
	capabilities *Capabilities
	retry        RetryConfig
	observer     observability.Provider

	// newID generates tool call identifiers when the API omits them
	newID func() string
	now   func() time.Time
}

var (
	_ ai.StreamProvider        = (*SarvamProvider)(nil)
	_ ai.SpeechProvider        = (*SarvamProvider)(nil)
	_ ai.TranscriptionProvider = (*SarvamProvider)(nil)
)

// New creates a provider configured from SARVAM_API_KEY and
// SARVAM_API_BASE_URL (default https://api.sarvam.ai).
func New() *SarvamProvider {
	baseURL := os.Getenv("SARVAM_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &SarvamProvider{
		apiKey:  os.Getenv("SARVAM_API_KEY"),
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		headers: map[string]string{},
		retry:   DefaultRetryConfig,
		newID:   generateToolCallID,
		now:     time.Now,
	}
}

func generateToolCallID() string {
	return "call_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// WithAPIKey sets the subscription key sent in the api-subscription-key header.
func (p *SarvamProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL points the provider at another host, e.g. a proxy or test server.
func (p *SarvamProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = strings.TrimRight(baseURL, "/")
	return p
}

// WithHttpClient sets a custom HTTP client
func (p *SarvamProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// WithHeaders adds headers sent with every request. Per-request headers take
// precedence; the api-subscription-key header cannot be overridden here.
func (p *SarvamProvider) WithHeaders(headers map[string]string) *SarvamProvider {
	for key, value := range headers {
		p.headers[key] = value
	}
	return p
}

// WithCapabilities overrides the catalog-derived capabilities for every chat
// model, e.g. to force simulated tool calling.
func (p *SarvamProvider) WithCapabilities(capabilities Capabilities) *SarvamProvider {
	p.capabilities = &capabilities
	return p
}

// WithRetry replaces the retry policy for non-streaming calls.
func (p *SarvamProvider) WithRetry(retry RetryConfig) *SarvamProvider {
	p.retry = retry
	return p
}

// WithObserver installs an observability provider. Without one the provider
// uses the observer found in the call context, if any.
func (p *SarvamProvider) WithObserver(observer observability.Provider) *SarvamProvider {
	p.observer = observer
	return p
}

// IsStopMessage reports whether the response ends the turn: only pending tool
// calls keep a conversation loop going, whatever the finish reason.
func (p *SarvamProvider) IsStopMessage(message *ai.ChatResponse) bool {
	if message == nil {
		return true
	}
	return len(message.ToolCalls) == 0
}

// headerOptions merges the auth header, provider defaults and request headers,
// in increasing order of precedence.
func (p *SarvamProvider) headerOptions(requestHeaders map[string]string) []utils.HeaderOption {
	options := make([]utils.HeaderOption, 0, 1+len(p.headers)+len(requestHeaders))
	options = append(options, utils.HeaderOption{Key: apiKeyHeader, Value: p.apiKey})
	for key, value := range p.headers {
		if strings.EqualFold(key, apiKeyHeader) {
			continue
		}
		options = append(options, utils.HeaderOption{Key: key, Value: value})
	}
	for key, value := range requestHeaders {
		options = append(options, utils.HeaderOption{Key: key, Value: value})
	}
	return options
}

func (p *SarvamProvider) observerFor(ctx context.Context) observability.Provider {
	if p.observer != nil {
		return p.observer
	}
	return observability.ObserverFromContext(ctx)
}

func (p *SarvamProvider) checkAPIKey() error {
	if p.apiKey == "" {
		return ai.ErrMissingAPIKey
	}
	return nil
}
