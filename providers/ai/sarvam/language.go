package sarvam

import (
	"context"
	"unicode/utf8"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability"
)

// LanguageIdentificationRequest asks which language and script Input is written in.
type LanguageIdentificationRequest struct {
	Input   string
	Headers map[string]string
}

// LanguageIdentificationResponse holds the detected codes; both are empty
// when the service could not decide.
type LanguageIdentificationResponse struct {
	Language string // e.g. "hi-IN"
	Script   string // ISO 15924, e.g. "Deva"
	Metadata ai.ResponseMetadata
}

// IdentifyLanguage calls /text-lid.
func (p *SarvamProvider) IdentifyLanguage(ctx context.Context, request LanguageIdentificationRequest) (*LanguageIdentificationResponse, error) {
	if err := p.checkAPIKey(); err != nil {
		return nil, err
	}
	if request.Input == "" {
		return nil, &ai.InvalidArgumentError{Argument: "input", Message: "must not be empty"}
	}

	scope := p.beginCall(ctx, observability.SpanIdentifyLanguage, languageIdentificationEndpoint, "",
		observability.Int(observability.AttrTextInputLength, utf8.RuneCountInString(request.Input)),
	)

	body := languageIdentificationRequest{Input: request.Input}
	httpResponse, decoded, err := postJSON[languageIdentificationResponse](p, scope, languageIdentificationEndpoint, body, request.Headers)
	if err == nil && decoded == nil {
		err = &ai.InvalidResponseError{Reason: "empty language identification response"}
	}
	if err != nil {
		scope.end(err)
		return nil, err
	}

	response := &LanguageIdentificationResponse{
		Language: deref(decoded.LanguageCode),
		Script:   deref(decoded.ScriptCode),
		Metadata: p.responseMetadata("", "", 0, decoded.RequestID, httpResponse),
	}
	scope.end(nil,
		observability.String(observability.AttrLLMRequestID, response.Metadata.RequestID),
		observability.String(observability.AttrTextSourceLanguage, response.Language),
	)
	return response, nil
}
