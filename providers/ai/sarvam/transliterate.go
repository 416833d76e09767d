package sarvam

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability"
)

const maxTransliterationChars = 1000

// TransliterateRequest converts Input to another script without translating it.
type TransliterateRequest struct {
	Input string
	// SourceLanguage defaults to "auto"
	SourceLanguage string
	TargetLanguage string

	NumeralsFormat string // "international" or "native"
	// SpokenForm writes numbers and symbols as spoken words
	SpokenForm                 bool
	SpokenFormNumeralsLanguage string // "english" or "native"

	Headers map[string]string
}

// TransliterateResponse is the converted text with the detected source language.
type TransliterateResponse struct {
	Text           string
	SourceLanguage string
	Metadata       ai.ResponseMetadata
}

// Transliterate calls /transliterate.
func (p *SarvamProvider) Transliterate(ctx context.Context, request TransliterateRequest) (*TransliterateResponse, error) {
	if err := p.checkAPIKey(); err != nil {
		return nil, err
	}
	body, err := transliterateArgs(request)
	if err != nil {
		return nil, err
	}

	scope := p.beginCall(ctx, observability.SpanTransliterate, transliterateEndpoint, "",
		observability.String(observability.AttrTextSourceLanguage, body.SourceLanguageCode),
		observability.String(observability.AttrTextTargetLanguage, body.TargetLanguageCode),
		observability.Int(observability.AttrTextInputLength, utf8.RuneCountInString(body.Input)),
	)

	httpResponse, decoded, err := postJSON[transliterateResponse](p, scope, transliterateEndpoint, body, request.Headers)
	if err == nil && decoded == nil {
		err = &ai.InvalidResponseError{Reason: "empty transliteration response"}
	}
	if err != nil {
		scope.end(err)
		return nil, err
	}

	response := &TransliterateResponse{
		Text:           decoded.TransliteratedText,
		SourceLanguage: decoded.SourceLanguageCode,
		Metadata:       p.responseMetadata("", "", 0, decoded.RequestID, httpResponse),
	}
	scope.end(nil, observability.String(observability.AttrLLMRequestID, response.Metadata.RequestID))
	return response, nil
}

func transliterateArgs(request TransliterateRequest) (transliterateRequest, error) {
	if request.Input == "" {
		return transliterateRequest{}, &ai.InvalidArgumentError{Argument: "input", Message: "must not be empty"}
	}
	if length := utf8.RuneCountInString(request.Input); length > maxTransliterationChars {
		return transliterateRequest{}, &ai.InvalidArgumentError{
			Argument: "input",
			Message:  fmt.Sprintf("%d characters exceeds the %d character limit", length, maxTransliterationChars),
		}
	}

	source := request.SourceLanguage
	if source == "" {
		source = LanguageAuto
	}
	if source != LanguageAuto && !IsValidLanguage(source) {
		return transliterateRequest{}, &ai.InvalidArgumentError{Argument: "source_language_code", Message: fmt.Sprintf("unsupported language code %q", source)}
	}
	if !IsValidLanguage(request.TargetLanguage) {
		return transliterateRequest{}, &ai.InvalidArgumentError{Argument: "target_language_code", Message: fmt.Sprintf("unsupported language code %q", request.TargetLanguage)}
	}

	return transliterateRequest{
		Input:                      request.Input,
		SourceLanguageCode:         source,
		TargetLanguageCode:         request.TargetLanguage,
		NumeralsFormat:             request.NumeralsFormat,
		SpokenForm:                 request.SpokenForm,
		SpokenFormNumeralsLanguage: request.SpokenFormNumeralsLanguage,
	}, nil
}
