package sarvam

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability"
)

// Translation modes. Only mayura:v1 accepts a mode other than formal.
const (
	ModeFormal            = "formal"
	ModeModernColloquial  = "modern-colloquial"
	ModeClassicColloquial = "classic-colloquial"
	ModeCodeMixed         = "code-mixed"
)

var translationModes = map[string]bool{
	ModeFormal: true, ModeModernColloquial: true, ModeClassicColloquial: true, ModeCodeMixed: true,
}

// TranslateRequest translates Input between two languages, one of which is
// usually English.
type TranslateRequest struct {
	Model string
	Input string
	// SourceLanguage defaults to "auto"
	SourceLanguage string
	TargetLanguage string

	SpeakerGender       string // "Male" or "Female"
	Mode                string
	EnablePreprocessing bool
	OutputScript        string // "roman", "fully-native" or "spoken-form-in-native"
	NumeralsFormat      string // "international" or "native"

	Headers map[string]string
}

// TranslateResponse is the translated text with the detected source language.
type TranslateResponse struct {
	Text           string
	SourceLanguage string
	Metadata       ai.ResponseMetadata
}

// Translate calls /translate.
func (p *SarvamProvider) Translate(ctx context.Context, request TranslateRequest) (*TranslateResponse, error) {
	if err := p.checkAPIKey(); err != nil {
		return nil, err
	}
	body, err := translateArgs(request)
	if err != nil {
		return nil, err
	}

	scope := p.beginCall(ctx, observability.SpanTranslate, translateEndpoint, body.Model,
		observability.String(observability.AttrTextSourceLanguage, body.SourceLanguageCode),
		observability.String(observability.AttrTextTargetLanguage, body.TargetLanguageCode),
		observability.Int(observability.AttrTextInputLength, utf8.RuneCountInString(body.Input)),
	)

	httpResponse, decoded, err := postJSON[translateResponse](p, scope, translateEndpoint, body, request.Headers)
	if err == nil && decoded == nil {
		err = &ai.InvalidResponseError{Reason: "empty translation response"}
	}
	if err != nil {
		scope.end(err)
		return nil, err
	}

	response := &TranslateResponse{
		Text:           decoded.TranslatedText,
		SourceLanguage: decoded.SourceLanguageCode,
		Metadata:       p.responseMetadata("", body.Model, 0, decoded.RequestID, httpResponse),
	}
	scope.end(nil, observability.String(observability.AttrLLMRequestID, response.Metadata.RequestID))
	return response, nil
}

func translateArgs(request TranslateRequest) (translateRequest, error) {
	model := request.Model
	if model == "" {
		model = DefaultTranslationModel
	}
	info, known := GetModelInfo(model)
	if known && info.Kind != KindTranslation {
		return translateRequest{}, &ai.InvalidArgumentError{Argument: "model", Message: fmt.Sprintf("%s is not a translation model", model)}
	}

	if request.Input == "" {
		return translateRequest{}, &ai.InvalidArgumentError{Argument: "input", Message: "must not be empty"}
	}
	if known && info.MaxInputChars > 0 {
		if length := utf8.RuneCountInString(request.Input); length > info.MaxInputChars {
			return translateRequest{}, &ai.InvalidArgumentError{
				Argument: "input",
				Message:  fmt.Sprintf("%d characters exceeds the %d character limit of %s", length, info.MaxInputChars, model),
			}
		}
	}

	source := request.SourceLanguage
	if source == "" {
		source = LanguageAuto
	}
	if source != LanguageAuto && !isTranslationLanguage(model, source) {
		return translateRequest{}, &ai.InvalidArgumentError{Argument: "source_language_code", Message: fmt.Sprintf("unsupported language code %q", source)}
	}

	target := request.TargetLanguage
	switch {
	case target == "":
		return translateRequest{}, &ai.InvalidArgumentError{Argument: "target_language_code", Message: "must not be empty"}
	case target == LanguageAuto:
		return translateRequest{}, &ai.InvalidArgumentError{Argument: "target_language_code", Message: "cannot be auto"}
	case !isTranslationLanguage(model, target):
		return translateRequest{}, &ai.InvalidArgumentError{Argument: "target_language_code", Message: fmt.Sprintf("unsupported language code %q", target)}
	}

	if request.Mode != "" {
		if !translationModes[request.Mode] {
			return translateRequest{}, &ai.InvalidArgumentError{Argument: "mode", Message: fmt.Sprintf("unknown mode %q", request.Mode)}
		}
		if request.Mode != ModeFormal && model != ModelMayuraV1 {
			return translateRequest{}, &ai.InvalidArgumentError{Argument: "mode", Message: fmt.Sprintf("%s only supports the formal mode", model)}
		}
	}

	return translateRequest{
		Input:               request.Input,
		SourceLanguageCode:  source,
		TargetLanguageCode:  target,
		SpeakerGender:       request.SpeakerGender,
		Mode:                request.Mode,
		Model:               model,
		EnablePreprocessing: request.EnablePreprocessing,
		OutputScript:        request.OutputScript,
		NumeralsFormat:      request.NumeralsFormat,
	}, nil
}
