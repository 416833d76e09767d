package sarvam

import (
	"context"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability"
)

// TranslateSpeech transcribes audio in any supported language straight into
// English with /speech-to-text-translate. The response Text is the English
// transcript and Language the detected source language. Prompt, diarization
// and speaker count come from TranscriptionOptions.
func (p *SarvamProvider) TranslateSpeech(ctx context.Context, request ai.TranscriptionRequest) (*ai.TranscriptionResponse, error) {
	if err := p.checkAPIKey(); err != nil {
		return nil, err
	}

	model := request.Model
	if model == "" {
		model = DefaultSpeechTranslationModel
	}
	options, err := providerOptions[TranscriptionOptions](request.ProviderOptions)
	if err != nil {
		return nil, err
	}

	form, err := audioForm(request)
	if err != nil {
		return nil, err
	}
	form.AddField("model", model)
	form.AddField("prompt", options.Prompt)
	addAudioOptions(&form, options)

	var warnings []ai.CallWarning
	if options.WithTimestamps {
		warnings = append(warnings, ai.CallWarning{
			Type:    ai.WarningUnsupportedSetting,
			Setting: "withTimestamps",
			Details: "speech translation does not return word timestamps",
		})
	}
	if options.LanguageCode != "" {
		warnings = append(warnings, ai.CallWarning{
			Type:    ai.WarningUnsupportedSetting,
			Setting: "languageCode",
			Details: "speech translation detects the source language",
		})
	}

	scope := p.beginCall(ctx, observability.SpanSpeechTranslation, speechToTextTranslateEndpoint, model,
		observability.Int(observability.AttrSpeechAudioBytes, len(request.Audio)),
	)
	scope.warnings(warnings)

	httpResponse, decoded, err := postMultipart[speechToTextTranslateResponse](p, scope, speechToTextTranslateEndpoint, form, request.Headers)
	if err == nil && decoded == nil {
		err = &ai.InvalidResponseError{Reason: "empty speech translation response"}
	}
	if err != nil {
		scope.end(err)
		return nil, err
	}

	response := &ai.TranscriptionResponse{
		Text:     decoded.Transcript,
		Language: deref(decoded.LanguageCode),
		Warnings: warnings,
		Metadata: p.responseMetadata("", model, 0, decoded.RequestID, httpResponse),
	}
	if decoded.DiarizedTranscript != nil {
		response.Segments = diarizedSegments(decoded.DiarizedTranscript)
		response.DurationInSeconds = segmentsDuration(response.Segments)
	}

	scope.end(nil,
		observability.String(observability.AttrLLMRequestID, response.Metadata.RequestID),
		observability.String(observability.AttrSpeechLanguage, response.Language),
	)
	return response, nil
}
