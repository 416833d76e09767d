package sarvam

import (
	"context"
	"encoding/base64"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability"
)

const (
	minPace = 0.3
	maxPace = 3.0

	defaultAudioCodec = "wav"
)

// audioMediaTypes maps output_audio_codec values to media types.
var audioMediaTypes = map[string]string{
	"wav":      "audio/wav",
	"mp3":      "audio/mpeg",
	"linear16": "audio/l16",
	"mulaw":    "audio/basic",
	"alaw":     "audio/x-alaw-basic",
	"opus":     "audio/opus",
	"flac":     "audio/flac",
	"aac":      "audio/aac",
}

// GenerateSpeech implements ai.SpeechProvider with /text-to-speech. The
// request's Speed maps to pace; Instructions are not supported. Audio
// returned in several chunks is concatenated in order.
func (p *SarvamProvider) GenerateSpeech(ctx context.Context, request ai.SpeechRequest) (*ai.SpeechResponse, error) {
	if err := p.checkAPIKey(); err != nil {
		return nil, err
	}
	body, codec, warnings, err := p.speechArgs(request)
	if err != nil {
		return nil, err
	}

	scope := p.beginCall(ctx, observability.SpanSpeech, textToSpeechEndpoint, body.Model,
		observability.String(observability.AttrSpeechVoice, body.Speaker),
		observability.String(observability.AttrSpeechLanguage, body.TargetLanguageCode),
		observability.Int(observability.AttrTextInputLength, utf8.RuneCountInString(body.Text)),
	)
	scope.warnings(warnings)

	httpResponse, decoded, err := postJSON[textToSpeechResponse](p, scope, textToSpeechEndpoint, body, request.Headers)
	if err == nil {
		err = validateSpeechResponse(decoded)
	}
	if err != nil {
		scope.end(err)
		return nil, err
	}

	var audio []byte
	for index, chunk := range decoded.Audios {
		data, decodeErr := base64.StdEncoding.DecodeString(chunk)
		if decodeErr != nil {
			err = &ai.InvalidResponseError{Reason: fmt.Sprintf("audio chunk %d is not valid base64: %v", index, decodeErr)}
			scope.end(err)
			return nil, err
		}
		audio = append(audio, data...)
	}

	response := &ai.SpeechResponse{
		Audio:     audio,
		MediaType: audioMediaTypes[codec],
		Warnings:  warnings,
		Metadata:  p.responseMetadata("", body.Model, 0, decoded.RequestID, httpResponse),
	}
	scope.end(nil,
		observability.String(observability.AttrLLMRequestID, response.Metadata.RequestID),
		observability.Int(observability.AttrSpeechAudioBytes, len(audio)),
	)
	return response, nil
}

func validateSpeechResponse(response *textToSpeechResponse) error {
	if response == nil || len(response.Audios) == 0 {
		return &ai.InvalidResponseError{Reason: "text-to-speech response has no audio"}
	}
	return nil
}

// speechArgs validates request and builds the request body. It also returns
// the output codec.
func (p *SarvamProvider) speechArgs(request ai.SpeechRequest) (textToSpeechRequest, string, []ai.CallWarning, error) {
	var warnings []ai.CallWarning

	model := request.Model
	if model == "" {
		model = DefaultSpeechModel
	}
	info, known := GetModelInfo(model)

	if request.Text == "" {
		return textToSpeechRequest{}, "", nil, &ai.InvalidArgumentError{Argument: "text", Message: "must not be empty"}
	}
	if known && info.MaxInputChars > 0 {
		if length := utf8.RuneCountInString(request.Text); length > info.MaxInputChars {
			return textToSpeechRequest{}, "", nil, &ai.InvalidArgumentError{
				Argument: "text",
				Message:  fmt.Sprintf("%d characters exceeds the %d character limit of %s", length, info.MaxInputChars, model),
			}
		}
	}

	language := request.Language
	if language == "" {
		language = LanguageEnglish
	}
	if !IsValidLanguage(language) {
		return textToSpeechRequest{}, "", nil, &ai.InvalidArgumentError{Argument: "language", Message: fmt.Sprintf("unsupported language code %q", language)}
	}

	options, err := providerOptions[SpeechOptions](request.ProviderOptions)
	if err != nil {
		return textToSpeechRequest{}, "", nil, err
	}

	body := textToSpeechRequest{
		Text:                request.Text,
		TargetLanguageCode:  language,
		Model:               model,
		Pitch:               options.Pitch,
		Loudness:            options.Loudness,
		SpeechSampleRate:    options.SampleRate,
		EnablePreprocessing: options.EnablePreprocessing,
	}

	var voiceWarning *ai.CallWarning
	body.Speaker, voiceWarning = resolveVoice(model, request.Voice)
	if voiceWarning != nil {
		warnings = append(warnings, *voiceWarning)
	}

	if request.Speed != 0 {
		pace := min(max(request.Speed, minPace), maxPace)
		if pace != request.Speed {
			warnings = append(warnings, ai.CallWarning{
				Type:    ai.WarningUnsupportedSetting,
				Setting: "speed",
				Details: fmt.Sprintf("speed %g is outside [%g, %g] and was clamped to %g", request.Speed, minPace, maxPace, pace),
			})
		}
		body.Pace = &pace
	}

	if request.Instructions != "" {
		warnings = append(warnings, ai.CallWarning{
			Type:    ai.WarningUnsupportedSetting,
			Setting: "instructions",
			Details: "speech instructions are not supported",
		})
	}

	codec := request.OutputFormat
	if codec == "" {
		codec = defaultAudioCodec
	}
	if _, ok := audioMediaTypes[codec]; !ok {
		warnings = append(warnings, ai.CallWarning{
			Type:    ai.WarningUnsupportedSetting,
			Setting: "outputFormat",
			Details: fmt.Sprintf("output format %q is not supported, using %s", codec, defaultAudioCodec),
		})
		codec = defaultAudioCodec
	}
	body.OutputAudioCodec = codec

	return body, codec, warnings, nil
}

// resolveVoice picks the speaker for model. Unknown voices fall back to the
// model's default with a warning; models outside the catalog take voice as is.
func resolveVoice(model, voice string) (string, *ai.CallWarning) {
	voices := VoicesFor(model)
	if len(voices) == 0 {
		if voice == "" {
			return DefaultVoice, nil
		}
		return voice, nil
	}

	fallback := voices[0]
	if slices.Contains(voices, DefaultVoice) {
		fallback = DefaultVoice
	}
	if voice == "" {
		return fallback, nil
	}
	if slices.Contains(voices, voice) {
		return voice, nil
	}
	return fallback, &ai.CallWarning{
		Type:    ai.WarningUnsupportedSetting,
		Setting: "voice",
		Details: fmt.Sprintf("voice %q is not available for %s, using %s", voice, model, fallback),
	}
}
