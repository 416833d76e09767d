package sarvam

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/utils"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability"
)

const defaultAudioMediaType = "audio/wav"

var audioExtensions = map[string]string{
	"audio/wav":    "wav",
	"audio/x-wav":  "wav",
	"audio/wave":   "wav",
	"audio/mpeg":   "mp3",
	"audio/mp3":    "mp3",
	"audio/ogg":    "ogg",
	"audio/opus":   "opus",
	"audio/webm":   "webm",
	"audio/flac":   "flac",
	"audio/x-flac": "flac",
	"audio/aac":    "aac",
	"audio/mp4":    "m4a",
	"audio/x-m4a":  "m4a",
	"audio/amr":    "amr",
}

// Transcribe implements ai.TranscriptionProvider with /speech-to-text.
// TranscriptionOptions control the language, word timestamps and diarization.
func (p *SarvamProvider) Transcribe(ctx context.Context, request ai.TranscriptionRequest) (*ai.TranscriptionResponse, error) {
	if err := p.checkAPIKey(); err != nil {
		return nil, err
	}

	model := request.Model
	if model == "" {
		model = DefaultTranscriptionModel
	}
	options, err := providerOptions[TranscriptionOptions](request.ProviderOptions)
	if err != nil {
		return nil, err
	}

	language := options.LanguageCode
	if language == "" {
		language = LanguageUnknown
	}
	if language != LanguageUnknown && !IsValidLanguage(language) {
		return nil, &ai.InvalidArgumentError{Argument: "language_code", Message: fmt.Sprintf("unsupported language code %q", language)}
	}

	form, err := audioForm(request)
	if err != nil {
		return nil, err
	}
	form.AddField("model", model)
	form.AddField("language_code", language)
	addAudioOptions(&form, options)
	if options.WithTimestamps {
		form.AddField("with_timestamps", "true")
	}

	var warnings []ai.CallWarning
	if options.Prompt != "" {
		warnings = append(warnings, ai.CallWarning{
			Type:    ai.WarningUnsupportedSetting,
			Setting: "prompt",
			Details: "prompts are only used by speech translation",
		})
	}

	scope := p.beginCall(ctx, observability.SpanTranscription, speechToTextEndpoint, model,
		observability.String(observability.AttrSpeechLanguage, language),
		observability.Int(observability.AttrSpeechAudioBytes, len(request.Audio)),
	)
	scope.warnings(warnings)

	httpResponse, decoded, err := postMultipart[speechToTextResponse](p, scope, speechToTextEndpoint, form, request.Headers)
	if err == nil && decoded == nil {
		err = &ai.InvalidResponseError{Reason: "empty speech-to-text response"}
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
	if response.Language == "" && language != LanguageUnknown {
		response.Language = language
	}

	switch {
	case decoded.DiarizedTranscript != nil && len(decoded.DiarizedTranscript.Entries) > 0:
		response.Segments = diarizedSegments(decoded.DiarizedTranscript)
	case decoded.Timestamps != nil:
		response.Segments, err = wordSegments(decoded.Timestamps)
		if err != nil {
			scope.end(err)
			return nil, err
		}
	}
	response.DurationInSeconds = segmentsDuration(response.Segments)

	scope.end(nil,
		observability.String(observability.AttrLLMRequestID, response.Metadata.RequestID),
		observability.String(observability.AttrSpeechLanguage, response.Language),
	)
	return response, nil
}

// audioForm starts a multipart form holding the request audio as "file".
func audioForm(request ai.TranscriptionRequest) (utils.MultipartForm, error) {
	if len(request.Audio) == 0 {
		return utils.MultipartForm{}, &ai.InvalidArgumentError{Argument: "audio", Message: "must not be empty"}
	}

	mediaType := request.MediaType
	if mediaType == "" {
		mediaType = defaultAudioMediaType
	}
	filename := request.Filename
	if filename == "" {
		extension, ok := audioExtensions[strings.ToLower(mediaType)]
		if !ok {
			extension = "wav"
		}
		filename = "audio." + extension
	}

	return utils.MultipartForm{
		Files: []utils.FormFile{{
			FieldName:   "file",
			Filename:    filename,
			ContentType: mediaType,
			Data:        request.Audio,
		}},
	}, nil
}

func addAudioOptions(form *utils.MultipartForm, options TranscriptionOptions) {
	if options.WithDiarization {
		form.AddField("with_diarization", "true")
		if options.NumSpeakers > 0 {
			form.AddField("num_speakers", strconv.Itoa(options.NumSpeakers))
		}
	}
}

func diarizedSegments(transcript *diarizedTranscript) []ai.TranscriptSegment {
	segments := make([]ai.TranscriptSegment, 0, len(transcript.Entries))
	for _, entry := range transcript.Entries {
		segments = append(segments, ai.TranscriptSegment{
			Text:      entry.Transcript,
			Start:     entry.StartTimeSeconds,
			End:       entry.EndTimeSeconds,
			SpeakerID: entry.SpeakerID,
		})
	}
	return segments
}

// wordSegments zips the parallel word and time arrays into one segment per word.
func wordSegments(timestamps *wordTimestamps) ([]ai.TranscriptSegment, error) {
	count := len(timestamps.Words)
	if len(timestamps.StartTimeSeconds) != count || len(timestamps.EndTimeSeconds) != count {
		return nil, &ai.InvalidResponseError{
			Reason: fmt.Sprintf("timestamps have %d words, %d start times and %d end times",
				count, len(timestamps.StartTimeSeconds), len(timestamps.EndTimeSeconds)),
		}
	}

	segments := make([]ai.TranscriptSegment, 0, count)
	for index, word := range timestamps.Words {
		segments = append(segments, ai.TranscriptSegment{
			Text:  word,
			Start: timestamps.StartTimeSeconds[index],
			End:   timestamps.EndTimeSeconds[index],
		})
	}
	return segments, nil
}

// segmentsDuration is the latest end time, or nil without segments.
func segmentsDuration(segments []ai.TranscriptSegment) *float64 {
	if len(segments) == 0 {
		return nil
	}
	var duration float64
	for _, segment := range segments {
		duration = max(duration, segment.End)
	}
	return &duration
}
