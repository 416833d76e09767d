package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai/sarvam"
	"github.com/spf13/cobra"
)

// audioMediaTypes maps upload file extensions to the media types the
// speech-to-text endpoints accept.
var audioMediaTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".webm": "audio/webm",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".m4a":  "audio/mp4",
	".amr":  "audio/amr",
}

func newSpeakCommand(global *globalOptions) *cobra.Command {
	var (
		request ai.SpeechRequest
		out     string
		pitch   float64
	)

	cmd := &cobra.Command{
		Use:   "speak [text]",
		Short: "Synthesize speech with Bulbul",
		Long: `Convert text to speech and write the audio to a file.

Examples:
  sarvam speak --text "नमस्ते, आप कैसे हैं?" --language hi-IN --out greeting.wav
  sarvam speak --voice karun --format mp3 --out hello.mp3 "Hello from Bengaluru"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if request.Text == "" {
				request.Text = strings.Join(args, " ")
			}
			if cmd.Flags().Changed("pitch") {
				request.ProviderOptions = map[string]any{"sarvam": sarvam.SpeechOptions{Pitch: &pitch}}
			}

			response, err := global.newProvider(cmd).GenerateSpeech(cmd.Context(), request)
			if err != nil {
				return err
			}
			printWarnings(cmd, response.Warnings)

			if err := os.WriteFile(out, response.Audio, 0o644); err != nil {
				return fmt.Errorf("error writing %s: %w", out, err)
			}
			cmd.PrintErrf("wrote %d bytes of %s to %s\n", len(response.Audio), response.MediaType, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&request.Text, "text", "t", "", "Text to speak (default: the arguments)")
	cmd.Flags().StringVarP(&request.Language, "language", "l", sarvam.LanguageEnglish, "Language code of the text")
	cmd.Flags().StringVarP(&request.Voice, "voice", "v", "", "Speaker voice (default: the model's default voice)")
	cmd.Flags().StringVarP(&request.Model, "model", "m", sarvam.DefaultSpeechModel, "Speech model")
	cmd.Flags().StringVar(&request.OutputFormat, "format", "wav", "Audio codec (wav|mp3|opus|flac|aac|linear16|mulaw|alaw)")
	cmd.Flags().Float64Var(&request.Speed, "pace", 0, "Speaking pace (0.3-3)")
	cmd.Flags().Float64Var(&pitch, "pitch", 0, "Pitch adjustment (-0.75-0.75)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output audio file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// transcriptionFlags are shared by transcribe and translate-audio.
type transcriptionFlags struct {
	model    string
	language string
	diarize  bool
	speakers int
	prompt   string
	segments bool
}

func (flags *transcriptionFlags) request(path string) (ai.TranscriptionRequest, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return ai.TranscriptionRequest{}, fmt.Errorf("error reading %s: %w", path, err)
	}
	return ai.TranscriptionRequest{
		Model:     flags.model,
		Audio:     audio,
		MediaType: audioMediaTypes[strings.ToLower(filepath.Ext(path))],
		Filename:  filepath.Base(path),
		ProviderOptions: map[string]any{"sarvam": sarvam.TranscriptionOptions{
			LanguageCode:    flags.language,
			WithTimestamps:  flags.segments && !flags.diarize,
			WithDiarization: flags.diarize,
			NumSpeakers:     flags.speakers,
			Prompt:          flags.prompt,
		}},
	}, nil
}

func printTranscript(cmd *cobra.Command, flags *transcriptionFlags, response *ai.TranscriptionResponse) {
	printWarnings(cmd, response.Warnings)
	out := cmd.OutOrStdout()
	if !flags.segments && !flags.diarize {
		fmt.Fprintln(out, response.Text)
		return
	}
	for _, segment := range response.Segments {
		speaker := ""
		if segment.SpeakerID != "" {
			speaker = segment.SpeakerID + ": "
		}
		fmt.Fprintf(out, "[%7.2f - %7.2f] %s%s\n", segment.Start, segment.End, speaker, segment.Text)
	}
	if response.Language != "" {
		cmd.PrintErrf("language: %s\n", response.Language)
	}
}

func newTranscribeCommand(global *globalOptions) *cobra.Command {
	flags := &transcriptionFlags{}

	cmd := &cobra.Command{
		Use:   "transcribe FILE",
		Short: "Transcribe an audio file with Saarika",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := flags.request(args[0])
			if err != nil {
				return err
			}
			response, err := global.newProvider(cmd).Transcribe(cmd.Context(), request)
			if err != nil {
				return err
			}
			printTranscript(cmd, flags, response)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.model, "model", "m", sarvam.DefaultTranscriptionModel, "Transcription model")
	cmd.Flags().StringVarP(&flags.language, "language", "l", sarvam.LanguageUnknown, "Language code of the audio; unknown detects it")
	addSegmentFlags(cmd, flags)
	return cmd
}

func newTranslateAudioCommand(global *globalOptions) *cobra.Command {
	flags := &transcriptionFlags{}

	cmd := &cobra.Command{
		Use:   "translate-audio FILE",
		Short: "Transcribe Indic speech straight into English with Saaras",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := flags.request(args[0])
			if err != nil {
				return err
			}
			response, err := global.newProvider(cmd).TranslateSpeech(cmd.Context(), request)
			if err != nil {
				return err
			}
			printTranscript(cmd, flags, response)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.model, "model", "m", sarvam.DefaultSpeechTranslationModel, "Speech translation model")
	cmd.Flags().StringVarP(&flags.prompt, "prompt", "p", "", "Context to condition the translation")
	addSegmentFlags(cmd, flags)
	return cmd
}

func addSegmentFlags(cmd *cobra.Command, flags *transcriptionFlags) {
	cmd.Flags().BoolVar(&flags.diarize, "diarize", false, "Label speakers")
	cmd.Flags().IntVar(&flags.speakers, "speakers", 0, "Expected number of speakers when diarizing")
	cmd.Flags().BoolVar(&flags.segments, "segments", false, "Print timed segments instead of plain text")
}
