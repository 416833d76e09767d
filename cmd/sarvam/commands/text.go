package commands

import (
	"fmt"
	"strings"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai/sarvam"
	"github.com/spf13/cobra"
)

func newTranslateCommand(global *globalOptions) *cobra.Command {
	request := sarvam.TranslateRequest{}

	cmd := &cobra.Command{
		Use:   "translate --to LANGUAGE [text]",
		Short: "Translate text between English and Indic languages",
		Long: `Translate text with Mayura or Sarvam-Translate. Without arguments the
text is read from stdin.

Examples:
  sarvam translate --to hi-IN "Where is the railway station?"
  sarvam translate --from ta-IN --to en-IN --mode formal "வணக்கம்"
  sarvam translate --model sarvam-translate:v1 --to ur-IN "Good evening"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := promptFrom(cmd, args)
			if err != nil {
				return err
			}
			request.Input = input

			response, err := global.newProvider(cmd).Translate(cmd.Context(), request)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), response.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&request.TargetLanguage, "to", "", "Target language code")
	cmd.Flags().StringVar(&request.SourceLanguage, "from", sarvam.LanguageAuto, "Source language code; auto detects it")
	cmd.Flags().StringVarP(&request.Model, "model", "m", sarvam.DefaultTranslationModel, "Translation model")
	cmd.Flags().StringVar(&request.Mode, "mode", "", "Register (formal|modern-colloquial|classic-colloquial|code-mixed)")
	cmd.Flags().StringVar(&request.SpeakerGender, "speaker-gender", "", "Speaker gender for code-mixed output (Male|Female)")
	cmd.Flags().StringVar(&request.OutputScript, "output-script", "", "Output script (roman|fully-native|spoken-form-in-native)")
	cmd.Flags().StringVar(&request.NumeralsFormat, "numerals", "", "Numerals format (international|native)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newTransliterateCommand(global *globalOptions) *cobra.Command {
	request := sarvam.TransliterateRequest{}

	cmd := &cobra.Command{
		Use:   "transliterate --to LANGUAGE [text]",
		Short: "Convert text to another script without translating it",
		Long: `Transliterate text between Roman and Indic scripts.

Examples:
  sarvam transliterate --to hi-IN "main ghar ja raha hoon"
  sarvam transliterate --to en-IN "ನಮಸ್ಕಾರ"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := promptFrom(cmd, args)
			if err != nil {
				return err
			}
			request.Input = input

			response, err := global.newProvider(cmd).Transliterate(cmd.Context(), request)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), response.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&request.TargetLanguage, "to", "", "Target language code")
	cmd.Flags().StringVar(&request.SourceLanguage, "from", sarvam.LanguageAuto, "Source language code; auto detects it")
	cmd.Flags().BoolVar(&request.SpokenForm, "spoken-form", false, "Write numbers and symbols as spoken words")
	cmd.Flags().StringVar(&request.NumeralsFormat, "numerals", "", "Numerals format (international|native)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newIdentifyCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "identify [text]",
		Short: "Detect the language and script of text",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := promptFrom(cmd, args)
			if err != nil {
				return err
			}
			response, err := global.newProvider(cmd).IdentifyLanguage(cmd.Context(), sarvam.LanguageIdentificationRequest{Input: input})
			if err != nil {
				return err
			}
			if response.Language == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "undetermined")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", response.Language, response.Script)
			return nil
		},
	}
}

func newModelsCommand() *cobra.Command {
	kinds := []sarvam.ModelKind{
		sarvam.KindChat,
		sarvam.KindSpeech,
		sarvam.KindTranscription,
		sarvam.KindSpeechTranslation,
		sarvam.KindTranslation,
	}

	return &cobra.Command{
		Use:   "models",
		Short: "List the known Sarvam models and languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, kind := range kinds {
				fmt.Fprintf(out, "%s:\n", kind)
				for _, model := range sarvam.Models(kind) {
					line := "  " + model
					if voices := sarvam.VoicesFor(model); len(voices) > 0 {
						line += " (voices: " + strings.Join(voices, ", ") + ")"
					}
					fmt.Fprintln(out, line)
				}
			}
			fmt.Fprintf(out, "languages: %s\n", strings.Join(sarvam.SupportedLanguages(), ", "))
			return nil
		},
	}
}
