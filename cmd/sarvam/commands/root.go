// Package commands provides the sarvam CLI commands.
package commands

import (
	"strings"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai/sarvam"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability/slogobs"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	apiKey    string
	baseURL   string
	logLevel  string
	logFormat string
}

// NewRootCommand builds the command tree. Each call returns fresh flag state.
func NewRootCommand() *cobra.Command {
	options := &globalOptions{}

	root := &cobra.Command{
		Use:   "sarvam",
		Short: "Sarvam AI from the command line",
		Long: `sarvam calls the Sarvam AI chat, speech and text APIs.

The API key is read from --api-key or SARVAM_API_KEY; a .env file in the
working directory is loaded first.

Examples:
  sarvam chat "What is the capital of Karnataka?"
  sarvam speak --text "नमस्ते" --language hi-IN --out hello.wav
  sarvam transcribe recording.wav
  sarvam translate --to ta-IN "Good morning"`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&options.apiKey, "api-key", "", "Sarvam API subscription key (default $SARVAM_API_KEY)")
	flags.StringVar(&options.baseURL, "base-url", "", "API base URL (default $SARVAM_API_BASE_URL or https://api.sarvam.ai)")
	flags.StringVar(&options.logLevel, "log-level", "", "Log level (trace|debug|info|warn|error), default $SARVAM_LOG_LEVEL")
	flags.StringVar(&options.logFormat, "log-format", "", "Log format (text|json), default $SARVAM_LOG_FORMAT")

	root.AddCommand(
		newChatCommand(options),
		newSpeakCommand(options),
		newTranscribeCommand(options),
		newTranslateAudioCommand(options),
		newTranslateCommand(options),
		newTransliterateCommand(options),
		newIdentifyCommand(options),
		newModelsCommand(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// newProvider configures a provider from the flags, logging to the command's
// stderr.
func (options *globalOptions) newProvider(cmd *cobra.Command) *sarvam.SarvamProvider {
	level := slogobs.GetLogLevelFromEnv()
	if options.logLevel != "" {
		level = slogobs.ParseLogLevel(options.logLevel)
	}
	format := slogobs.GetFormatFromEnv()
	if options.logFormat != "" {
		format = slogobs.ParseFormat(options.logFormat)
	}

	provider := sarvam.New()
	if options.apiKey != "" {
		provider.WithAPIKey(options.apiKey)
	}
	if options.baseURL != "" {
		provider.WithBaseURL(options.baseURL)
	}
	return provider.WithObserver(slogobs.New(
		slogobs.WithLevel(level),
		slogobs.WithFormat(format),
		slogobs.WithOutput(cmd.ErrOrStderr()),
	))
}

// printWarnings reports ignored or adjusted settings on stderr.
func printWarnings(cmd *cobra.Command, warnings []ai.CallWarning) {
	for _, warning := range warnings {
		parts := []string{string(warning.Type)}
		for _, part := range []string{warning.Setting, warning.Tool, warning.Message, warning.Details} {
			if part != "" {
				parts = append(parts, part)
			}
		}
		cmd.PrintErrf("warning: %s\n", strings.Join(parts, ": "))
	}
}
