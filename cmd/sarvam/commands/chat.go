package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai/sarvam"
	"github.com/spf13/cobra"
)

type chatFlags struct {
	model           string
	system          string
	stream          bool
	reasoningEffort string
	wikiGrounding   bool
	temperature     float64
	temperatureSet  bool
	maxTokens       int
}

func newChatCommand(global *globalOptions) *cobra.Command {
	flags := &chatFlags{}

	cmd := &cobra.Command{
		Use:   "chat [prompt]",
		Short: "Send a prompt to a Sarvam chat model",
		Long: `Send a single prompt to a Sarvam chat model and print the reply.
Without arguments the prompt is read from stdin.

Examples:
  sarvam chat "Explain monsoon in one paragraph"
  sarvam chat --stream --reasoning-effort medium "Solve 17 * 23"
  echo "Summarise this" | sarvam chat --model sarvam-30b`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.temperatureSet = cmd.Flags().Changed("temperature")
			prompt, err := promptFrom(cmd, args)
			if err != nil {
				return err
			}
			return runChat(cmd, global.newProvider(cmd), flags, prompt)
		},
	}

	cmd.Flags().StringVarP(&flags.model, "model", "m", sarvam.DefaultChatModel, "Chat model")
	cmd.Flags().StringVarP(&flags.system, "system", "s", "", "System prompt")
	cmd.Flags().BoolVar(&flags.stream, "stream", false, "Print the reply as it is generated")
	cmd.Flags().StringVar(&flags.reasoningEffort, "reasoning-effort", "", "Thinking mode effort (low|medium|high)")
	cmd.Flags().BoolVar(&flags.wikiGrounding, "wiki-grounding", false, "Ground answers in Wikipedia")
	cmd.Flags().Float64Var(&flags.temperature, "temperature", 0, "Sampling temperature (0-2)")
	cmd.Flags().IntVar(&flags.maxTokens, "max-tokens", 0, "Maximum tokens to generate")
	return cmd
}

// promptFrom joins the arguments, or reads stdin when there are none.
func promptFrom(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	input, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	prompt := strings.TrimSpace(string(input))
	if prompt == "" {
		return "", fmt.Errorf("no prompt given")
	}
	return prompt, nil
}

func (flags *chatFlags) request(prompt string) ai.ChatRequest {
	request := ai.ChatRequest{
		Model:        flags.model,
		SystemPrompt: flags.system,
		Messages:     []ai.Message{{Role: ai.RoleUser, Content: prompt}},
	}

	if flags.temperatureSet || flags.maxTokens > 0 {
		request.GenerationConfig = &ai.GenerationConfig{MaxTokens: flags.maxTokens}
		if flags.temperatureSet {
			request.GenerationConfig.Temperature = &flags.temperature
		}
	}

	options := sarvam.ChatOptions{ReasoningEffort: flags.reasoningEffort}
	if flags.wikiGrounding {
		options.WikiGrounding = &flags.wikiGrounding
	}
	request.ProviderOptions = map[string]any{"sarvam": options}
	return request
}

func runChat(cmd *cobra.Command, provider *sarvam.SarvamProvider, flags *chatFlags, prompt string) error {
	request := flags.request(prompt)
	out := cmd.OutOrStdout()

	if !flags.stream {
		response, err := provider.SendMessage(cmd.Context(), request)
		if err != nil {
			return err
		}
		printWarnings(cmd, response.Warnings)
		fmt.Fprintln(out, response.Content)
		return nil
	}

	stream, err := provider.StreamMessage(cmd.Context(), request)
	if err != nil {
		return err
	}
	for event, err := range stream.Iter() {
		if err != nil {
			return err
		}
		switch event.Type {
		case ai.StreamEventStart:
			printWarnings(cmd, event.Warnings)
		case ai.StreamEventTextDelta:
			fmt.Fprint(out, event.Delta)
		case ai.StreamEventError:
			return fmt.Errorf("stream error: %s", event.Error)
		case ai.StreamEventFinish:
			fmt.Fprintln(out)
		}
	}
	return nil
}
