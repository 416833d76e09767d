// Package sarvam implements the ai provider interfaces for the Sarvam AI
// platform (https://api.sarvam.ai).
//
// A single [SarvamProvider] covers every Sarvam endpoint:
//
//   - chat completions, plain and streamed ([SarvamProvider.SendMessage],
//     [SarvamProvider.StreamMessage]), with native or simulated tool calling
//   - text to speech ([SarvamProvider.GenerateSpeech], bulbul models)
//   - speech to text ([SarvamProvider.Transcribe], saarika models)
//   - speech to English text ([SarvamProvider.TranslateSpeech], saaras models)
//   - text translation, transliteration and language identification
//
// Construct it with [New], which reads SARVAM_API_KEY and SARVAM_API_BASE_URL:
//
//	provider := sarvam.New()
//	response, err := provider.SendMessage(ctx, ai.ChatRequest{
//	    Model:    sarvam.ModelSarvamM,
//	    Messages: []ai.Message{{Role: ai.RoleUser, Content: "भारत की राजधानी क्या है?"}},
//	})
//
// Sarvam-specific chat settings travel in ChatRequest.ProviderOptions under the
// "sarvam" key, as a [ChatOptions] value or an equivalent map.
package sarvam
