package sarvam

// Capabilities describes what a chat model supports. They are taken from the
// catalog; unknown models get conservative defaults, and
// [SarvamProvider.WithCapabilities] overrides both.
type Capabilities struct {
	// NativeToolCalling sends tools in the request; otherwise tool calling is simulated
	NativeToolCalling bool
	// Reasoning enables reasoning_effort and reasoning_content
	Reasoning bool
	Streaming bool
}

func (p *SarvamProvider) capabilitiesFor(model string) Capabilities {
	if p.capabilities != nil {
		return *p.capabilities
	}

	info, ok := GetModelInfo(model)
	if !ok || info.Kind != KindChat {
		return Capabilities{Streaming: true}
	}
	return Capabilities{
		NativeToolCalling: info.NativeToolCalling,
		Reasoning:         info.Reasoning,
		Streaming:         true,
	}
}
