package llm

import (
	"context"
	"fmt"
)

// NewClient creates the LLMClient selected by cfg.Provider. A provider that
// needs an API key but has none yields an unconfigured client instead of an
// error, so the missing credential is reported per analysis attempt.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	cfg = cfg.withProviderDefaults()

	if !cfg.HasCredential() {
		return newUnconfiguredClient(cfg), nil
	}

	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	case ProviderAnthropic:
		return NewAnthropicClient(cfg, observer)
	case ProviderBedrock:
		return NewBedrockClient(ctx, cfg, observer)
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: gemini, anthropic, bedrock, ollama)", ErrUnknownProvider, cfg.Provider)
	}
}
