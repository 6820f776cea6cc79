package llm

import (
	"context"
	"time"
)

// ResponseFormat asks the provider for a particular reply encoding.
type ResponseFormat string

const (
	FormatText ResponseFormat = "text"
	FormatJSON ResponseFormat = "json"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	SystemPrompt string
	UserPrompt   string
	Format       ResponseFormat
	Schema       *Schema  // only honoured with FormatJSON
	Temperature  *float64 // nil uses config default
	MaxTokens    *int     // nil uses config default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a hosted language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	// Each call performs exactly one request against the provider.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Configured reports whether a credential is present. When false,
	// Generate fails with ErrMissingCredential without any network I/O.
	Configured() bool

	// Name identifies the provider and model for logs and the UI header.
	Name() string
}

func (c LLMConfig) temperatureFor(req GenerateRequest) float64 {
	if req.Temperature != nil {
		return *req.Temperature
	}
	return c.Temperature
}

func (c LLMConfig) maxTokensFor(req GenerateRequest) int {
	if req.MaxTokens != nil {
		return *req.MaxTokens
	}
	return c.MaxTokens
}

// withTimeout bounds ctx only when a positive timeout is configured;
// otherwise the transport's own defaults apply.
func (c LLMConfig) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.TimeoutMs <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(c.TimeoutMs)*time.Millisecond)
}

// unconfiguredClient stands in for a provider whose credential is missing.
type unconfiguredClient struct {
	cfg LLMConfig
}

func newUnconfiguredClient(cfg LLMConfig) LLMClient {
	return &unconfiguredClient{cfg: cfg}
}

func (c *unconfiguredClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, ErrMissingCredential
}

func (c *unconfiguredClient) Configured() bool { return false }

func (c *unconfiguredClient) Name() string {
	return providerLabel(c.cfg.Provider, c.cfg.Model) + " [sem credencial]"
}
