package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicClient implements LLMClient with the Anthropic Messages API.
// Claude has no response-schema parameter, so the schema travels in the
// system prompt and the reply is parsed leniently by ExtractJSON.
type anthropicClient struct {
	cfg      LLMConfig
	client   anthropic.Client
	observer Observer
}

// NewAnthropicClient creates an LLMClient for the Anthropic API. The SDK's
// automatic retries are disabled: each Generate is a single attempt.
func NewAnthropicClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if observer == nil {
		observer = NoopObserver{}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}

	return &anthropicClient{
		cfg:      cfg,
		client:   anthropic.NewClient(opts...),
		observer: observer,
	}, nil
}

func (c *anthropicClient) Name() string { return providerLabel(ProviderAnthropic, c.cfg.Model) }

func (c *anthropicClient) Configured() bool { return c.cfg.APIKey != "" }

func (c *anthropicClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	rec := startCall(c.observer, ProviderAnthropic, c.cfg.Model)

	ctx, cancel := c.cfg.withTimeout(ctx)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   int64(c.cfg.maxTokensFor(req)),
		Temperature: anthropic.Float(c.cfg.temperatureFor(req)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}
	if system := schemaInstruction(req.SystemPrompt, req); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, rec.finish(classifyError(ctx, err))
	}

	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return nil, rec.finish(ErrEmptyResponse)
	}

	rec.finish(nil)
	return &GenerateResponse{Text: text, Model: string(message.Model), LatencyMs: rec.elapsedMs()}, nil
}
