package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// geminiClient implements LLMClient on top of the Google GenAI SDK, using
// native structured output (response MIME type + response schema).
type geminiClient struct {
	cfg      LLMConfig
	client   *genai.Client
	observer Observer
}

// NewGeminiClient creates an LLMClient for the Gemini API. cfg.Endpoint, when
// set, overrides the API base URL.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if observer == nil {
		observer = NoopObserver{}
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint + "/"}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &geminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *geminiClient) Name() string { return providerLabel(ProviderGemini, c.cfg.Model) }

func (c *geminiClient) Configured() bool { return c.cfg.APIKey != "" }

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	rec := startCall(c.observer, ProviderGemini, c.cfg.Model)

	ctx, cancel := c.cfg.withTimeout(ctx)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(req.UserPrompt), c.generationConfig(req))
	if err != nil {
		return nil, rec.finish(classifyError(ctx, err))
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, rec.finish(ErrEmptyResponse)
	}

	model := c.cfg.Model
	if resp.ModelVersion != "" {
		model = resp.ModelVersion
	}

	rec.finish(nil)
	return &GenerateResponse{Text: text, Model: model, LatencyMs: rec.elapsedMs()}, nil
}

func (c *geminiClient) generationConfig(req GenerateRequest) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.cfg.temperatureFor(req))),
	}
	if n := c.cfg.maxTokensFor(req); n > 0 {
		gc.MaxOutputTokens = int32(n)
	}
	if req.SystemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.Format == FormatJSON {
		gc.ResponseMIMEType = "application/json"
		if req.Schema != nil {
			gc.ResponseSchema = toGenAISchema(req.Schema)
		}
	}
	return gc
}

// toGenAISchema translates a Schema into the Gemini OpenAPI dialect.
func toGenAISchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Description:      s.Description,
		Enum:             s.Enum,
		Required:         s.Required,
		PropertyOrdering: s.PropertyOrdering,
	}
	switch s.Type {
	case TypeObject:
		out.Type = genai.TypeObject
	default:
		out.Type = genai.TypeString
	}
	if len(s.Enum) > 0 {
		out.Format = "enum"
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenAISchema(prop)
		}
	}
	return out
}
