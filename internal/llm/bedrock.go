package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// bedrockInvoker is the subset of the Bedrock runtime client used here.
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// bedrockClient implements LLMClient for Anthropic models hosted on AWS
// Bedrock. Credentials come from the AWS default chain.
type bedrockClient struct {
	cfg      LLMConfig
	invoker  bedrockInvoker
	observer Observer
}

// NewBedrockClient creates an LLMClient backed by bedrockruntime.InvokeModel.
// The SDK retryer is limited to one attempt.
func NewBedrockClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithRetryMaxAttempts(1),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return newBedrockClientWith(cfg, bedrockruntime.NewFromConfig(awsCfg), observer), nil
}

func newBedrockClientWith(cfg LLMConfig, invoker bedrockInvoker, observer Observer) *bedrockClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &bedrockClient{cfg: cfg, invoker: invoker, observer: observer}
}

type bedrockMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	Temperature      float64          `json:"temperature"`
	System           string           `json:"system,omitempty"`
	Messages         []bedrockMessage `json:"messages"`
}

type bedrockContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type bedrockResponse struct {
	Model   string                `json:"model"`
	Content []bedrockContentBlock `json:"content"`
}

func (c *bedrockClient) Name() string { return providerLabel(ProviderBedrock, c.cfg.Model) }

// Configured is always true: AWS credentials are resolved lazily by the
// SDK and a missing chain surfaces as a provider error.
func (c *bedrockClient) Configured() bool { return true }

func (c *bedrockClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	rec := startCall(c.observer, ProviderBedrock, c.cfg.Model)

	ctx, cancel := c.cfg.withTimeout(ctx)
	defer cancel()

	body, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return nil, rec.finish(fmt.Errorf("marshaling request: %w", err))
	}

	out, err := c.invoker.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.cfg.Model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, rec.finish(classifyError(ctx, err))
	}

	var resp bedrockResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, rec.finish(fmt.Errorf("%w: decoding bedrock response: %v", ErrProviderRequest, err))
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return nil, rec.finish(ErrEmptyResponse)
	}

	model := c.cfg.Model
	if resp.Model != "" {
		model = resp.Model
	}

	rec.finish(nil)
	return &GenerateResponse{Text: text, Model: model, LatencyMs: rec.elapsedMs()}, nil
}

func (c *bedrockClient) buildRequest(req GenerateRequest) bedrockRequest {
	return bedrockRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        c.cfg.maxTokensFor(req),
		Temperature:      c.cfg.temperatureFor(req),
		System:           schemaInstruction(req.SystemPrompt, req),
		Messages: []bedrockMessage{
			{Role: "user", Content: req.UserPrompt},
		},
	}
}
