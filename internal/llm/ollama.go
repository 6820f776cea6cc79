package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const ollamaChatPath = "/api/chat"

// ollamaClient talks to a self-hosted Ollama server over its chat endpoint.
type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient returns an LLMClient for the Ollama server at cfg.Endpoint.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	dialer := &net.Dialer{Timeout: 5 * time.Second}
	return &ollamaClient{
		cfg:      cfg,
		http:     &http.Client{Transport: &http.Transport{DialContext: dialer.DialContext}},
		observer: observer,
	}
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   json.RawMessage `json:"format,omitempty"`
	Options  map[string]any  `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Model      string        `json:"model"`
	Message    ollamaMessage `json:"message"`
	DoneReason string        `json:"done_reason"`
	Error      string        `json:"error"`
}

func (c *ollamaClient) Name() string { return providerLabel(ProviderOllama, c.cfg.Model) }

func (c *ollamaClient) Configured() bool { return c.cfg.Endpoint != "" }

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	rec := startCall(c.observer, ProviderOllama, c.cfg.Model)

	ctx, cancel := c.cfg.withTimeout(ctx)
	defer cancel()

	chat, err := c.buildChat(req)
	if err != nil {
		return nil, rec.finish(err)
	}

	out, err := c.post(ctx, chat)
	if err != nil {
		return nil, rec.finish(classifyError(ctx, err))
	}
	text := strings.TrimSpace(out.Message.Content)
	if text == "" {
		return nil, rec.finish(ErrEmptyResponse)
	}

	rec.finish(nil)
	return &GenerateResponse{Text: text, Model: out.Model, LatencyMs: rec.elapsedMs()}, nil
}

func (c *ollamaClient) buildChat(req GenerateRequest) (ollamaChatRequest, error) {
	chat := ollamaChatRequest{
		Model: c.cfg.Model,
		Options: map[string]any{
			"temperature": c.cfg.temperatureFor(req),
			"num_predict": c.cfg.maxTokensFor(req),
		},
	}
	if req.SystemPrompt != "" {
		chat.Messages = append(chat.Messages, ollamaMessage{Role: "system", Content: req.SystemPrompt})
	}
	chat.Messages = append(chat.Messages, ollamaMessage{Role: "user", Content: req.UserPrompt})

	// Ollama accepts either a JSON schema or the bare string "json".
	if req.Format == FormatJSON {
		if req.Schema == nil {
			chat.Format = json.RawMessage(`"json"`)
		} else {
			schema, err := json.Marshal(req.Schema)
			if err != nil {
				return chat, fmt.Errorf("marshaling schema: %w", err)
			}
			chat.Format = schema
		}
	}
	return chat, nil
}

func (c *ollamaClient) post(ctx context.Context, chat ollamaChatRequest) (*ollamaChatResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(chat); err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+ollamaChatPath, &buf)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var out ollamaChatResponse
	decodeErr := json.Unmarshal(raw, &out)

	if httpResp.StatusCode != http.StatusOK {
		detail := strings.TrimSpace(string(raw))
		if decodeErr == nil && out.Error != "" {
			detail = out.Error
		}
		return nil, fmt.Errorf("ollama status %d: %s", httpResp.StatusCode, detail)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding response: %w", decodeErr)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("ollama: %s", out.Error)
	}
	return &out, nil
}
