package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/llm"
	"go.uber.org/zap"
)

// Analyzer turns free-text feedback into a crisis ticket.
type Analyzer interface {
	// Analyze performs exactly one provider request for text. The caller is
	// expected to have rejected blank input already.
	Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error)
}

// AnalysisService is the LLM-backed Analyzer.
type AnalysisService struct {
	client llm.LLMClient
	strict bool
	logger *zap.Logger
}

// AnalysisOption customises an AnalysisService.
type AnalysisOption func(*AnalysisService)

// WithStrictSchema toggles rejection of replies missing required fields.
// It is enabled by default.
func WithStrictSchema(strict bool) AnalysisOption {
	return func(s *AnalysisService) { s.strict = strict }
}

// WithLogger attaches a logger for diagnostic output.
func WithLogger(logger *zap.Logger) AnalysisOption {
	return func(s *AnalysisService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewAnalysisService creates an AnalysisService backed by client.
func NewAnalysisService(client llm.LLMClient, opts ...AnalysisOption) *AnalysisService {
	s := &AnalysisService{client: client, strict: true, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether the underlying provider has a credential.
func (s *AnalysisService) Configured() bool {
	return s.client != nil && s.client.Configured()
}

// ProviderName identifies the provider and model in use.
func (s *AnalysisService) ProviderName() string {
	if s.client == nil {
		return "none"
	}
	return s.client.Name()
}

func (s *AnalysisService) Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	if !s.Configured() {
		return nil, &AnalysisError{Kind: KindConfiguration, Err: llm.ErrMissingCredential}
	}

	temperature := AnalysisTemperature
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		SystemPrompt: SystemInstruction,
		UserPrompt:   text,
		Format:       llm.FormatJSON,
		Schema:       TicketSchema(),
		Temperature:  &temperature,
	})
	if err != nil {
		s.logger.Debug("analysis request failed", zap.Error(err))
		return nil, classifyGenerateError(err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return nil, &AnalysisError{Kind: KindEmptyResponse, Err: llm.ErrEmptyResponse}
	}

	result, err := llm.ExtractJSON[domain.AnalysisResult](resp.Text, nil)
	if err != nil {
		s.logger.Debug("analysis reply not parseable", zap.Error(err), zap.Int("bytes", len(resp.Text)))
		return nil, &AnalysisError{Kind: KindProvider, Err: err}
	}

	if s.strict {
		if missing := result.MissingFields(); len(missing) > 0 {
			return nil, &AnalysisError{
				Kind:   KindSchemaIncomplete,
				Fields: missing,
				Err:    fmt.Errorf("%w: missing %s", llm.ErrInvalidOutput, strings.Join(missing, ", ")),
			}
		}
	}

	return &result, nil
}

func classifyGenerateError(err error) *AnalysisError {
	switch {
	case errors.Is(err, llm.ErrMissingCredential):
		return &AnalysisError{Kind: KindConfiguration, Err: err}
	case errors.Is(err, llm.ErrEmptyResponse):
		return &AnalysisError{Kind: KindEmptyResponse, Err: err}
	default:
		return &AnalysisError{Kind: KindProvider, Err: err}
	}
}
