package testutil

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
)

// ExampleFeedback is the sample relato used across tests.
const ExampleFeedback = domain.ExampleFeedback

var testTicketCounter atomic.Int64

// Result options
type ResultOption func(*domain.AnalysisResult)

func WithTicketID(id string) ResultOption {
	return func(r *domain.AnalysisResult) {
		r.TicketID = id
	}
}

func WithPriority(p domain.Priority) ResultOption {
	return func(r *domain.AnalysisResult) {
		r.Priority = string(p)
	}
}

func WithSentiment(s domain.Sentiment) ResultOption {
	return func(r *domain.AnalysisResult) {
		r.Sentiment = string(s)
	}
}

func WithTeam(t domain.Team) ResultOption {
	return func(r *domain.AnalysisResult) {
		r.Team = string(t)
	}
}

// WithoutField blanks the field with the given JSON name.
func WithoutField(name string) ResultOption {
	return func(r *domain.AnalysisResult) {
		switch name {
		case domain.FieldTicketID:
			r.TicketID = ""
		case domain.FieldSentiment:
			r.Sentiment = ""
		case domain.FieldPriority:
			r.Priority = ""
		case domain.FieldTeam:
			r.Team = ""
		case domain.FieldImpact:
			r.Impact = ""
		case domain.FieldImmediateAction:
			r.ImmediateAction = ""
		case domain.FieldRelatedNeed:
			r.RelatedNeed = ""
		case domain.FieldUserResponse:
			r.UserResponse = ""
		}
	}
}

// NewTestResult returns a fully populated ticket modelled on the example
// feedback, with a unique ticket ID unless overridden.
func NewTestResult(opts ...ResultOption) domain.AnalysisResult {
	n := testTicketCounter.Add(1)
	r := domain.AnalysisResult{
		TicketID:        fmt.Sprintf("MAC-20251211-%03dT", n),
		Sentiment:       string(domain.SentimentNeutral),
		Priority:        string(domain.PriorityMedium),
		Team:            string(domain.TeamFrontEnd),
		Impact:          "Usuários não conseguem interpretar as métricas de produtividade.",
		ImmediateAction: "Revisar a paleta de cores e os rótulos da seção de Métricas.",
		RelatedNeed:     "Notificações de leitura no chat.",
		UserResponse:    "Obrigado pelo feedback! Nossa equipe já está avaliando as melhorias.",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// ExampleResult is the ticket for ExampleFeedback.
func ExampleResult() domain.AnalysisResult {
	return NewTestResult(WithTicketID("MAC-20251211-001A"))
}

// ResultJSON renders r as a provider reply body.
func ResultJSON(r domain.AnalysisResult) string {
	data, _ := json.Marshal(r)
	return string(data)
}

// NewTestEntry wraps r in a FeedbackEntry captured at capturedAt.
func NewTestEntry(text string, r domain.AnalysisResult, capturedAt time.Time) domain.FeedbackEntry {
	return domain.FeedbackEntry{
		ID:           uuid.NewString(),
		OriginalText: text,
		CapturedAt:   capturedAt,
		Analysis:     r,
	}
}
