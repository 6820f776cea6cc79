package domain

import (
	"strings"
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "Positivo (Elogio)"
	SentimentNeutral  Sentiment = "Neutro (Sugestão de Recurso)"
	SentimentNegative Sentiment = "Negativo (Crítico/Usabilidade)"
)

type Priority string

const (
	PriorityMaximum Priority = "Máxima (Bloqueador)"
	PriorityHigh    Priority = "Alta (Degradação)"
	PriorityMedium  Priority = "Média (Melhoria)"
	PriorityLow     Priority = "Baixa (Qualidade de Vida)"
)

type Team string

const (
	TeamFrontEnd Team = "Desenvolvimento Front-End (UI/UX)"
	TeamBackEnd  Team = "Desenvolvimento Back-End (Performance/API)"
	TeamSupport  Team = "Suporte ao Cliente"
	TeamProduct  Team = "Time de Produto"
)

// ExampleFeedback is the sample text offered by the "load example" action.
const ExampleFeedback = "O dashboard está bom, mas a seção de Métricas de Produtividade está difícil de entender e as cores usadas não ajudam a diferenciar os dados. Além disso, seria ótimo se o chat tivesse notificações de leitura, isso facilitaria muito a comunicação."

// Sentiments, Priorities and Teams list the closed enumerations in the
// order they are offered to the provider.
var (
	Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}
	Priorities = []Priority{PriorityMaximum, PriorityHigh, PriorityMedium, PriorityLow}
	Teams      = []Team{TeamFrontEnd, TeamBackEnd, TeamSupport, TeamProduct}
)

// PriorityLevel is the urgency tier derived from the free priority text.
type PriorityLevel string

const (
	LevelCritical PriorityLevel = "critical"
	LevelHigh     PriorityLevel = "high"
	LevelMedium   PriorityLevel = "medium"
	LevelLow      PriorityLevel = "low"
)

// Tone is the display polarity derived from the sentiment text.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
)

// Required JSON field names of an analysis ticket.
const (
	FieldTicketID        = "ticket_id"
	FieldSentiment       = "sentimento_refinado"
	FieldPriority        = "prioridade_interna"
	FieldTeam            = "equipe_responsavel"
	FieldImpact          = "analise_impacto"
	FieldImmediateAction = "sumario_acao_imediata"
	FieldRelatedNeed     = "necessidade_relacionada"
	FieldUserResponse    = "resposta_usuario_final"
)

// RequiredFields lists every field a provider reply must carry.
var RequiredFields = []string{
	FieldTicketID,
	FieldSentiment,
	FieldPriority,
	FieldTeam,
	FieldImpact,
	FieldImmediateAction,
	FieldRelatedNeed,
	FieldUserResponse,
}

// AnalysisResult is the structured crisis ticket produced for one piece of
// feedback. Enumerated fields are kept as plain strings because the
// provider is trusted, not verified, to respect the enumerations.
type AnalysisResult struct {
	TicketID        string `json:"ticket_id" yaml:"ticket_id"`
	Sentiment       string `json:"sentimento_refinado" yaml:"sentimento_refinado"`
	Priority        string `json:"prioridade_interna" yaml:"prioridade_interna"`
	Team            string `json:"equipe_responsavel" yaml:"equipe_responsavel"`
	Impact          string `json:"analise_impacto" yaml:"analise_impacto"`
	ImmediateAction string `json:"sumario_acao_imediata" yaml:"sumario_acao_imediata"`
	RelatedNeed     string `json:"necessidade_relacionada" yaml:"necessidade_relacionada"`
	UserResponse    string `json:"resposta_usuario_final" yaml:"resposta_usuario_final"`
}

// FieldValues returns the result's fields keyed by JSON name.
func (r AnalysisResult) FieldValues() map[string]string {
	return map[string]string{
		FieldTicketID:        r.TicketID,
		FieldSentiment:       r.Sentiment,
		FieldPriority:        r.Priority,
		FieldTeam:            r.Team,
		FieldImpact:          r.Impact,
		FieldImmediateAction: r.ImmediateAction,
		FieldRelatedNeed:     r.RelatedNeed,
		FieldUserResponse:    r.UserResponse,
	}
}

// MissingFields returns the JSON names of required fields that are blank,
// in RequiredFields order.
func (r AnalysisResult) MissingFields() []string {
	values := r.FieldValues()
	var missing []string
	for _, f := range RequiredFields {
		if strings.TrimSpace(values[f]) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// PriorityLevel classifies the priority text by its leading keyword.
// Anything unrecognised is treated as low.
func (r AnalysisResult) PriorityLevel() PriorityLevel {
	switch {
	case strings.Contains(r.Priority, "Máxima"):
		return LevelCritical
	case strings.Contains(r.Priority, "Alta"):
		return LevelHigh
	case strings.Contains(r.Priority, "Média"):
		return LevelMedium
	default:
		return LevelLow
	}
}

// SentimentTone classifies the sentiment text. Anything that is neither
// negative nor neutral renders as positive.
func (r AnalysisResult) SentimentTone() Tone {
	switch {
	case strings.Contains(r.Sentiment, "Negativo"):
		return ToneNegative
	case strings.Contains(r.Sentiment, "Neutro"):
		return ToneNeutral
	default:
		return TonePositive
	}
}

// ShortPriority returns the first word of the priority text ("Média").
func (r AnalysisResult) ShortPriority() string {
	fields := strings.Fields(r.Priority)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func IsKnownSentiment(s string) bool {
	for _, v := range Sentiments {
		if string(v) == s {
			return true
		}
	}
	return false
}

func IsKnownPriority(s string) bool {
	for _, v := range Priorities {
		if string(v) == s {
			return true
		}
	}
	return false
}

func IsKnownTeam(s string) bool {
	for _, v := range Teams {
		if string(v) == s {
			return true
		}
	}
	return false
}

// FeedbackEntry is one ledger record: the submitted text and the ticket the
// provider produced for it. ID is generated locally and is unique even when
// the provider repeats a ticket_id.
type FeedbackEntry struct {
	ID           string         `json:"id" yaml:"id"`
	OriginalText string         `json:"original_text" yaml:"original_text"`
	CapturedAt   time.Time      `json:"captured_at" yaml:"captured_at"`
	Analysis     AnalysisResult `json:"analysis" yaml:"analysis"`
}
