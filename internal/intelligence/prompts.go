package intelligence

import (
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/llm"
)

// SystemInstruction is the fixed role prompt sent with every analysis.
const SystemInstruction = `Você é o Módulo de Análise e Gerenciamento de Crises (MAC), a camada de inteligência de negócios mais avançada do aplicativo. Sua função é processar feedback de usuários em tempo real, transformando texto livre em um ticket de ação completo e priorizado.

Analise o texto fornecido e gere uma saída estritamente em JSON seguindo o esquema fornecido e os 8 pontos de análise definidos. Gere o ticket_id dinamicamente com base na data atual.`

// AnalysisTemperature biases the provider toward schema-conformant output.
const AnalysisTemperature = 0.2

// TicketSchema returns the response schema for a crisis ticket. All eight
// fields are required; sentiment, priority and team are closed enumerations.
func TicketSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			domain.FieldTicketID: {
				Type:        llm.TypeString,
				Description: "ID único e sequencial (Ex: MAC-20251211-001A).",
			},
			domain.FieldSentiment: {
				Type:        llm.TypeString,
				Enum:        enumValues(domain.Sentiments),
				Description: "Classificação refinada do sentimento.",
			},
			domain.FieldPriority: {
				Type:        llm.TypeString,
				Enum:        enumValues(domain.Priorities),
				Description: "Nível de urgência para a equipe interna.",
			},
			domain.FieldTeam: {
				Type:        llm.TypeString,
				Enum:        enumValues(domain.Teams),
				Description: "Equipe que deve receber o ticket.",
			},
			domain.FieldImpact: {
				Type:        llm.TypeString,
				Description: "Descrição do potencial impacto deste feedback.",
			},
			domain.FieldImmediateAction: {
				Type:        llm.TypeString,
				Description: "Ação técnica clara e detalhada.",
			},
			domain.FieldRelatedNeed: {
				Type:        llm.TypeString,
				Description: "Recurso ou correção secundária relacionada.",
			},
			domain.FieldUserResponse: {
				Type:        llm.TypeString,
				Description: "Mensagem de agradecimento e confirmação para o usuário.",
			},
		},
		Required:         append([]string(nil), domain.RequiredFields...),
		PropertyOrdering: append([]string(nil), domain.RequiredFields...),
	}
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
