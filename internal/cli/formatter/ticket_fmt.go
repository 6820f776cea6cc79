package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
)

const defaultCardWidth = 72

// FormatTicketCard renders an analysis result as a bordered card. Empty
// fields show Placeholder. width <= 0 uses a default width.
func FormatTicketCard(r domain.AnalysisResult, width int) string {
	if width <= 0 {
		width = defaultCardWidth
	}
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder

	b.WriteString(Dim("TICKET ID"))
	b.WriteString("\n")
	b.WriteString(StyleBold.Render(orDash(r.TicketID)))
	b.WriteString("  ")
	b.WriteString(PriorityBadge(r))
	b.WriteString("\n\n")

	half := (inner - 2) / 2
	sentiment := labelled("Sentimento Refinado", SentimentStyle(r.SentimentTone()).Bold(true).Render(orDash(r.Sentiment)), half)
	team := labelled("Equipe Responsável", StyleBold.Render(orDash(r.Team)), half)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sentiment, "  ", team))
	b.WriteString("\n\n")

	b.WriteString(StyleOrange.Bold(true).Render("▲ Análise de Impacto"))
	b.WriteString("\n")
	b.WriteString(Wrap(orDash(r.Impact), inner))
	b.WriteString("\n\n")

	b.WriteString(StylePurple.Bold(true).Render("⚡ Ação Imediata Sugerida"))
	b.WriteString("\n")
	b.WriteString(Wrap(orDash(r.ImmediateAction), inner))
	b.WriteString("\n\n")

	b.WriteString(StyleGreen.Bold(true).Render("↳ Necessidade Relacionada (Raiz)"))
	b.WriteString("\n")
	b.WriteString(Wrap(orDash(r.RelatedNeed), inner))
	b.WriteString("\n\n")

	b.WriteString(StyleDim.Render(strings.Repeat("─", inner)))
	b.WriteString("\n")
	b.WriteString(Dim("DRAFT DE RESPOSTA AO USUÁRIO"))
	b.WriteString("\n")
	b.WriteString(StyleItalic.Render(Wrap("\""+orDash(r.UserResponse)+"\"", inner)))

	return renderBox("", b.String(), width, PriorityColor(r.PriorityLevel()))
}

func labelled(label, value string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(Dim(strings.ToUpper(label)) + "\n" + value)
}

// FormatTicketPlain renders r as plain "label: value" lines for
// non-interactive output.
func FormatTicketPlain(r domain.AnalysisResult) string {
	rows := [][2]string{
		{"Ticket ID", r.TicketID},
		{"Prioridade", r.Priority},
		{"Sentimento", r.Sentiment},
		{"Equipe", r.Team},
		{"Análise de Impacto", r.Impact},
		{"Ação Imediata", r.ImmediateAction},
		{"Necessidade Relacionada", r.RelatedNeed},
		{"Resposta ao Usuário", r.UserResponse},
	}
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(row[0])
		b.WriteString(": ")
		b.WriteString(orDash(row[1]))
		b.WriteString("\n")
	}
	return b.String()
}
