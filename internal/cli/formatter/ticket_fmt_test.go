package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatTicketCard_ShowsEveryField(t *testing.T) {
	r := testutil.ExampleResult()

	out := FormatTicketCard(r, 80)
	flat := squash(out)

	assert.Contains(t, flat, "TICKET ID")
	assert.Contains(t, flat, "MAC-20251211-001A")
	assert.Contains(t, flat, "MÉDIA (MELHORIA)")
	assert.Contains(t, flat, r.Sentiment)
	assert.Contains(t, flat, r.Team)
	assert.Contains(t, flat, squash(r.Impact))
	assert.Contains(t, flat, squash(r.ImmediateAction))
	assert.Contains(t, flat, squash(r.RelatedNeed))
	assert.Contains(t, flat, squash(r.UserResponse))

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 80)
	}
}

func TestFormatTicketCard_MissingFieldsUsePlaceholder(t *testing.T) {
	out := stripANSI(FormatTicketCard(domain.AnalysisResult{TicketID: "MAC-X"}, 60))

	assert.Contains(t, out, "MAC-X")
	assert.GreaterOrEqual(t, strings.Count(out, Placeholder), 7)
}

func TestFormatTicketCard_ZeroWidthUsesDefault(t *testing.T) {
	out := FormatTicketCard(testutil.NewTestResult(), 0)
	assert.Equal(t, defaultCardWidth, lipgloss.Width(strings.Split(out, "\n")[0]))
}

func TestFormatTicketPlain(t *testing.T) {
	r := testutil.NewTestResult(testutil.WithTicketID("MAC-9"), testutil.WithoutField(domain.FieldImpact))

	out := FormatTicketPlain(r)

	assert.Contains(t, out, "Ticket ID: MAC-9\n")
	assert.Contains(t, out, "Análise de Impacto: —\n")
	assert.Equal(t, 8, strings.Count(out, "\n"))
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2025, 12, 11, 12, 0, 0, 0, time.UTC)
	older := testutil.NewTestEntry("primeiro relato", testutil.NewTestResult(
		testutil.WithTicketID("MAC-1"),
		testutil.WithPriority(domain.PriorityMaximum),
	), now.Add(-2*time.Hour))
	newer := testutil.NewTestEntry("segundo relato", testutil.NewTestResult(
		testutil.WithTicketID("MAC-2"),
		testutil.WithTeam(domain.TeamSupport),
	), now.Add(-time.Minute))

	out := stripANSI(FormatHistory([]domain.FeedbackEntry{newer, older}, now, 70))

	assert.Contains(t, out, "HISTÓRICO DE TICKETS (2)")
	assert.Less(t, strings.Index(out, "MAC-2"), strings.Index(out, "MAC-1"))
	assert.Contains(t, out, "MÁXIMA")
	assert.Contains(t, out, "MÉDIA")
	assert.Contains(t, out, "\"segundo relato\"")
	assert.Contains(t, out, string(domain.TeamSupport))
	assert.Contains(t, out, "há 2 h")
	assert.Contains(t, out, "há 1 min")
	assert.Contains(t, out, ClockTime(now.Add(-time.Minute))+" · há 1 min")
	assert.Contains(t, out, ClockTime(now.Add(-2*time.Hour))+" · há 2 h")
}

func TestFormatHistory_Empty(t *testing.T) {
	assert.Empty(t, FormatHistory(nil, time.Now(), 70))
}

func TestFormatHistoryEntry_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("muito texto ", 100)
	e := testutil.NewTestEntry(long, testutil.NewTestResult(), time.Now())

	out := stripANSI(FormatHistoryEntry(e, time.Now(), 50))

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, long)
}

func TestFormatError(t *testing.T) {
	out := squash(FormatError("Chave de API não encontrada. Verifique as configurações.", 60))

	assert.Contains(t, out, "Falha no Processamento")
	assert.Contains(t, out, "Chave de API não encontrada. Verifique as configurações.")
}

func TestFormatPlaceholderAndSubmitting(t *testing.T) {
	assert.Contains(t, stripANSI(FormatPlaceholder(60)), "Aguardando input para triagem...")
	assert.Contains(t, stripANSI(FormatSubmitting("⠋", 60)), "Executando análise de crise")
}

func TestFormatAppHeader(t *testing.T) {
	out := stripANSI(FormatAppHeader("gemini (gemini-2.5-flash)", "v1.0.0", 100))

	assert.True(t, strings.HasPrefix(out, "◆ Módulo MAC"))
	assert.True(t, strings.HasSuffix(out, "v1.0.0"))
	assert.Equal(t, 100, lipgloss.Width(out))
}
