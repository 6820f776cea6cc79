package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
)

// FormatHistory renders the ledger newest first. An empty ledger renders
// as the empty string.
func FormatHistory(entries []domain.FeedbackEntry, now time.Time, width int) string {
	if len(entries) == 0 {
		return ""
	}
	if width <= 0 {
		width = defaultCardWidth
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Histórico de Tickets (%d)", len(entries))))
	b.WriteString("\n")
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatHistoryEntry(e, now, width))
	}
	return b.String()
}

// FormatHistoryEntry renders one ledger row: ticket ID, capture time,
// short priority badge, a two-line excerpt of the input and the team.
func FormatHistoryEntry(e domain.FeedbackEntry, now time.Time, width int) string {
	r := e.Analysis
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	left := StylePurple.Bold(true).Render(orDash(r.TicketID)) + "  " +
		Dim(ClockTime(e.CapturedAt)+" · "+RelativeTimeFrom(e.CapturedAt, now))
	badge := PriorityStyle(r.PriorityLevel()).Bold(true).Render(strings.ToUpper(orDash(r.ShortPriority())))

	gap := inner - lipgloss.Width(left) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}

	var b strings.Builder
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(badge)
	b.WriteString("\n")
	b.WriteString(StyleFg.Render("\"" + Truncate(e.OriginalText, inner*2-2) + "\""))
	b.WriteString("\n")
	b.WriteString(Dim("▪ " + orDash(r.Team)))

	return RenderBox("", Wrap(b.String(), inner), width)
}
