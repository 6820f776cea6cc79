package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Placeholder stands in for a field the provider left empty.
const Placeholder = "—"

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// RenderBox wraps content in a rounded-border box with an optional title.
// A positive width fixes the outer width of the box.
func RenderBox(title, content string, width int) string {
	return renderBox(title, content, width, ColorDim)
}

func renderBox(title, content string, width int, border lipgloss.TerminalColor) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if width > 0 {
		boxStyle = boxStyle.Width(width - 2)
	}

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Truncate shortens s to at most max visible runes, collapsing whitespace
// and appending an ellipsis when cut.
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// Wrap soft-wraps s to width columns. Non-positive widths leave s as is.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// ClockTime renders the local wall-clock time of t, e.g. "14:05:09".
func ClockTime(t time.Time) string {
	return t.Local().Format("15:04:05")
}

// RelativeTimeFrom describes how long ago t happened relative to now.
func RelativeTimeFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "agora"
	case diff < time.Hour:
		return fmt.Sprintf("há %d min", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("há %d h", int(diff.Hours()))
	default:
		return t.Local().Format("02/01/2006")
	}
}

// CharCount renders the input length hint shown under the text area.
func CharCount(text string) string {
	return fmt.Sprintf("%d caracteres", len([]rune(text)))
}
