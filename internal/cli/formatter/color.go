package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorOrange
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleItalic = lipgloss.NewStyle().Foreground(ColorFg).Italic(true)
)

// PriorityColor maps an urgency tier to its color: red, orange, yellow,
// then blue for the lowest tier.
func PriorityColor(level domain.PriorityLevel) lipgloss.Color {
	switch level {
	case domain.LevelCritical:
		return ColorRed
	case domain.LevelHigh:
		return ColorOrange
	case domain.LevelMedium:
		return ColorYellow
	default:
		return ColorBlue
	}
}

// PriorityStyle returns the foreground style for an urgency tier.
func PriorityStyle(level domain.PriorityLevel) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(PriorityColor(level))
}

// SentimentStyle maps a sentiment tone to its color.
func SentimentStyle(tone domain.Tone) lipgloss.Style {
	switch tone {
	case domain.ToneNegative:
		return StyleRed
	case domain.ToneNeutral:
		return StyleFg
	default:
		return StyleGreen
	}
}

// PriorityBadge renders priority text as a bold colored pill, e.g. "● MÉDIA (MELHORIA)".
func PriorityBadge(r domain.AnalysisResult) string {
	text := orDash(r.Priority)
	return PriorityStyle(r.PriorityLevel()).Bold(true).Render("● " + strings.ToUpper(text))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
