package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormatError renders a failed attempt's message in a red box.
func FormatError(msg string, width int) string {
	body := StyleRed.Bold(true).Render("✖ Falha no Processamento") + "\n" + StyleRed.Render(Wrap(orDash(msg), max(width-4, 20)))
	return renderBox("", body, width, ColorRed)
}

// FormatPlaceholder renders the idle view shown before any ticket exists.
func FormatPlaceholder(width int) string {
	msg := StyleDim.Render("Aguardando input para triagem...")
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorDim).
		Width(max(width-2, 20)).
		Padding(2, 0).
		Align(lipgloss.Center).
		Render(msg)
}

// FormatSubmitting renders the in-flight view around a spinner frame.
func FormatSubmitting(spinnerView string, width int) string {
	msg := spinnerView + " " + Dim("Executando análise de crise (8 pontos)...")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPurple).
		Width(max(width-2, 20)).
		Padding(2, 0).
		Align(lipgloss.Center).
		Render(msg)
}

// FormatAppHeader renders the title bar with the provider label on the right.
func FormatAppHeader(provider, version string, width int) string {
	left := StyleHeader.Render("◆ Módulo MAC") + " " + Dim("Análise e Gerenciamento de Crises")
	right := Dim(strings.TrimSpace(provider + "  " + version))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + "\n" + right
	}
	return left + strings.Repeat(" ", gap) + right
}

// FormatProtocolNote renders the explanatory note under the input panel.
func FormatProtocolNote(width int) string {
	text := "O sistema processa inputs em tempo real para categorizar incidentes, atribuir prioridade de engenharia e direcionar automaticamente para as squads responsáveis."
	return StyleBlue.Bold(true).Render("PROTOCOLO MAC") + "\n" + StyleBlue.Render(Wrap(text, max(width, 20)))
}
