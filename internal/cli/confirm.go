package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/cli/formatter"
)

// macHuhTheme adapts huh's base theme to the formatter palette.
func macHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Base = t.Focused.Base.BorderForeground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// quitConfirm asks before discarding a non-empty session history. The
// answer lives on the heap so copies of the model share it.
type quitConfirm struct {
	form   *huh.Form
	answer *bool
}

// confirmResultMsg reports the user's choice once the form completes.
type confirmResultMsg struct {
	quit bool
}

func newQuitConfirm(tickets, width int) *quitConfirm {
	answer := new(bool)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Sair do Módulo MAC?").
				Description(fmt.Sprintf("%d ticket(s) desta sessão serão descartados.", tickets)).
				Affirmative("Sair").
				Negative("Continuar").
				Value(answer),
		),
	).WithTheme(macHuhTheme()).WithShowHelp(false).WithWidth(min(max(width-4, 30), 60))

	return &quitConfirm{form: form, answer: answer}
}

func (c *quitConfirm) Init() tea.Cmd {
	return c.form.Init()
}

// Update forwards msg to the form. Esc cancels; completion emits a
// confirmResultMsg.
func (c *quitConfirm) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return func() tea.Msg { return confirmResultMsg{quit: false} }
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	switch c.form.State {
	case huh.StateCompleted:
		quit := *c.answer
		return tea.Batch(cmd, func() tea.Msg { return confirmResultMsg{quit: quit} })
	case huh.StateAborted:
		return func() tea.Msg { return confirmResultMsg{quit: true} }
	}
	return cmd
}

func (c *quitConfirm) View() string {
	return c.form.View()
}

func (c *quitConfirm) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "alternar")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirmar")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "voltar")),
	}
}
