package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/cli/formatter"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/dispatch"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/intelligence"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/session"
	"go.uber.org/zap"
)

const (
	inputPlaceholder = "Insira o relato bruto do usuário ou log de incidente..."

	// twoColumnMinWidth is the narrowest terminal that gets the side by side
	// layout; anything smaller stacks input above results.
	twoColumnMinWidth = 110
	minHistoryHeight  = 5
)

type focusArea int

const (
	focusInput focusArea = iota
	focusHistory
)

// analysisDoneMsg carries the outcome of one Analyze call back to Update.
type analysisDoneMsg struct {
	attempt session.Attempt
	result  *domain.AnalysisResult
	err     error
}

// dispatchDoneMsg reports the outcome of posting a ticket.
type dispatchDoneMsg struct {
	ticketID string
	err      error
}

// appModel is the root TUI model: a feedback input, the current attempt's
// outcome and the session history.
type appModel struct {
	app     *App
	ctx     context.Context
	session *session.Session
	keys    keyMap

	input   textarea.Model
	spinner spinner.Model
	history viewport.Model
	help    help.Model

	focus   focusArea
	confirm *quitConfirm
	notice  string

	width    int
	height   int
	quitting bool
}

func newAppModel(ctx context.Context, app *App) appModel {
	if ctx == nil {
		ctx = context.Background()
	}

	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(6)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(formatter.StylePurple),
	)

	h := help.New()
	h.Styles.ShortKey = formatter.StyleFg
	h.Styles.ShortDesc = formatter.StyleDim
	h.Styles.FullKey = formatter.StyleFg
	h.Styles.FullDesc = formatter.StyleDim

	m := appModel{
		app:     app,
		ctx:     ctx,
		session: app.newSession(),
		keys:    defaultKeyMap(),
		input:   ta,
		spinner: sp,
		history: viewport.New(60, minHistoryHeight),
		help:    h,
	}
	m.resize(100, 30)
	return m
}

func (m appModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)

	case dispatchDoneMsg:
		if msg.err != nil {
			m.notice = formatter.StyleYellow.Render("⚠ ticket " + msg.ticketID + " não enviado ao Slack: " + msg.err.Error())
		} else {
			m.notice = formatter.StyleGreen.Render("✔ ticket " + msg.ticketID + " enviado ao Slack")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.session.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case confirmResultMsg:
		m.confirm = nil
		if msg.quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.confirm != nil {
		return m, m.confirm.Update(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(k)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.requestQuit()

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		return m.toggleFocus()

	case key.Matches(msg, m.keys.Example):
		m.input.SetValue(domain.ExampleFeedback)
		cmd := m.focusInput()
		return m, cmd

	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		cmd := m.focusInput()
		return m, cmd
	}

	if m.focus == focusHistory {
		m.refreshHistory()
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts an attempt for the current input. Blank input and a busy
// session are ignored.
func (m appModel) submit() (tea.Model, tea.Cmd) {
	attempt, err := m.session.Begin(m.input.Value())
	if err != nil {
		return m, nil
	}
	m.notice = ""
	return m, tea.Batch(m.spinner.Tick, analyzeCmd(m.ctx, m.app.Analyzer, attempt))
}

func analyzeCmd(ctx context.Context, analyzer intelligence.Analyzer, attempt session.Attempt) tea.Cmd {
	return func() tea.Msg {
		result, err := analyzer.Analyze(ctx, attempt.Text)
		return analysisDoneMsg{attempt: attempt, result: result, err: err}
	}
}

func (m appModel) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	entry, err := m.session.Complete(m.ctx, msg.attempt, msg.result, msg.err)
	if errors.Is(err, session.ErrStaleAttempt) {
		m.app.logger().Debug("discarding analysis result", zap.Error(err))
		return m, nil
	}
	if err != nil {
		m.app.logger().Warn("analysis failed", zap.Error(err))
		return m, nil
	}

	m.refreshHistory()
	m.history.GotoTop()

	d := m.app.dispatcher()
	if !d.Enabled() {
		return m, nil
	}
	m.notice = formatter.Dim("enviando ticket " + entry.Analysis.TicketID + " ao Slack...")
	return m, dispatchCmd(m.ctx, d, *entry)
}

func dispatchCmd(ctx context.Context, d dispatch.Dispatcher, entry domain.FeedbackEntry) tea.Cmd {
	return func() tea.Msg {
		err := d.Dispatch(ctx, entry)
		return dispatchDoneMsg{ticketID: entry.Analysis.TicketID, err: err}
	}
}

// requestQuit exits at once when there is nothing to lose, and otherwise
// asks before the session history is discarded.
func (m appModel) requestQuit() (tea.Model, tea.Cmd) {
	n := m.session.Ledger().Len()
	if n == 0 {
		m.quitting = true
		return m, tea.Quit
	}
	m.confirm = newQuitConfirm(n, m.width)
	return m, m.confirm.Init()
}

func (m appModel) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusHistory || m.session.Ledger().Len() == 0 {
		cmd := m.focusInput()
		return m, cmd
	}
	m.focus = focusHistory
	m.input.Blur()
	m.refreshHistory()
	return m, nil
}

func (m *appModel) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

// ── layout ───────────────────────────────────────────────────────────────────

func (m *appModel) twoColumns() bool {
	return m.width >= twoColumnMinWidth
}

func (m *appModel) columnWidths() (left, right int) {
	if !m.twoColumns() {
		return m.width, m.width
	}
	left = m.width * 2 / 5
	return left, m.width - left - 2
}

func (m *appModel) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w

	left, right := m.columnWidths()
	m.input.SetWidth(max(left-4, 20))

	m.history.Width = max(right, 20)
	if m.twoColumns() {
		m.history.Height = max(h/2-4, minHistoryHeight)
	} else {
		m.history.Height = max(h/4, minHistoryHeight)
	}
	m.refreshHistory()
}

func (m *appModel) refreshHistory() {
	_, right := m.columnWidths()
	m.history.SetContent(formatter.FormatHistory(m.session.Ledger().Entries(), m.app.now(), max(right, 20)))
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		formatter.FormatAppHeader(m.app.Provider, m.app.Version, m.width),
		formatter.Dim(strings.Repeat("─", max(m.width, 20))),
	}

	if m.confirm != nil {
		sections = append(sections, "", m.confirm.View())
		sections = append(sections, m.renderHints(m.confirm.ShortHelp()))
		return strings.Join(sections, "\n")
	}

	left, right := m.columnWidths()
	input := m.renderInput(left)
	results := m.renderResult(right)
	if h := m.renderHistory(); h != "" {
		results += "\n" + h
	}

	if m.twoColumns() {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, input, "  ", results))
	} else {
		sections = append(sections, input, results)
	}

	if m.notice != "" {
		sections = append(sections, m.notice)
	}
	sections = append(sections, m.help.View(m.keys))

	return strings.Join(sections, "\n")
}

func (m appModel) renderInput(width int) string {
	border := formatter.ColorDim
	if m.focus == focusInput {
		border = formatter.ColorPurple
	}

	title := formatter.Bold("Monitor de Feedback (Live Feed)")
	footer := formatter.Dim(formatter.CharCount(m.input.Value()))
	if m.session.Submitting() {
		footer += "  " + formatter.StylePurple.Render("processando...")
	} else if m.session.CanSubmit(m.input.Value()) {
		footer += "  " + formatter.Dim("ctrl+s para processar")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(width-2, 20)).
		Padding(0, 1).
		Render(title + "\n" + m.input.View() + "\n" + footer)

	return box + "\n" + formatter.FormatProtocolNote(width)
}

func (m appModel) renderResult(width int) string {
	switch {
	case m.session.Submitting():
		return formatter.FormatSubmitting(m.spinner.View(), width)
	case m.session.LastError() != nil:
		return formatter.FormatError(m.session.ErrorMessage(), width)
	}
	if cur := m.session.Current(); cur != nil {
		return formatter.FormatTicketCard(*cur, width)
	}
	return formatter.FormatPlaceholder(width)
}

func (m appModel) renderHistory() string {
	if m.session.Ledger().Len() == 0 {
		return ""
	}
	view := m.history.View()
	if m.focus == focusHistory {
		view += "\n" + formatter.Dim("↑↓ pgup/pgdn: rolar  tab: voltar")
	}
	return view
}

func (m appModel) renderHints(bindings []key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	return strings.Join(hints, "  ")
}

// runTUI runs the interactive model on the alternate screen until the user
// quits.
func runTUI(ctx context.Context, app *App) error {
	p := tea.NewProgram(newAppModel(ctx, app), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
