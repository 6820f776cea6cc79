package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/intelligence"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/llm"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/session"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUI_InitialView(t *testing.T) {
	d := NewTestDriver(t, newTestApp(&testutil.StubAnalyzer{}))

	view := d.PlainView()
	assert.Contains(t, view, "Módulo MAC")
	assert.Contains(t, view, "stub (test)")
	assert.Contains(t, view, "Monitor de Feedback (Live Feed)")
	assert.Contains(t, view, "Aguardando input para triagem...")
	assert.Contains(t, view, "0 caracteres")
	assert.NotContains(t, view, "HISTÓRICO")
	assert.Equal(t, session.PhaseIdle, d.Session().Phase())
}

func TestTUI_SubmitBlankInputIsIgnored(t *testing.T) {
	analyzer := &testutil.StubAnalyzer{Result: testutil.ExampleResult()}
	d := NewTestDriver(t, newTestApp(analyzer))

	d.Submit()
	d.Type("   ")
	d.Submit()

	assert.Zero(t, analyzer.Calls())
	assert.Equal(t, session.PhaseIdle, d.Session().Phase())
	assert.Contains(t, d.PlainView(), "Aguardando input para triagem...")
}

func TestTUI_SubmitExampleShowsTicket(t *testing.T) {
	analyzer := &testutil.StubAnalyzer{Result: testutil.ExampleResult()}
	d := NewTestDriver(t, newTestApp(analyzer))

	d.LoadExample()
	require.Equal(t, domain.ExampleFeedback, d.Input())
	d.Submit()

	require.Equal(t, 1, analyzer.Calls())
	assert.Equal(t, []string{domain.ExampleFeedback}, analyzer.Texts())
	assert.Equal(t, session.PhaseSuccess, d.Session().Phase())
	assert.Equal(t, 1, d.Session().Ledger().Len())

	view := d.PlainView()
	assert.Contains(t, view, "MAC-20251211-001A")
	assert.Contains(t, view, "HISTÓRICO DE TICKETS (1)")
	assert.NotContains(t, view, "Aguardando input para triagem...")

	// The input is kept so the relato can be refined and resubmitted.
	assert.Equal(t, domain.ExampleFeedback, d.Input())
}

func TestTUI_TypedTextIsSubmittedVerbatim(t *testing.T) {
	analyzer := &testutil.StubAnalyzer{Result: testutil.NewTestResult()}
	d := NewTestDriver(t, newTestApp(analyzer))

	d.Type("app trava no login")
	assert.Contains(t, d.PlainView(), "18 caracteres")
	d.Submit()

	assert.Equal(t, []string{"app trava no login"}, analyzer.Texts())
	entry, ok := d.Session().Ledger().Latest()
	require.True(t, ok)
	assert.Equal(t, "app trava no login", entry.OriginalText)
	assert.Equal(t, fixedNow, entry.CapturedAt)
}

func TestTUI_FailureShowsMessageAndKeepsHistory(t *testing.T) {
	first := testutil.NewTestResult(testutil.WithTicketID("MAC-OK-1"))
	analyzer := (&testutil.StubAnalyzer{}).
		Then(first).
		ThenFail(&intelligence.AnalysisError{Kind: intelligence.KindConfiguration, Err: llm.ErrMissingCredential})
	d := NewTestDriver(t, newTestApp(analyzer))

	d.LoadExample()
	d.Submit()
	d.Submit()

	assert.Equal(t, 2, analyzer.Calls())
	assert.Equal(t, session.PhaseFailed, d.Session().Phase())
	assert.Nil(t, d.Session().Current())
	assert.Equal(t, 1, d.Session().Ledger().Len())

	view := d.PlainView()
	assert.Contains(t, view, "Falha no Processamento")
	assert.Contains(t, view, "Chave de API não encontrada. Verifique as configurações.")
	assert.Contains(t, view, "MAC-OK-1")
}

func TestTUI_FailureShowsUnderlyingCause(t *testing.T) {
	tests := []struct {
		name   string
		client *testutil.StubLLMClient
		want   []string
	}{
		{
			name:   "provider error",
			client: &testutil.StubLLMClient{Err: errors.New("googleapi: Error 403: API key not valid")},
			want:   []string{"Falha na comunicação com o serviço de análise.", "API key not valid"},
		},
		{
			name:   "reply without JSON",
			client: &testutil.StubLLMClient{Response: "desculpe, não consigo ajudar"},
			want:   []string{"Falha na comunicação com o serviço de análise.", "no JSON object found"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewTestDriver(t, newTestApp(intelligence.NewAnalysisService(tt.client)))

			d.LoadExample()
			d.Submit()

			require.Equal(t, session.PhaseFailed, d.Session().Phase())
			view := d.PlainView()
			assert.Contains(t, view, "Falha no Processamento")
			for _, w := range tt.want {
				assert.Contains(t, view, w)
			}
		})
	}
}

func TestTUI_RetryAfterFailureClearsError(t *testing.T) {
	analyzer := (&testutil.StubAnalyzer{}).
		ThenFail(errors.New("boom")).
		Then(testutil.NewTestResult(testutil.WithTicketID("MAC-RETRY")))
	d := NewTestDriver(t, newTestApp(analyzer))

	d.LoadExample()
	d.Submit()
	require.Contains(t, d.PlainView(), "boom")

	d.Submit()

	view := d.PlainView()
	assert.NotContains(t, view, "Falha no Processamento")
	assert.Contains(t, view, "MAC-RETRY")
}

func TestTUI_SubmitWhileBusyIsIgnored(t *testing.T) {
	analyzer := &testutil.StubAnalyzer{Result: testutil.NewTestResult()}
	d := NewTestDriver(t, newTestApp(analyzer))

	attempt, err := d.Session().Begin("primeiro relato")
	require.NoError(t, err)

	d.Type("segundo relato")
	d.Submit()

	assert.Zero(t, analyzer.Calls())
	assert.Contains(t, d.PlainView(), "Executando análise de crise")

	result := testutil.NewTestResult(testutil.WithTicketID("MAC-LATE"))
	d.Send(analysisDoneMsg{attempt: attempt, result: &result})

	assert.Equal(t, session.PhaseSuccess, d.Session().Phase())
	entry, _ := d.Session().Ledger().Latest()
	assert.Equal(t, "primeiro relato", entry.OriginalText)
}

func TestTUI_StaleResultIsDiscarded(t *testing.T) {
	d := NewTestDriver(t, newTestApp(&testutil.StubAnalyzer{}))

	result := testutil.NewTestResult()
	d.Send(analysisDoneMsg{attempt: session.Attempt{Text: "órfão"}, result: &result})

	assert.Equal(t, session.PhaseIdle, d.Session().Phase())
	assert.Zero(t, d.Session().Ledger().Len())
}

func TestTUI_HistoryIsNewestFirst(t *testing.T) {
	analyzer := (&testutil.StubAnalyzer{}).
		Then(testutil.NewTestResult(testutil.WithTicketID("MAC-FIRST"))).
		Then(testutil.NewTestResult(testutil.WithTicketID("MAC-SECOND"), testutil.WithPriority(domain.PriorityMaximum)))
	d := NewTestDriver(t, newTestApp(analyzer))

	d.Type("um")
	d.Submit()
	d.Type(" dois")
	d.Submit()

	history := stripANSI(d.appModel().history.View())
	assert.Contains(t, history, "HISTÓRICO DE TICKETS (2)")
	assert.Less(t, strings.Index(history, "MAC-SECOND"), strings.Index(history, "MAC-FIRST"))
	assert.Contains(t, history, "MÁXIMA")
}

func TestTUI_ClearInput(t *testing.T) {
	d := NewTestDriver(t, newTestApp(&testutil.StubAnalyzer{}))

	d.Type("rascunho")
	d.Press(tea.KeyCtrlL)

	assert.Empty(t, d.Input())
	assert.Contains(t, d.PlainView(), "0 caracteres")
}

func TestTUI_TabFocusesHistoryOnlyWhenPresent(t *testing.T) {
	d := NewTestDriver(t, newTestApp(&testutil.StubAnalyzer{Result: testutil.NewTestResult()}))

	d.PressTab()
	assert.Equal(t, focusInput, d.Focus())

	d.LoadExample()
	d.Submit()
	d.PressTab()
	require.Equal(t, focusHistory, d.Focus())

	d.Type("xyz")
	assert.Equal(t, domain.ExampleFeedback, d.Input(), "typing while the history is focused must not edit the input")

	d.PressTab()
	assert.Equal(t, focusInput, d.Focus())
}

func TestTUI_QuitWithoutHistoryExitsImmediately(t *testing.T) {
	d := NewTestDriver(t, newTestApp(&testutil.StubAnalyzer{}))

	d.PressEsc()

	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
}

func TestTUI_QuitWithHistoryAsksForConfirmation(t *testing.T) {
	d := NewTestDriver(t, newTestApp(&testutil.StubAnalyzer{Result: testutil.NewTestResult()}))
	d.LoadExample()
	d.Submit()

	d.PressEsc()
	require.True(t, d.Confirming())
	assert.False(t, d.Quitting)
	assert.Contains(t, d.PlainView(), "Sair do Módulo MAC?")
	assert.Contains(t, d.PlainView(), "1 ticket(s) desta sessão serão descartados.")

	// Esc backs out of the dialog.
	d.PressEsc()
	assert.False(t, d.Confirming())
	assert.False(t, d.Quitting)
	assert.Equal(t, 1, d.Session().Ledger().Len())

	// Enter on the default choice keeps the session.
	d.PressEsc()
	require.True(t, d.Confirming())
	d.PressEnter()
	assert.False(t, d.Confirming())
	assert.False(t, d.Quitting)

	// Toggling to "Sair" and confirming exits.
	d.PressEsc()
	d.PressLeft()
	d.PressEnter()
	assert.True(t, d.Quitting)
}

func TestTUI_CtrlCInsideConfirmationQuits(t *testing.T) {
	d := NewTestDriver(t, newTestApp(&testutil.StubAnalyzer{Result: testutil.NewTestResult()}))
	d.LoadExample()
	d.Submit()

	d.PressCtrlC()
	require.True(t, d.Confirming())
	d.PressCtrlC()

	assert.True(t, d.Quitting)
}

func TestTUI_DispatchesTicketAfterSuccess(t *testing.T) {
	result := testutil.NewTestResult(testutil.WithTicketID("MAC-SLACK"))
	dispatcher := &testutil.StubDispatcher{}
	app := newTestApp(&testutil.StubAnalyzer{Result: result})
	app.Dispatcher = dispatcher
	d := NewTestDriver(t, app)

	d.LoadExample()
	d.Submit()

	entries := dispatcher.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "MAC-SLACK", entries[0].Analysis.TicketID)
	assert.Equal(t, domain.ExampleFeedback, entries[0].OriginalText)
	assert.Contains(t, d.Notice(), "ticket MAC-SLACK enviado ao Slack")
}

func TestTUI_DispatchFailureIsANotice(t *testing.T) {
	app := newTestApp(&testutil.StubAnalyzer{Result: testutil.NewTestResult(testutil.WithTicketID("MAC-X"))})
	app.Dispatcher = &testutil.StubDispatcher{Err: errors.New("channel_not_found")}
	d := NewTestDriver(t, app)

	d.LoadExample()
	d.Submit()

	assert.Equal(t, session.PhaseSuccess, d.Session().Phase())
	assert.Contains(t, d.Notice(), "não enviado ao Slack: channel_not_found")
}

func TestTUI_FailedAnalysisIsNotDispatched(t *testing.T) {
	dispatcher := &testutil.StubDispatcher{}
	app := newTestApp(&testutil.StubAnalyzer{Err: errors.New("boom")})
	app.Dispatcher = dispatcher
	d := NewTestDriver(t, app)

	d.LoadExample()
	d.Submit()

	assert.Empty(t, dispatcher.Entries())
	assert.Empty(t, d.Notice())
}

func TestTUI_DisabledDispatcherIsSkipped(t *testing.T) {
	dispatcher := &testutil.StubDispatcher{Disabled: true}
	app := newTestApp(&testutil.StubAnalyzer{Result: testutil.NewTestResult()})
	app.Dispatcher = dispatcher
	d := NewTestDriver(t, app)

	d.LoadExample()
	d.Submit()

	assert.Empty(t, dispatcher.Entries())
}

func TestTUI_NarrowTerminalStacksColumns(t *testing.T) {
	d := NewTestDriver(t, newTestApp(&testutil.StubAnalyzer{Result: testutil.NewTestResult(testutil.WithTicketID("MAC-NARROW"))}))
	d.Send(tea.WindowSizeMsg{Width: 80, Height: 40})

	d.LoadExample()
	d.Submit()

	view := d.PlainView()
	inputAt := strings.Index(view, "Monitor de Feedback")
	ticketAt := strings.Index(view, "MAC-NARROW")
	require.NotEqual(t, -1, ticketAt)
	assert.Less(t, inputAt, ticketAt)
}

func TestTUI_HelpToggle(t *testing.T) {
	d := NewTestDriver(t, newTestApp(&testutil.StubAnalyzer{}))

	assert.NotContains(t, d.PlainView(), "limpar")
	d.Press(tea.KeyF1)
	assert.Contains(t, d.PlainView(), "limpar")
}

func TestAnalyzeCmd_ReportsOutcome(t *testing.T) {
	result := testutil.NewTestResult()
	analyzer := &testutil.StubAnalyzer{Result: result}
	attempt := session.Attempt{Text: "x"}

	msg := analyzeCmd(context.Background(), analyzer, attempt)()

	done, ok := msg.(analysisDoneMsg)
	require.True(t, ok)
	assert.Equal(t, attempt, done.attempt)
	assert.Equal(t, result, *done.result)
	assert.NoError(t, done.err)
}
