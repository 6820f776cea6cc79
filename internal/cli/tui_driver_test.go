package cli

import (
	"context"
	"regexp"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/intelligence"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/session"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/teatest"
)

var fixedNow = time.Date(2025, 12, 11, 9, 30, 0, 0, time.UTC)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// newTestApp wires an App around analyzer with a frozen clock.
func newTestApp(analyzer intelligence.Analyzer) *App {
	clock := func() time.Time { return fixedNow }
	return &App{
		Analyzer: analyzer,
		Provider: "stub (test)",
		Version:  "v0.0.0-test",
		Now:      clock,
		NewSession: func() *session.Session {
			return session.New(session.WithClock(clock))
		},
	}
}

// TestDriver wraps teatest.Driver with access to appModel internals.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the root model for app at 120x40 and drains Init.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(context.Background(), app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// Submit presses ctrl+s.
func (d *TestDriver) Submit() {
	d.T.Helper()
	d.Press(tea.KeyCtrlS)
}

// LoadExample presses ctrl+e.
func (d *TestDriver) LoadExample() {
	d.T.Helper()
	d.Press(tea.KeyCtrlE)
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

func (d *TestDriver) Session() *session.Session {
	return d.appModel().session
}

func (d *TestDriver) Input() string {
	return d.appModel().input.Value()
}

func (d *TestDriver) Focus() focusArea {
	return d.appModel().focus
}

func (d *TestDriver) Confirming() bool {
	return d.appModel().confirm != nil
}

func (d *TestDriver) Notice() string {
	return stripANSI(d.appModel().notice)
}

// PlainView returns the rendered output without ANSI styling.
func (d *TestDriver) PlainView() string {
	return stripANSI(d.View())
}
