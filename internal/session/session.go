// Package session holds the state of one interactive analysis session: the
// attempt state machine, the current ticket, and the history ledger.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/intelligence"
)

// Phase is the position of the session in the attempt lifecycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
	PhaseFailed     Phase = "failed"
)

var (
	// ErrEmptyInput is returned when the submitted text is blank.
	ErrEmptyInput = errors.New("feedback text is empty")

	// ErrBusy is returned when an attempt is already in flight.
	ErrBusy = errors.New("an analysis is already in progress")

	// ErrStaleAttempt is returned when completing an attempt that is not
	// the one in flight.
	ErrStaleAttempt = errors.New("attempt is not in flight")
)

// Attempt identifies one in-flight analysis.
type Attempt struct {
	Text      string
	StartedAt time.Time
	seq       uint64
}

// Session is the single-owner state container for an analysis session.
// It is not safe for concurrent use; the UI event loop owns it.
type Session struct {
	phase    Phase
	current  *domain.AnalysisResult
	lastErr  error
	ledger   *Ledger
	seq      uint64
	inFlight uint64

	now      func() time.Time
	newID    func() string
	observer Observer
}

// Option customises a Session.
type Option func(*Session)

// WithClock replaces the capture-time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator replaces the entry identifier source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// WithObserver attaches an attempt observer.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observer = o
		}
	}
}

// New returns an idle session with an empty ledger.
func New(opts ...Option) *Session {
	s := &Session{
		phase:    PhaseIdle,
		ledger:   NewLedger(),
		now:      time.Now,
		newID:    uuid.NewString,
		observer: NoopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Phase() Phase { return s.phase }

// Current returns the ticket of the last successful attempt, or nil while
// submitting or after a failure.
func (s *Session) Current() *domain.AnalysisResult {
	if s.current == nil {
		return nil
	}
	r := *s.current
	return &r
}

// LastError returns the failure of the last attempt, if it failed.
func (s *Session) LastError() error { return s.lastErr }

// ErrorMessage returns the user-facing message of LastError.
func (s *Session) ErrorMessage() string { return intelligence.UserMessage(s.lastErr) }

func (s *Session) Ledger() *Ledger { return s.ledger }

// Submitting reports whether an attempt is in flight.
func (s *Session) Submitting() bool { return s.phase == PhaseSubmitting }

// CanSubmit reports whether Begin would accept text.
func (s *Session) CanSubmit(text string) bool {
	return !s.Submitting() && strings.TrimSpace(text) != ""
}

// Begin starts an attempt for text. Blank text and a busy session are
// rejected without any state change. Otherwise the previous error and
// current ticket are cleared.
func (s *Session) Begin(text string) (Attempt, error) {
	if strings.TrimSpace(text) == "" {
		return Attempt{}, ErrEmptyInput
	}
	if s.Submitting() {
		return Attempt{}, ErrBusy
	}

	s.seq++
	s.inFlight = s.seq
	s.phase = PhaseSubmitting
	s.lastErr = nil
	s.current = nil

	return Attempt{Text: text, StartedAt: s.now(), seq: s.seq}, nil
}

// Complete finishes the in-flight attempt. On success the ticket becomes
// current and a new entry is prepended to the ledger. On failure the error
// is kept for display, the ledger is untouched and the same error is
// returned. ErrStaleAttempt means a was not the attempt in flight and
// nothing changed.
func (s *Session) Complete(ctx context.Context, a Attempt, result *domain.AnalysisResult, err error) (*domain.FeedbackEntry, error) {
	if !s.Submitting() || a.seq != s.inFlight {
		return nil, ErrStaleAttempt
	}
	s.inFlight = 0

	if err == nil && result == nil {
		err = &intelligence.AnalysisError{Kind: intelligence.KindEmptyResponse}
	}

	event := AttemptEvent{
		Duration:   s.now().Sub(a.StartedAt),
		TextLength: len([]rune(a.Text)),
		StartedAt:  a.StartedAt,
	}

	if err != nil {
		s.phase = PhaseFailed
		s.lastErr = err
		s.current = nil

		event.Err = err
		event.LedgerSize = s.ledger.Len()
		s.observer.ObserveAttempt(ctx, event)
		return nil, err
	}

	r := *result
	entry := domain.FeedbackEntry{
		ID:           s.newID(),
		OriginalText: a.Text,
		CapturedAt:   s.now(),
		Analysis:     r,
	}
	s.ledger.Prepend(entry)
	s.current = &r
	s.phase = PhaseSuccess

	event.Success = true
	event.TicketID = r.TicketID
	event.LedgerSize = s.ledger.Len()
	s.observer.ObserveAttempt(ctx, event)

	return &entry, nil
}

// Submit runs a whole attempt synchronously: Begin, one Analyze call, and
// Complete. The returned error is the analysis failure, if any; it is also
// retained as LastError.
func (s *Session) Submit(ctx context.Context, analyzer intelligence.Analyzer, text string) (*domain.FeedbackEntry, error) {
	attempt, err := s.Begin(text)
	if err != nil {
		return nil, err
	}

	result, analyzeErr := analyzer.Analyze(ctx, attempt.Text)
	return s.Complete(ctx, attempt, result, analyzeErr)
}
