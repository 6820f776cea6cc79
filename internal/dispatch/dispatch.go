// Package dispatch routes finished tickets to the responsible team.
// Dispatch is best-effort and never affects the analysis session.
package dispatch

import (
	"context"
	"errors"

	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
)

// ErrNoChannel is returned when no destination is configured for a ticket.
var ErrNoChannel = errors.New("no dispatch channel for team")

// Dispatcher forwards a recorded entry to an external destination.
type Dispatcher interface {
	Dispatch(ctx context.Context, entry domain.FeedbackEntry) error
	Enabled() bool
}

// NoopDispatcher drops every entry.
type NoopDispatcher struct{}

func (NoopDispatcher) Dispatch(context.Context, domain.FeedbackEntry) error { return nil }

func (NoopDispatcher) Enabled() bool { return false }
