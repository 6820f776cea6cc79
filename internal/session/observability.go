package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AttemptEvent captures telemetry for one finished analysis attempt.
type AttemptEvent struct {
	Duration   time.Duration
	Success    bool
	Err        error
	TextLength int
	LedgerSize int
	TicketID   string
	StartedAt  time.Time
}

// Observer receives attempt events.
type Observer interface {
	ObserveAttempt(ctx context.Context, event AttemptEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveAttempt(context.Context, AttemptEvent) {}

type zapObserver struct {
	logger *zap.Logger
}

// NewZapObserver writes attempt events to logger.
func NewZapObserver(logger *zap.Logger) Observer {
	if logger == nil {
		return NoopObserver{}
	}
	return &zapObserver{logger: logger}
}

func (o *zapObserver) ObserveAttempt(_ context.Context, event AttemptEvent) {
	fields := []zap.Field{
		zap.Int64("duration_ms", event.Duration.Milliseconds()),
		zap.Bool("success", event.Success),
		zap.Int("text_length", event.TextLength),
		zap.Int("ledger_size", event.LedgerSize),
	}
	if event.Err != nil {
		o.logger.Error("analysis_attempt", append(fields, zap.Error(event.Err))...)
		return
	}
	o.logger.Info("analysis_attempt", append(fields, zap.String("ticket_id", event.TicketID))...)
}
