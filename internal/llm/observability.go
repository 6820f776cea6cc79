package llm

import (
	"time"

	"go.uber.org/zap"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Provider  string
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// ZapObserver writes LLM call events to a zap logger.
type ZapObserver struct {
	logger *zap.Logger
}

// NewZapObserver creates an Observer that logs events to logger.
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapObserver{logger: logger}
}

func (o *ZapObserver) OnCallComplete(event LLMCallEvent) {
	fields := []zap.Field{
		zap.String("provider", event.Provider),
		zap.String("model", event.Model),
		zap.Int64("latency_ms", event.LatencyMs),
	}
	if !event.Success {
		o.logger.Warn("llm_call", append(fields, zap.String("error_code", event.ErrorCode))...)
		return
	}
	o.logger.Info("llm_call", fields...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}

// callRecorder reports one Generate call to an Observer when it finishes.
type callRecorder struct {
	observer Observer
	provider string
	model    string
	start    time.Time
}

func startCall(observer Observer, provider, model string) callRecorder {
	if observer == nil {
		observer = NoopObserver{}
	}
	return callRecorder{observer: observer, provider: provider, model: model, start: time.Now()}
}

func (r callRecorder) elapsedMs() int64 {
	return time.Since(r.start).Milliseconds()
}

// finish emits the event and returns err unchanged so callers can
// `return nil, rec.finish(err)`.
func (r callRecorder) finish(err error) error {
	r.observer.OnCallComplete(LLMCallEvent{
		Provider:  r.provider,
		Model:     r.model,
		LatencyMs: r.elapsedMs(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return err
}
