package intelligence

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why an analysis attempt failed.
type Kind string

const (
	KindConfiguration    Kind = "configuration"
	KindEmptyResponse    Kind = "empty_response"
	KindProvider         Kind = "provider"
	KindSchemaIncomplete Kind = "schema_incomplete"
)

var (
	// ErrConfiguration matches analysis errors caused by a missing credential.
	ErrConfiguration = errors.New("analysis not configured")

	// ErrEmptyResponse matches analysis errors where the provider sent no content.
	ErrEmptyResponse = errors.New("empty analysis response")

	// ErrProvider matches transport failures and unparseable replies.
	ErrProvider = errors.New("analysis provider failure")

	// ErrSchemaIncomplete matches replies that lack required ticket fields.
	ErrSchemaIncomplete = errors.New("analysis response incomplete")
)

// AnalysisError is returned by AnalysisService.Analyze for every failure.
// Every kind ends the attempt; none is retried.
type AnalysisError struct {
	Kind   Kind
	Fields []string // missing fields, KindSchemaIncomplete only
	Err    error
}

func (e *AnalysisError) Error() string {
	msg := e.Message()
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Message is the user-facing description without the underlying cause.
func (e *AnalysisError) Message() string {
	switch e.Kind {
	case KindConfiguration:
		return "Chave de API não encontrada. Verifique as configurações."
	case KindEmptyResponse:
		return "Resposta vazia da IA."
	case KindSchemaIncomplete:
		return fmt.Sprintf("Resposta da IA incompleta; campos ausentes: %s", strings.Join(e.Fields, ", "))
	default:
		return "Falha na comunicação com o serviço de análise."
	}
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Is lets errors.Is match an AnalysisError against the per-kind sentinels.
func (e *AnalysisError) Is(target error) bool {
	switch target {
	case ErrConfiguration:
		return e.Kind == KindConfiguration
	case ErrEmptyResponse:
		return e.Kind == KindEmptyResponse
	case ErrProvider:
		return e.Kind == KindProvider
	case ErrSchemaIncomplete:
		return e.Kind == KindSchemaIncomplete
	}
	return false
}

// KindOf returns the Kind of err, or "" when err is not an AnalysisError.
func KindOf(err error) Kind {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// UserMessage renders err for display. Analysis errors show their Portuguese
// message with the underlying cause on the next line; other errors are shown
// as they are.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *AnalysisError
	if errors.As(err, &ae) {
		if ae.Err == nil {
			return ae.Message()
		}
		return ae.Message() + "\n" + ae.Err.Error()
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return "Ocorreu um erro desconhecido ao processar o ticket."
}
