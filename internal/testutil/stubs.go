package testutil

import (
	"context"
	"sync"

	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/llm"
)

// StubLLMClient is an llm.LLMClient returning canned replies and
// recording every request it receives.
type StubLLMClient struct {
	Response     string
	Err          error
	Unconfigured bool

	mu       sync.Mutex
	requests []llm.GenerateRequest
}

func (s *StubLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	return &llm.GenerateResponse{Text: s.Response, Model: "stub"}, nil
}

func (s *StubLLMClient) Configured() bool { return !s.Unconfigured }

func (s *StubLLMClient) Name() string { return "stub" }

// Calls returns how many times Generate was invoked.
func (s *StubLLMClient) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request, if any.
func (s *StubLLMClient) LastRequest() (llm.GenerateRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return llm.GenerateRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// StubAnalyzer answers Analyze from a queue of results and errors. When
// the queue is exhausted it returns Result (or Err).
type StubAnalyzer struct {
	Result domain.AnalysisResult
	Err    error

	mu    sync.Mutex
	queue []stubReply
	texts []string
}

type stubReply struct {
	result domain.AnalysisResult
	err    error
}

// Then queues a successful reply.
func (s *StubAnalyzer) Then(r domain.AnalysisResult) *StubAnalyzer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, stubReply{result: r})
	return s
}

// ThenFail queues a failing reply.
func (s *StubAnalyzer) ThenFail(err error) *StubAnalyzer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, stubReply{err: err})
	return s
}

func (s *StubAnalyzer) Analyze(_ context.Context, text string) (*domain.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)

	reply := stubReply{result: s.Result, err: s.Err}
	if len(s.queue) > 0 {
		reply = s.queue[0]
		s.queue = s.queue[1:]
	}
	if reply.err != nil {
		return nil, reply.err
	}
	r := reply.result
	return &r, nil
}

// Calls returns how many times Analyze was invoked.
func (s *StubAnalyzer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.texts)
}

// Texts returns the submitted texts in call order.
func (s *StubAnalyzer) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

// StubDispatcher records dispatched entries. It reports itself enabled
// unless Disabled is set.
type StubDispatcher struct {
	Err      error
	Disabled bool

	mu      sync.Mutex
	entries []domain.FeedbackEntry
}

func (s *StubDispatcher) Dispatch(_ context.Context, entry domain.FeedbackEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return s.Err
}

func (s *StubDispatcher) Enabled() bool { return !s.Disabled }

// Entries returns the dispatched entries in call order.
func (s *StubDispatcher) Entries() []domain.FeedbackEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.FeedbackEntry(nil), s.entries...)
}
