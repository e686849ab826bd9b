package analyses

import (
	"context"
	"sync"
	"testing"
	"time"

	"resume-analyzer/internal/history"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/sessions"
)

// stubLLM returns a canned reply and records every request it receives.
type stubLLM struct {
	mu       sync.Mutex
	resp     string
	err      error
	requests []llm.Request
}

func (s *stubLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return s.resp, s.err
}

func (s *stubLLM) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

const scenarioReply = `{
  "missing_keywords": ["Docker"],
  "present_keywords": ["Python", "AWS"],
  "recommendations": ["Mention containerization experience"],
  "match_score": 85,
  "summary": "Strong keyword overlap. Add deployment tooling."
}`

func newTestService(t *testing.T, client llm.Client) (*Service, *sessions.Store, *history.MemoryRepo) {
	t.Helper()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := sessions.NewStore(sessions.WithClock(func() time.Time { return now }))
	repo := history.NewMemoryRepo(10)
	svc := &Service{
		LLM:      client,
		Sessions: store,
		History:  repo,
		Model:    "gemini-2.5-pro",
		Timeout:  time.Second,
	}
	return svc, store, repo
}
