package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-analyzer/internal/history"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/sessions"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/telemetry"
)

// Service runs resume analyses and opens a chat session for each successful one.
type Service struct {
	LLM      llm.Client
	Sessions *sessions.Store
	// History is optional; archive failures are logged and never fail an analysis.
	History history.Repo
	Model   string
	Timeout time.Duration
}

// Analyze asks the model for a structured comparison of resumeText against jobDescription.
// On success the result is stored under a fresh session id, which is returned with it.
func (s *Service) Analyze(ctx context.Context, jobDescription, resumeText string) (Result, string, error) {
	if strings.TrimSpace(jobDescription) == "" || strings.TrimSpace(resumeText) == "" {
		return Result{}, "", ErrValidation
	}
	if s.LLM == nil || s.Sessions == nil {
		return Result{}, "", errors.New("analysis service is missing dependencies")
	}

	prompt, err := BuildPrompt(jobDescription, resumeText)
	if err != nil {
		return Result{}, "", fmt.Errorf("build analysis prompt: %w", err)
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	metrics.IncAnalysisStarted()
	startedAt := time.Now()
	telemetry.Info("analysis.started", map[string]any{
		"model":               s.Model,
		"job_description_len": len(jobDescription),
		"resume_len":          len(resumeText),
	})

	raw, err := s.LLM.Generate(ctx, llm.Request{
		Model:          s.Model,
		Messages:       llm.UserText(prompt),
		ResponseSchema: ResponseSchema(),
	})
	if err != nil {
		return Result{}, "", s.fail(startedAt, fmt.Errorf("%w: %w", ErrAnalysisFailed, err))
	}

	result, err := DecodeResult(raw)
	if err != nil {
		telemetry.Warn("analysis.decode_failed", map[string]any{
			"error":   err,
			"preview": telemetry.Truncate(raw, 200),
		})
		return Result{}, "", s.fail(startedAt, fmt.Errorf("%w: %w", ErrAnalysisFailed, err))
	}

	sessionID := s.Sessions.Create(sessions.Record{
		Analysis:       result.toSession(),
		ResumeText:     resumeText,
		JobDescription: jobDescription,
	})
	metrics.SetSessionsActive(s.Sessions.Len())

	s.archive(ctx, sessionID, result, time.Now().UTC())

	elapsed := time.Since(startedAt)
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(elapsed.Microseconds()) / 1000.0)
	telemetry.Info("analysis.completed", map[string]any{
		"session_id":  sessionID,
		"match_score": result.MatchScore,
		"missing":     len(result.MissingKeywords),
		"present":     len(result.PresentKeywords),
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
	})
	return result, sessionID, nil
}

func (s *Service) fail(startedAt time.Time, err error) error {
	elapsed := time.Since(startedAt)
	metrics.IncAnalysisFailed()
	metrics.ObserveAnalysisDurationMs(float64(elapsed.Microseconds()) / 1000.0)
	telemetry.Error("analysis.failed", map[string]any{
		"model":       s.Model,
		"error":       err,
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
	})
	return err
}

func (s *Service) archive(ctx context.Context, sessionID string, result Result, createdAt time.Time) {
	if s.History == nil {
		return
	}
	// The request context may already be near its deadline; the archive write gets its own.
	archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	err := s.History.Record(archiveCtx, history.Entry{
		SessionID:    sessionID,
		MatchScore:   result.MatchScore,
		Summary:      result.Summary,
		MissingCount: len(result.MissingKeywords),
		PresentCount: len(result.PresentKeywords),
		Model:        s.Model,
		CreatedAt:    createdAt,
	})
	if err != nil {
		telemetry.Warn("analysis.history_failed", map[string]any{
			"session_id": sessionID,
			"error":      err,
		})
	}
}
