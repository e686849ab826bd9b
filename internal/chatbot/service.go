package chatbot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/telemetry"
)

// Service answers chatbot messages.
type Service struct {
	Assembler *Assembler
	LLM       llm.Client
	Model     string
	Timeout   time.Duration
}

// Reply returns the model's text for req verbatim.
func (s *Service) Reply(ctx context.Context, req Request) (string, error) {
	if s.Assembler == nil || s.LLM == nil {
		return "", errors.New("chatbot service is missing dependencies")
	}
	turn, err := s.Assembler.BuildTurn(req.Message, req.MessageHistory, req.SessionID)
	if err != nil {
		return "", err
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := s.LLM.Generate(ctx, llm.Request{
		Model:             s.Model,
		SystemInstruction: turn.SystemInstruction,
		Messages:          turn.Messages,
	})
	elapsed := time.Since(start)
	metrics.ObserveChatbotDurationMs(float64(elapsed.Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncChatbotFailed()
		return "", fmt.Errorf("chatbot generate: %w", err)
	}

	metrics.IncChatbotReply()
	telemetry.Info("chatbot.reply", map[string]any{
		"session_id":  req.SessionID,
		"grounded":    turn.Grounded,
		"turns":       len(turn.Messages),
		"reply_len":   len(reply),
		"duration_ms": elapsed.Milliseconds(),
	})
	return reply, nil
}
