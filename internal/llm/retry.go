package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"resume-analyzer/internal/shared/telemetry"
)

const defaultRetryBaseDelay = 300 * time.Millisecond

// ErrTransient marks provider failures worth retrying (rate limits, 5xx).
var ErrTransient = errors.New("transient llm failure")

type retrying struct {
	base       Client
	maxRetries int
	baseDelay  time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewRetrying wraps base with up to maxRetries extra attempts on transient failures.
// The delay doubles after each attempt. maxRetries <= 0 returns base unchanged.
func NewRetrying(base Client, maxRetries int, baseDelay time.Duration) Client {
	if base == nil || maxRetries <= 0 {
		return base
	}
	if baseDelay <= 0 {
		baseDelay = defaultRetryBaseDelay
	}
	return &retrying{
		base:       base,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		sleep:      sleepContext,
	}
}

func (r *retrying) Generate(ctx context.Context, req Request) (string, error) {
	delay := r.baseDelay
	var (
		out string
		err error
	)
	for attempt := 0; ; attempt++ {
		out, err = r.base.Generate(ctx, req)
		if err == nil || attempt >= r.maxRetries || ctx.Err() != nil || !ShouldRetry(err) {
			return out, err
		}
		telemetry.Warn("llm.retry", map[string]any{
			"attempt": attempt + 1,
			"model":   req.Model,
			"delay":   delay.String(),
			"error":   sanitizeError(err),
		})
		if serr := r.sleep(ctx, delay); serr != nil {
			return "", serr
		}
		delay *= 2
	}
}

// ShouldRetry reports whether err looks like a transient provider or network failure.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTransient) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "unexpected eof") {
		return true
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func sanitizeError(err error) string {
	msg := strings.NewReplacer("\n", " ", "\r", " ").Replace(err.Error())
	return telemetry.Truncate(msg, 500)
}
