package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Generate(ctx context.Context, req Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func noSleep(r Client) {
	r.(*retrying).sleep = func(context.Context, time.Duration) error { return nil }
}

func TestRetryingRecoversFromTransientError(t *testing.T) {
	base := new(mockClient)
	base.On("Generate", mock.Anything, mock.Anything).Return("", fmt.Errorf("gemini 503: %w", ErrTransient)).Once()
	base.On("Generate", mock.Anything, mock.Anything).Return("ok", nil).Once()

	client := NewRetrying(base, 2, time.Millisecond)
	noSleep(client)

	out, err := client.Generate(context.Background(), Request{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	base.AssertNumberOfCalls(t, "Generate", 2)
}

func TestRetryingStopsAfterMaxRetries(t *testing.T) {
	base := new(mockClient)
	base.On("Generate", mock.Anything, mock.Anything).Return("", fmt.Errorf("quota: %w", ErrTransient))

	client := NewRetrying(base, 2, time.Millisecond)
	noSleep(client)

	_, err := client.Generate(context.Background(), Request{})
	require.ErrorIs(t, err, ErrTransient)
	base.AssertNumberOfCalls(t, "Generate", 3)
}

func TestRetryingDoesNotRetryPermanentErrors(t *testing.T) {
	base := new(mockClient)
	base.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("invalid argument")).Once()

	client := NewRetrying(base, 3, time.Millisecond)
	noSleep(client)

	_, err := client.Generate(context.Background(), Request{})
	require.Error(t, err)
	base.AssertNumberOfCalls(t, "Generate", 1)
}

func TestRetryingHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	base := new(mockClient)
	base.On("Generate", mock.Anything, mock.Anything).Run(func(mock.Arguments) { cancel() }).
		Return("", fmt.Errorf("boom: %w", ErrTransient)).Once()

	client := NewRetrying(base, 3, time.Millisecond)
	_, err := client.Generate(ctx, Request{})
	require.ErrorIs(t, err, ErrTransient)
	base.AssertNumberOfCalls(t, "Generate", 1)
}

func TestNewRetryingZeroRetriesReturnsBase(t *testing.T) {
	base := new(mockClient)
	assert.Same(t, base, NewRetrying(base, 0, 0))
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, ShouldRetry(context.DeadlineExceeded))
	assert.True(t, ShouldRetry(errors.New("read tcp: connection reset by peer")))
	assert.True(t, ShouldRetry(fmt.Errorf("wrapped: %w", ErrTransient)))
	assert.False(t, ShouldRetry(errors.New("permission denied")))
	assert.False(t, ShouldRetry(nil))
}

func TestPlaceholderClient(t *testing.T) {
	_, err := PlaceholderClient{}.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
