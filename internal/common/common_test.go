package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryOptions {
	return RetryOptions{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestWithRetry(t *testing.T) {
	transport := fmt.Errorf("%w: connection reset", ErrTransport)

	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{name: "first try", errs: []error{nil}, wantCalls: 1},
		{name: "transport then success", errs: []error{transport, nil}, wantCalls: 2},
		{name: "validation is not retried", errs: []error{ErrNoDistrict}, wantCalls: 1, wantErr: ErrValidation},
		{name: "api error is not retried", errs: []error{ErrAPI}, wantCalls: 1, wantErr: ErrAPI},
		{name: "exhausted", errs: []error{transport, transport, transport}, wantCalls: 3, wantErr: ErrMaxRetries},
		{
			name:      "explicitly retryable",
			errs:      []error{&RetryableError{Err: errors.New("busy"), Retryable: true}, nil},
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				err := tt.errs[calls]
				calls++
				return err
			}, fastRetry(3))

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return ErrTransport
	}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestUserError(t *testing.T) {
	err := NewUserError("층과 면적을 입력해주세요", ErrValidation)

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "층과 면적을 입력해주세요", userErr.UserMessage)
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, IsRetryable(err))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: "WARN", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogHandler(t *testing.T) {
	for _, format := range []string{"console", "text", "json"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			h, err := NewLogHandler(&buf, slog.LevelInfo, format)
			require.NoError(t, err)

			logger := slog.New(h)
			logger.Debug("hidden")
			logger.Info("검색 완료", "total", 20)

			assert.NotContains(t, buf.String(), "hidden")
			assert.Contains(t, buf.String(), "검색 완료")
			assert.Contains(t, buf.String(), "20")
		})
	}

	_, err := NewLogHandler(&bytes.Buffer{}, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
