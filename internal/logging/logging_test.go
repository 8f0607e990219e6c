package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{level: "debug", enabled: slog.LevelDebug, muted: slog.LevelDebug - 1},
		{level: "info", enabled: slog.LevelInfo, muted: slog.LevelDebug},
		{level: "warn", enabled: slog.LevelWarn, muted: slog.LevelInfo},
		{level: "ERROR", enabled: slog.LevelError, muted: slog.LevelWarn},
		{level: "garbage", enabled: slog.LevelInfo, muted: slog.LevelDebug},
	}

	for _, tt := range tests {
		l := New(tt.level)
		require.NotNil(t, l)
		assert.True(t, l.Enabled(context.Background(), tt.enabled), "level %q", tt.level)
		assert.False(t, l.Enabled(context.Background(), tt.muted), "level %q", tt.level)
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	l := New("info").With("svc", "test")
	ctx := IntoContext(context.Background(), l)

	assert.Same(t, l, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()), "missing logger falls back to default")
}
