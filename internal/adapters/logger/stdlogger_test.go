package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seriesKernel/internal/ports"
)

var _ ports.Logger = (*StdLogger)(nil)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warning", LevelWarn},
		{" warn ", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestStdLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLoggerTo(&buf, LevelWarn, 0)
	ctx := context.Background()

	l.Debug(ctx, "hidden debug")
	l.Info(ctx, "hidden info")
	l.Warn(ctx, "shown warn")
	l.Error(ctx, errors.New("boom"), "shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown warn\n")
	assert.Contains(t, out, "[ERROR] shown error | error: boom\n")
	assert.False(t, l.Enabled(LevelInfo))
	assert.True(t, l.Enabled(LevelError))
}

func TestStdLogger_FieldsSortedAndMerged(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLoggerTo(&buf, LevelDebug, 0).With(map[string]interface{}{"component": "sqlite", "symbol": "BTCUSDT"})

	l.Info(context.Background(), "saved",
		map[string]interface{}{"symbol": "ETHUSDT", "count": 3},
		map[string]interface{}{"name": "EMA(21)"},
	)

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)
	assert.Equal(t, "[INFO] saved | component=sqlite count=3 name=EMA(21) symbol=ETHUSDT", line)
}

func TestStdLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewStdLoggerTo(&buf, LevelInfo, 0)
	_ = parent.With(map[string]interface{}{"component": "csv"})

	parent.Info(context.Background(), "plain", nil)
	assert.Equal(t, "[INFO] plain\n", buf.String())
}
