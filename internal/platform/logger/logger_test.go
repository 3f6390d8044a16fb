package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRespectsConfiguredLevel(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{level: "debug", enabled: slog.LevelDebug, muted: slog.LevelDebug - 4},
		{level: "info", enabled: slog.LevelInfo, muted: slog.LevelDebug},
		{level: "warn", enabled: slog.LevelWarn, muted: slog.LevelInfo},
		{level: "error", enabled: slog.LevelError, muted: slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.level})
			require.NotNil(t, log)
			assert.True(t, log.Enabled(context.Background(), tt.enabled))
			assert.False(t, log.Enabled(context.Background(), tt.muted))
		})
	}
}

func TestSetupInstallsDefaultLogger(t *testing.T) {
	log := Setup(config.ServerConfig{Port: 8080, LogLevel: "warn"})
	assert.Equal(t, log, slog.Default())
}
