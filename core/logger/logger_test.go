package logger_test

import (
	"testing"

	"nwbridge/core/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		cfg         logger.Config
		debugPasses bool
		infoPasses  bool
	}{
		{"Debug", logger.Config{Level: "debug", Format: "console"}, true, true},
		{"Info", logger.Config{Level: "info", Format: "json"}, false, true},
		{"Warn", logger.Config{Level: "warn", Format: "json"}, false, false},
		{"UnknownLevelFallsBackToInfo", logger.Config{Level: "nonsense", Format: "json"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(&tt.cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.debugPasses, l.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.infoPasses, l.Core().Enabled(zapcore.InfoLevel))
		})
	}
}
