package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		env, level string
		want       zapcore.Level
	}{
		{"local", "", zapcore.WarnLevel},
		{"local", "debug", zapcore.DebugLevel},
		{"production", "info", zapcore.InfoLevel},
		{"production", "ERROR", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		log, err := New(tt.env, tt.level)
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(tt.want), "%s/%s", tt.env, tt.level)
		if tt.want > zapcore.DebugLevel {
			assert.False(t, log.Core().Enabled(tt.want-1), "%s/%s", tt.env, tt.level)
		}
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("local", "loud")
	assert.Error(t, err)
}
