package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("nonsense"))
}

func TestNew_WritesRollingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "bot.log")

	log, err := New("info", file)
	require.NoError(t, err)

	log.Info("tick finished", zap.Int("due", 2))
	_ = log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"tick finished"`)
	assert.Contains(t, string(data), `"due":2`)
}

func TestNew_LevelFiltersFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bot.log")

	log, err := New("warn", file)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
