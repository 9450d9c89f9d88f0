package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("server", &buf)
	logger.Info().Str(FieldTxHash, "abc").Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"component":"server"`)
	assert.Contains(t, out, `"txHash":"abc"`)
	assert.Contains(t, out, `"message":"hello"`)
}

func TestSetupGlobalLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	require.NoError(t, SetupGlobalLevel("warn"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	require.Error(t, SetupGlobalLevel("loud"))
}

func TestSetLevelFromEnv(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	t.Setenv("LOG_LEVEL", "error")
	SetLevelFromEnv()
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	t.Setenv("LOG_LEVEL", "")
	SetLevelFromEnv()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	t.Setenv("LOG_LEVEL", "nonsense")
	SetLevelFromEnv()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
