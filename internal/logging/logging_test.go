package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestNew_NoSinksIsNop(t *testing.T) {
	logger, closer, err := New(Options{})
	require.NoError(t, err)
	require.NotNil(t, closer)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
	assert.NoError(t, closer.Close())
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "storechat.log")

	logger, closer, err := New(Options{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.Debug().Str("endpoint", "/chat").Msg("request sent")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, `"endpoint":"/chat"`)
	assert.Contains(t, line, `"app":"storechat"`)
	assert.Contains(t, line, `"message":"request sent"`)
}

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer

	logger, closer, err := New(Options{Console: &buf, Level: "warn"})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "[WARN]")
}
