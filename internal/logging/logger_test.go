package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, closer, err := New("loud", "")
	require.Error(t, err)
	assert.NotNil(t, closer)
	closer()
}

func TestNew_DefaultLevel(t *testing.T) {
	l, closer, err := New("", "")
	require.NoError(t, err)
	defer closer()
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "server.log")

	l, closer, err := New("debug", file)
	require.NoError(t, err)
	l.Debug().Str("draft", "abc").Msg("saved")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"draft":"abc"`)
	assert.Contains(t, string(data), `"message":"saved"`)
	assert.Contains(t, string(data), `"time"`)
}

func TestNewWithWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.WarnLevel)

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
