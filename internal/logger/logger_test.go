package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-linkedin-doppelganger/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(config.LoggingConfig{Level: "info"}, &buf)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("stage", "navigating").Msg("visible")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "exactly one JSON line expected: %s", buf.String())
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "navigating", entry["stage"])
	assert.Equal(t, "doppelganger", entry["app"])
}

func TestNewWithWriter_BadLevel(t *testing.T) {
	_, err := NewWithWriter(config.LoggingConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
