// SPDX-License-Identifier: MIT

package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixedviz/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range tests {
		got, err := logging.ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := logging.ParseLevel("loud")
	assert.ErrorContains(t, err, `logging: level "loud"`)
}

func TestNewFiltersByLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log, err := logging.New(&buf, "warn", true)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", "factor", "subj")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WRN shown")
	assert.Contains(t, out, "factor=subj")
	assert.NotContains(t, out, "\x1b[")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	_, err := logging.New(&bytes.Buffer{}, "verbose", true)
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()
	assert.False(t, logging.IsTerminal(&bytes.Buffer{}))
}
