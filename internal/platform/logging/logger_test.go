package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Named("identity").Warn("player unresolved",
		"name", "X. Nobody",
		"score", 41.5,
		"error", errors.New("below threshold"),
	)
	logger.Debug("suppressed below level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, sonic.UnmarshalString(lines[0], &entry))
	require.Equal(t, "WARN", entry["level"])
	require.Equal(t, "identity", entry["logger"])
	require.Equal(t, "player unresolved", entry["msg"])
	require.Equal(t, "X. Nobody", entry["name"])
	require.Equal(t, 41.5, entry["score"])
	require.Equal(t, "below threshold", entry["error"])
}

func TestLogger_OddArgsAndNilReceiver(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf}).With("run_id", "r-1")
	logger.Info("dangling", "key")

	require.Contains(t, buf.String(), `"run_id":"r-1"`)
	require.Contains(t, buf.String(), `"key":null`)

	var nilLogger *Logger
	nilLogger.Info("no panic")
	require.NoError(t, nilLogger.Sync())
}

func TestParseFormat(t *testing.T) {
	require.Equal(t, FormatConsole, ParseFormat(" Console "))
	require.Equal(t, FormatJSON, ParseFormat("json"))
	require.Equal(t, FormatJSON, ParseFormat(""))
}
