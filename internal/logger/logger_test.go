// SPDX-License-Identifier: MIT

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestSetupWriter_JSONFields(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	var buf bytes.Buffer
	SetupWriter("debug", "json", &buf)

	Log.Info("allocated", "bytes", 64, "arena", "a1", "err", errors.New("boom"))

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "info", rec["level"])
	require.Equal(t, "allocated", rec["message"])
	require.Equal(t, float64(64), rec["bytes"])
	require.Equal(t, "a1", rec["arena"])
	require.Equal(t, "boom", rec["err"])
}

func TestSetupWriter_LevelFilters(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	var buf bytes.Buffer
	SetupWriter("warn", "json", &buf)

	Log.Debug("hidden")
	Log.Info("hidden")
	require.Zero(t, buf.Len())

	Log.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestWith_CarriesFields(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	var buf bytes.Buffer
	SetupWriter("info", "json", &buf)

	child := Log.With("component", "arena", 7, "odd-key")
	child.Info("ready")
	require.Contains(t, buf.String(), `"component":"arena"`)
	require.Contains(t, buf.String(), `"7":"odd-key"`)
}

func TestLoggerWithOddArgs(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	var buf bytes.Buffer
	SetupWriter("info", "console", &buf)

	Log.Info("odd", "key1", "value1", "dangling")
	out := buf.String()
	require.True(t, strings.Contains(out, "key1=value1"))
	require.False(t, strings.Contains(out, "dangling"))
}
