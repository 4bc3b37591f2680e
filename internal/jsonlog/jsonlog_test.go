package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Level      string            `json:"level"`
	Time       string            `json:"time"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
	Trace      string            `json:"trace"`
}

func entries(t *testing.T, buf *bytes.Buffer) []entry {
	t.Helper()

	var out []entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e entry
		require.NoError(t, json.Unmarshal([]byte(line), &e), line)
		out = append(out, e)
	}
	return out
}

func TestPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	logger.PrintInfo("starting server", map[string]string{"addr": ":4000"})

	got := entries(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "INFO", got[0].Level)
	assert.Equal(t, "starting server", got[0].Message)
	assert.Equal(t, map[string]string{"addr": ":4000"}, got[0].Properties)
	assert.NotEmpty(t, got[0].Time)
	assert.Empty(t, got[0].Trace)
}

func TestPrintErrorHasTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	logger.PrintError(errors.New("disk full"), nil)

	got := entries(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "ERROR", got[0].Level)
	assert.Equal(t, "disk full", got[0].Message)
	assert.Nil(t, got[0].Properties)
	assert.NotEmpty(t, got[0].Trace)
}

func TestMinLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelError)

	logger.PrintInfo("hidden", nil)
	_, err := logger.Write([]byte("http: TLS handshake error\n"))
	require.NoError(t, err)

	got := entries(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "http: TLS handshake error", got[0].Message)

	buf.Reset()
	New(&buf, LevelOff).PrintError(errors.New("hidden"), nil)
	assert.Empty(t, buf.String())
}

func TestPrintFatalExits(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	code := -1
	logger.exit = func(c int) { code = c }
	logger.PrintFatal(errors.New("cannot open store"), map[string]string{"driver": "file"})

	assert.Equal(t, 1, code)
	got := entries(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "FATAL", got[0].Level)
}

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel("error")
	assert.True(t, ok)
	assert.Equal(t, LevelError, l)

	_, ok = ParseLevel("verbose")
	assert.False(t, ok)
}
