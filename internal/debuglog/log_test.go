package debuglog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelOff, "OFF"},
		{LogLevel(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"off", LevelOff},
		{" error ", LevelError},
		{"nonsense", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.in), "input %q", tt.in)
	}
}

func TestSetupAndFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	require.NoError(t, Setup(LevelWarn, path))
	defer func() {
		Close()
		SetLevel(LevelOff)
	}()

	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warnf("warn %d", 3)
	Errorf("error %d", 4)

	require.NoError(t, Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)

	assert.NotContains(t, content, "debug 1")
	assert.NotContains(t, content, "info 2")
	assert.Contains(t, content, "[WARN] warn 3")
	assert.Contains(t, content, "[ERROR] error 4")
	assert.Contains(t, content, "tfeed ")
}

func TestSetupOffWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	require.NoError(t, Setup(LevelOff, path))
	Errorf("should not appear")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSetLevelAndGetLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, Setup(LevelError, path))
	defer func() {
		Close()
		SetLevel(LevelOff)
	}()

	assert.Equal(t, LevelError, GetLevel())

	SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, GetLevel())

	Debugf("now visible")
	require.NoError(t, Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "now visible")
}

func TestCloseWithoutSetup(t *testing.T) {
	assert.NoError(t, Close())
}
