package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestGetRedisURL(t *testing.T) {
	logger := zaptest.NewLogger(t)
	dir := t.TempDir()

	urlFile := filepath.Join(dir, "redis-url")
	require.NoError(t, os.WriteFile(urlFile, []byte("  redis://from-file:6379\n"), 0o600))

	emptyFile := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(emptyFile, []byte("\n"), 0o600))

	tests := []struct {
		name     string
		env      string
		file     string
		expected string
	}{
		{name: "environment wins", env: "redis://from-env:6379", file: urlFile, expected: "redis://from-env:6379"},
		{name: "file content", file: urlFile, expected: "redis://from-file:6379"},
		{name: "empty file falls back", file: emptyFile, expected: defaultRedisURL},
		{name: "missing file falls back", file: filepath.Join(dir, "missing"), expected: defaultRedisURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REDIS_URL", tt.env)
			t.Setenv("SCREENSHOT_REDIS_URL_FILE", tt.file)

			assert.Equal(t, tt.expected, GetRedisURL(logger))
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("SCREENSHOT_CONFIG_FILE", "")
	assert.Equal(t, defaultConfigPath, GetConfigPath())

	t.Setenv("SCREENSHOT_CONFIG_FILE", "/etc/screenshot.yaml")
	assert.Equal(t, "/etc/screenshot.yaml", GetConfigPath())
}
