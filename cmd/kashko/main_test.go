package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kashko.log")
	logger, closeLog, err := newLogger(path, true)
	require.NoError(t, err)

	logger.Debug("tick timer started", "rate", 0.1)
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tick timer started")
	assert.Contains(t, string(data), "rate=0.1")
}

func TestNewLoggerDiscardByDefault(t *testing.T) {
	logger, closeLog, err := newLogger("", false)
	require.NoError(t, err)
	defer closeLog()
	logger.Info("nowhere")
}

func TestNewLoggerBadPath(t *testing.T) {
	_, _, err := newLogger(filepath.Join(t.TempDir(), "missing", "x.log"), false)
	require.Error(t, err)
}
