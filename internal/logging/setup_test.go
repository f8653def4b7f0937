package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/treescan/internal/logging"
)

func TestOptionsLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, logging.Options{}.Level())
	assert.Equal(t, slog.LevelDebug, logging.Options{Verbose: true}.Level())
	assert.Equal(t, slog.LevelError, logging.Options{Quiet: true}.Level())
	assert.Equal(t, slog.LevelDebug, logging.Options{Verbose: true, Quiet: true}.Level())
}

func TestNew_StderrOnly(t *testing.T) {
	var stderr bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Stderr: &stderr})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "shown")
}

func TestNew_LogFile(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "scan.log")

	logger, closer, err := logging.New(logging.Options{Stderr: &stderr, LogFile: path})
	require.NoError(t, err)

	logger.Debug("debug record", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"debug record"`)
	assert.NotContains(t, stderr.String(), "debug record")
}

func TestNew_LogFileCreateFails(t *testing.T) {
	_, _, err := logging.New(logging.Options{LogFile: filepath.Join(t.TempDir(), "no", "x.log")})
	require.Error(t, err)
}
