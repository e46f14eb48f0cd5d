package logger

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	config "github.com/inference-gateway/brain-dev/config"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		verbose       bool
		level         string
		format        string
		expectedLevel zapcore.Level
		expectError   bool
	}{
		{name: "default level", expectedLevel: zapcore.WarnLevel},
		{name: "configured level", level: "info", expectedLevel: zapcore.InfoLevel},
		{name: "verbose overrides level", verbose: true, level: "error", expectedLevel: zapcore.DebugLevel},
		{name: "json format", level: "debug", format: "json", expectedLevel: zapcore.DebugLevel},
		{name: "invalid level", level: "loud", expectError: true},
		{name: "invalid format", format: "xml", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Logging.Level = tt.level
			cfg.Logging.Format = tt.format

			l, closeFn, err := New(tt.verbose, cfg)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = closeFn() })
			assert.True(t, l.Core().Enabled(tt.expectedLevel))
			if tt.expectedLevel > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.expectedLevel-1))
			}
		})
	}
}

func TestNew_FileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := config.DefaultConfig()
	cfg.Logging.Dir = dir
	cfg.Logging.Level = "info"

	l, closeFn, err := New(false, cfg)
	require.NoError(t, err)

	l.Info("manifest checked", zap.String("version", "1.0.0"))
	require.NoError(t, l.Sync())
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "manifest checked")
	assert.Contains(t, string(data), "1.0.0")
}

func TestInit_CloseReleasesLogFile(t *testing.T) {
	previous := zap.L()
	t.Cleanup(func() {
		Close()
		zap.ReplaceGlobals(previous)
		sugar = previous.Sugar()
	})

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Logging.Dir = dir
	cfg.Logging.Level = "info"

	require.NoError(t, Init(false, cfg))
	Info("serving", "transport", "stdio")
	Error("serve failed", "error", "boom")
	Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "serving")
	assert.Contains(t, string(data), "serve failed")

	// the file handle is closed, so further writes are dropped
	Info("after close")
	data, err = os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "after close")
}

type syncErr struct{ err error }

func (s syncErr) Write(p []byte) (int, error) { return len(p), nil }
func (s syncErr) Sync() error                 { return s.err }

func TestConsoleSyncer(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectError bool
	}{
		{name: "ok", err: nil},
		{name: "pipe", err: &fs.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EINVAL}},
		{name: "terminal", err: &fs.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.ENOTTY}},
		{name: "real failure", err: errors.New("disk full"), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := consoleSyncer{syncErr{tt.err}}.Sync()
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx, logs := TestContext()

	ctx, id := WithSession(ctx)
	ctx = WithTool(ctx, "get_version")
	FromContext(ctx).Info("tool called")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "tool called", entry.Message)
	assert.Equal(t, id, entry.ContextMap()["session_id"])
	assert.Equal(t, "get_version", entry.ContextMap()["tool"])
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	assert.Same(t, zap.L(), FromContext(context.Background()))
}
