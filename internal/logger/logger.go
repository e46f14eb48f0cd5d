package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	config "github.com/inference-gateway/brain-dev/config"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
)

const logFileName = "brain-dev.log"

var (
	sugar   = zap.NewNop().Sugar()
	release = func() error { return nil }
)

// Init builds the global logger. Output always goes to stderr so that the
// stdio MCP transport keeps stdout for protocol frames.
func Init(verbose bool, cfg *config.Config) error {
	l, closeFn, err := New(verbose, cfg)
	if err != nil {
		return err
	}

	Close()
	zap.ReplaceGlobals(l)
	sugar = l.Sugar()
	release = closeFn
	return nil
}

// New creates a logger from the logging section of cfg. The returned func
// flushes the logger and closes the log file, if one was opened.
func New(verbose bool, cfg *config.Config) (*zap.Logger, func() error, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	level, err := parseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Logging.Format) {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	case "", "console", "text":
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		return nil, nil, fmt.Errorf("unsupported log format %q", cfg.Logging.Format)
	}

	var file *os.File
	sinks := []zapcore.WriteSyncer{consoleSyncer{zapcore.Lock(os.Stderr)}}
	if cfg.Logging.Dir != "" {
		if err := os.MkdirAll(cfg.Logging.Dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err = os.OpenFile(filepath.Join(cfg.Logging.Dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sinks = append(sinks, zapcore.AddSync(file))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	l := zap.New(core)

	closeFn := func() error {
		err := l.Sync()
		if file != nil {
			err = errors.Join(err, file.Close())
		}
		return err
	}
	return l, closeFn, nil
}

// consoleSyncer ignores the error fsync reports for pipes and terminals
type consoleSyncer struct {
	zapcore.WriteSyncer
}

func (s consoleSyncer) Sync() error {
	err := s.WriteSyncer.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.WarnLevel, nil
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.WarnLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Close flushes buffered log entries and closes the log file
func Close() {
	_ = release()
	release = func() error { return nil }
}

// Debug logs a debug message with key/value pairs
func Debug(msg string, args ...any) {
	sugar.Debugw(msg, args...)
}

// Info logs an info message with key/value pairs
func Info(msg string, args ...any) {
	sugar.Infow(msg, args...)
}

// Error logs an error message with key/value pairs
func Error(msg string, args ...any) {
	sugar.Errorw(msg, args...)
}
