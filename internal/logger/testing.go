package logger

import (
	"context"

	zap "go.uber.org/zap"
	observer "go.uber.org/zap/zaptest/observer"
)

// TestContext returns a context whose logger records every entry at debug
// level and above into the returned ObservedLogs
func TestContext() (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return ContextWithLogger(context.Background(), zap.New(core)), logs
}

// NopContext returns a context with a logger that discards everything
func NopContext() context.Context {
	return ContextWithLogger(context.Background(), zap.NewNop())
}
