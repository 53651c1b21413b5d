package buffer

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	nopLogger = zap.NewNop()
	logger    atomic.Pointer[zap.Logger]
)

// Logger returns the buffer package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}

	return nopLogger
}

// SetLogger configures the package logger used by buffers created without WithLogger.
// A nil logger restores the no-op default. It is safe to call concurrently with Logger.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
