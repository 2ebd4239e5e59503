package shapes

import (
	"log/slog"
	"sync/atomic"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() { loggerPtr.Store(slog.New(slog.DiscardHandler)) }

// SetLogger configures the logger used by the shapes package. By default
// nothing is logged. Passing nil restores the silent default.
//
// The factory logs rejected records and malformed colors at warn level.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger { return loggerPtr.Load() }
