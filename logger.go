package gghud

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a feed goroutine is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for gghud and all its sub-packages.
// By default, gghud produces no log output.
//
// The logger is also handed to the gg paint library so that compass
// rendering diagnostics go to the same handler. Pass nil to restore the
// default silent behavior.
//
// Log levels used by gghud:
//   - [slog.LevelDebug]: per-frame detail (texture recreated, frame skipped)
//   - [slog.LevelInfo]: lifecycle events (overlay created, viewport bound)
//   - [slog.LevelWarn]: non-fatal backend trouble (feed reconnects, upload errors)
//   - [slog.LevelError]: overlay resources unavailable
//
// Example:
//
//	gghud.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		loggerPtr.Store(newNopLogger())
		gg.SetLogger(nil)
		return
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the current logger used by gghud.
// Sub-packages (backend/*, feed, compass) call this to share one
// configuration without import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
