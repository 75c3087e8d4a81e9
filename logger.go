package canopy

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by canopy. By default canopy produces
// no log output. Pass nil to restore the silent default.
//
// The logger is also handed to the gg rasterizer so both libraries log
// through the same handler.
//
// Log levels used by canopy:
//   - [slog.LevelDebug]: per-frame pipeline stats (see Renderer.SetDebugMode)
//   - [slog.LevelInfo]: lifecycle events (renderer stopped, input source closed)
//   - [slog.LevelWarn]: non-fatal issues (non-finite hit-test point, failed
//     screenshot, oversized trees)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
