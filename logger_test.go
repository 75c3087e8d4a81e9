package canopy

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger should never be nil")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled at every level")
	}
}

func TestSetLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(l)
	t.Cleanup(func() { SetLogger(nil) })

	if Logger() != l {
		t.Error("Logger should return the configured logger")
	}

	r, _ := newTestRenderer()
	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "renderer stopped") {
		t.Errorf("expected stop to be logged, got %q", buf.String())
	}
}
