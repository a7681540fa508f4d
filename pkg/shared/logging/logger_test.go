// 指示: miu200521358
package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerRespectsLevel(t *testing.T) {
	out := bytes.NewBuffer(nil)
	logger := NewLogger(out)
	logger.SetLevel(LOG_LEVEL_INFO)

	logger.Debug("hidden %d", 1)
	logger.Info("shown %d", 2)

	lines := logger.MessageBuffer().Lines()
	if len(lines) != 1 || lines[0] != "shown 2" {
		t.Fatalf("buffer mismatch: got=%v", lines)
	}
	if !strings.Contains(out.String(), "shown 2") || strings.Contains(out.String(), "hidden") {
		t.Fatalf("output mismatch: %s", out.String())
	}

	logger.SetLevel(LOG_LEVEL_DEBUG)
	if logger.Level() != LOG_LEVEL_DEBUG {
		t.Fatalf("level mismatch: got=%s", logger.Level())
	}
	logger.Debug("now shown")
	if got := len(logger.MessageBuffer().Lines()); got != 2 {
		t.Fatalf("buffer length mismatch: got=%d want=2", got)
	}
	logger.MessageBuffer().Clear()
	if got := len(logger.MessageBuffer().Lines()); got != 0 {
		t.Fatalf("buffer should be cleared: got=%d", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LOG_LEVEL_DEBUG,
		"INFO":    LOG_LEVEL_INFO,
		"":        LOG_LEVEL_INFO,
		"warning": LOG_LEVEL_WARN,
		"Error":   LOG_LEVEL_ERROR,
	}
	for name, want := range cases {
		got, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("parse failed: name=%s err=%v", name, err)
		}
		if got != want {
			t.Fatalf("level mismatch: name=%s got=%s want=%s", name, got, want)
		}
	}
	if _, err := ParseLevel("trace"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSetDefaultLogger(t *testing.T) {
	logger := NewLogger(nil)
	prevLogger := DefaultLogger()
	SetDefaultLogger(logger)
	t.Cleanup(func() {
		SetDefaultLogger(prevLogger)
	})

	DefaultLogger().Warn("warn message")
	if lines := logger.MessageBuffer().Lines(); len(lines) != 1 || lines[0] != "warn message" {
		t.Fatalf("default logger mismatch: got=%v", lines)
	}
}
