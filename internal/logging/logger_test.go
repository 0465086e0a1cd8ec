package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerRendersAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("burn started", String(FieldDevice, "/dev/sr0"), Int(FieldJobID, 3))

	out := buf.String()
	if !strings.Contains(out, "burn started") {
		t.Fatalf("missing message: %q", out)
	}
	if !strings.Contains(out, "device=/dev/sr0") || !strings.Contains(out, "job_id=3") {
		t.Fatalf("missing attrs: %q", out)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("msg", String(FieldJobName, "Road Trip Mix"))
	if !strings.Contains(buf.String(), `job_name="Road Trip Mix"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestComponentLoggerToleratesNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "workflow")
	logger.Info("should not panic")
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("nonsense"); got != slog.LevelInfo {
		t.Fatalf("expected info, got %v", got)
	}
	if got := parseLevel("debug"); got != slog.LevelDebug {
		t.Fatalf("expected debug, got %v", got)
	}
}
