package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetup_JSONFormat(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger := Setup(&buf, "info", "json")
	logger.Info("hello", "k", "v")
	logger.Debug("filtered")

	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("expected JSON record, got %q", out)
	}
	if strings.Contains(out, "filtered") {
		t.Errorf("debug record should be filtered at info level: %q", out)
	}
}

func TestSetup_TextFormat(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	Setup(&buf, "debug", "text")
	slog.Debug("visible", "k", "v")

	if !strings.Contains(buf.String(), "msg=visible") {
		t.Errorf("expected text record via default logger, got %q", buf.String())
	}
}
