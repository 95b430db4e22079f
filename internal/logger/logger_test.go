package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init("warn", &buf)
	t.Cleanup(func() { Init("warn", nil) })

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug/info to be filtered: %s", out)
	}
	if !strings.Contains(out, "[WARN] shown 3") || !strings.Contains(out, "[ERROR] shown 4") {
		t.Fatalf("missing warn/error lines: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	if l, ok := ParseLevel("DEBUG"); !ok || l != DebugLevel {
		t.Fatalf("expected debug level, got %v", l)
	}
	if l, ok := ParseLevel("verbose"); ok || l != InfoLevel {
		t.Fatalf("expected info fallback for unknown level, got %v", l)
	}
}
