package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestInfoProducesLogfmtWithTimestamp(t *testing.T) {
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(slog.New(newHandler(buf)))
	t.Cleanup(func() {
		ReplaceLogger(original)
	})

	Info(context.Background(), "hello", "user", "test")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatalf("expected log output, got empty string")
	}
	if !strings.Contains(line, "ts=") {
		t.Fatalf("expected timestamp field in log line, got %q", line)
	}
	if !strings.Contains(line, "level=info") {
		t.Fatalf("expected level field in log line, got %q", line)
	}
	if !strings.Contains(line, "msg=hello") {
		t.Fatalf("expected message field in log line, got %q", line)
	}
	if !strings.Contains(line, "user=test") {
		t.Fatalf("expected structured field in log line, got %q", line)
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(slog.New(newHandler(buf)))
	t.Cleanup(func() {
		ReplaceLogger(original)
		_ = SetLevel("info")
	})

	if err := SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel(warn) error = %v", err)
	}
	Info(context.Background(), "dropped")
	Warn(context.Background(), "kept")

	out := buf.String()
	if strings.Contains(out, "msg=dropped") {
		t.Fatalf("expected info line to be filtered, got %q", out)
	}
	if !strings.Contains(out, "level=warn") || !strings.Contains(out, "msg=kept") {
		t.Fatalf("expected warn line, got %q", out)
	}

	if err := SetLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestJSONHandlerRenamesKeys(t *testing.T) {
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(slog.New(newJSONHandler(buf)))
	t.Cleanup(func() {
		ReplaceLogger(original)
	})

	Error(context.Background(), "boom", "item", 7)

	line := strings.TrimSpace(buf.String())
	for _, want := range []string{`"ts":`, `"level":"error"`, `"msg":"boom"`, `"item":7`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in %q", want, line)
		}
	}
}

func TestSetFormatRejectsUnknown(t *testing.T) {
	if err := SetFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
