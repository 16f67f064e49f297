package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestColoredHandler(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewColoredHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered: %q", buf.String())
	}

	l.With("component", "renderer").WithGroup("pdf").Info("printed", RequestIDAttr, "abc", "pages", 2)
	out := buf.String()
	for _, want := range []string{"[abc]", "printed", `component` + reset + `="renderer"`, "pdf.pages" + reset + "=2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected a single line, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
