package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Level: "verbose", Format: "json"}); err == nil {
		t.Fatalf("expected unsupported level error")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Level: "info", Format: "xml"}); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestJSONOutputCarriesNameAndFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Named("stt").WithSession("abc").Info("connected", Int("status", 101))
	_ = log.Sync()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if entry["logger"] != "stt" {
		t.Fatalf("unexpected logger name: %v", entry["logger"])
	}
	if entry["session_id"] != "abc" {
		t.Fatalf("unexpected session id: %v", entry["session_id"])
	}
	if entry["status"] != float64(101) {
		t.Fatalf("unexpected status: %v", entry["status"])
	}
}

func TestAutoFormatFallsBackToJSONForNonTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if got := resolveFormat("auto", &buf); got != "json" {
		t.Fatalf("expected json for buffer output, got %q", got)
	}
	if got := resolveFormat("console", &buf); got != "console" {
		t.Fatalf("expected explicit format to win, got %q", got)
	}
}

func TestDebugLevelIsFiltered(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Config{Level: "warn", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("expected lower levels to be dropped: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn line: %s", buf.String())
	}
}

func TestRedact(t *testing.T) {
	t.Parallel()

	if got := Redact("abc"); got != "[REDACTED]" {
		t.Fatalf("unexpected short redaction: %q", got)
	}
	if got := Redact("supersecret"); got != "supe..." {
		t.Fatalf("unexpected redaction: %q", got)
	}
}

func TestFromZapNil(t *testing.T) {
	t.Parallel()

	if FromZap(nil) == nil {
		t.Fatalf("expected nop logger")
	}
}
