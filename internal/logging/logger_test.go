package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"segcheck/internal/config"
	"segcheck/internal/logging"
)

func TestConsoleLoggerFormatsComponentAndSegment(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "loader")
	logger.Info("skipped entry", logging.SegmentID("seg-7"), logging.String("reason", "no id here"))

	line := buf.String()
	if !strings.Contains(line, "INFO  loader [seg-7]: skipped entry") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, `reason="no id here"`) {
		t.Fatalf("expected quoted attribute, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be rendered as prefix, got %q", line)
	}
}

func TestConsoleLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestJSONLoggerUsesStableKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("loaded", logging.Int("count", 3))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if payload["msg"] != "loaded" || payload["level"] != "info" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
	if payload["count"] != float64(3) {
		t.Fatalf("unexpected count: %v", payload["count"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "malformed record", "malformed_record",
		logging.String(logging.FieldImpact, "record ignored"),
	)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload[logging.FieldEventType] != "malformed_record" {
		t.Fatalf("expected event type, got %v", payload)
	}
	if payload[logging.FieldErrorHint] == nil {
		t.Fatalf("expected default error hint, got %v", payload)
	}
	if payload[logging.FieldImpact] != "record ignored" {
		t.Fatalf("expected caller impact to win, got %v", payload[logging.FieldImpact])
	}
}

func TestErrorWithContextIncludesError(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.ErrorWithContext(logger, "archive failed", "archive_write", logging.Error(errors.New("disk full")))
	out := buf.String()
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, `error="disk full"`) || !strings.Contains(out, "event_type=archive_write") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestWithContextAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	base, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := logging.WithRunID(context.Background(), "run-1")
	logging.WithContext(ctx, base).Info("started")
	if !strings.Contains(buf.String(), `"run_id":"run-1"`) {
		t.Fatalf("expected run id in output, got %q", buf.String())
	}

	if _, ok := logging.RunIDFromContext(context.Background()); ok {
		t.Fatal("expected no run id on empty context")
	}
}

func TestNewFromConfigTeesToLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()
	cfg.Logging.File = true

	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Warn("written twice")

	if !strings.Contains(buf.String(), "written twice") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
	data, err := os.ReadFile(filepath.Join(cfg.Paths.StateDir, "segcheck.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"written twice"`) {
		t.Fatalf("expected JSON line in log file, got %q", data)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should not be enabled")
	}
	logging.WarnWithContext(nil, "ignored", "none")
}
