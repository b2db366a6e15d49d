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

	"bilrost/internal/config"
	"bilrost/internal/logging"
)

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	var buf bytes.Buffer

	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("visible", logging.String("workspace", "demo"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered at info level: %q", out)
	}
	if !strings.Contains(out, "INFO visible workspace=demo") {
		t.Fatalf("unexpected console output: %q", out)
	}
}

func TestPrettyHandlerComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "supervisor").Warn("slow start", logging.String("addr", "127.0.0.1:9224"), logging.String("note", "two words"))

	out := buf.String()
	if !strings.Contains(out, "WARN supervisor: slow start") {
		t.Fatalf("expected component prefix, got %q", out)
	}
	if !strings.Contains(out, `note="two words"`) {
		t.Fatalf("expected quoted value, got %q", out)
	}
}

func TestJSONLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bilrost.log")
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Error("request failed", logging.Error(errors.New("boom")))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &record); err != nil {
		t.Fatalf("decode record %q: %v", data, err)
	}
	if record["level"] != "error" || record["msg"] != "request failed" || record["error"] != "boom" {
		t.Fatalf("unexpected record: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key in %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := logging.WithRequestID(context.Background(), "abc-123")
	logging.WithContext(ctx, logger).Info("sent")
	if !strings.Contains(buf.String(), "request_id=abc-123") {
		t.Fatalf("expected request id, got %q", buf.String())
	}
	if _, ok := logging.RequestIDFromContext(context.Background()); ok {
		t.Fatal("expected no request id on bare context")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "json"
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "diagnostics.log")
	var stderr bytes.Buffer

	logger, err := logging.NewFromConfig(&cfg, &stderr)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("service ready", logging.String("addr", "127.0.0.1:9224"))

	if stderr.Len() != 0 {
		t.Fatalf("expected nothing on stderr with logging.file set, got %q", stderr.String())
	}
	data, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"service ready"`) {
		t.Fatalf("unexpected log file contents: %q", data)
	}
}
