package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nssk/internal/config"
	"nssk/internal/logging"
	"nssk/internal/services"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "nssk.log")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello", logging.String("key", "value"))

	content := readLog(t, cfg.Logging.File)
	if !strings.Contains(content, "INFO hello key=value") {
		t.Fatalf("unexpected console log line: %q", content)
	}
}

func TestConsoleLoggerPrefixesComponentAndQuotes(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "selector").Info("decided", logging.String("title", "The Show"), logging.Int("season", 2))

	content := readLog(t, logPath)
	if !strings.Contains(content, "selector: decided") {
		t.Fatalf("expected component prefix, got %q", content)
	}
	if !strings.Contains(content, `title="The Show"`) || !strings.Contains(content, "season=2") {
		t.Fatalf("expected formatted fields, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("with caller")
	if content := readLog(t, logPath); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestJSONLoggerUsesTSKey(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("careful", logging.Error(errors.New("boom")))

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
	if entry["level"] != "warn" || entry["error"] != "boom" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsRunAndSeriesFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctx.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := services.WithSeriesID(services.WithRunID(context.Background(), "abc"), 9)
	logging.WithContext(ctx, logger).Info("fetched")

	content := readLog(t, logPath)
	if !strings.Contains(content, "run_id=abc") || !strings.Contains(content, "series_id=9") {
		t.Fatalf("expected context fields, got %q", content)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "collection suppressed", "collection_suppressed", logging.String(logging.FieldImpact, "collection file not written"))

	content := readLog(t, logPath)
	for _, fragment := range []string{"event_type=collection_suppressed", "error_hint=", `impact="collection file not written"`} {
		if !strings.Contains(content, fragment) {
			t.Fatalf("expected %q in %q", fragment, content)
		}
	}
}

func TestDecisionAttrs(t *testing.T) {
	attrs := logging.DecisionAttrs("premiere_selection", "matched", "premiere within window")
	if len(attrs) != 3 || attrs[0].Key != logging.FieldDecisionType || attrs[1].Value.String() != "matched" {
		t.Fatalf("unexpected decision attrs: %v", attrs)
	}
}
