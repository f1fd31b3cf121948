package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := Setup(Options{
		Level:   slog.LevelInfo,
		Format:  FormatText,
		Console: &buf,
	})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanup()

	logger.Info("configured", "platform", "cursor")

	output := buf.String()
	if !strings.Contains(output, "configured") {
		t.Errorf("expected message in console output, got: %q", output)
	}
	if !strings.Contains(output, "platform=cursor") {
		t.Errorf("expected attribute in console output, got: %q", output)
	}
}

func TestSetup_FileMirror(t *testing.T) {
	var buf bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "spectator.log")

	logger, cleanup, err := Setup(Options{
		Level:    slog.LevelInfo,
		Format:   FormatText,
		Console:  &buf,
		FilePath: logPath,
	})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	logger.Info("configured", "platform", "cursor")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	// Console got the text rendering
	if !strings.Contains(buf.String(), "configured") {
		t.Errorf("expected message on console, got: %q", buf.String())
	}

	// File got a JSON rendering of the same record
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &parsed); err != nil {
		t.Fatalf("log file is not JSON: %v\ncontent: %s", err, data)
	}
	if parsed["msg"] != "configured" {
		t.Errorf("log file msg = %v, want 'configured'", parsed["msg"])
	}
	if parsed["platform"] != "cursor" {
		t.Errorf("log file platform = %v, want 'cursor'", parsed["platform"])
	}
}

func TestSetup_FileAppend(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "spectator.log")
	if err := os.WriteFile(logPath, []byte("existing line\n"), 0600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger, cleanup, err := Setup(Options{
		Level:    slog.LevelInfo,
		Format:   FormatText,
		Console:  &buf,
		FilePath: logPath,
	})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	logger.Info("second line")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "existing line\n") {
		t.Errorf("expected existing content preserved, got: %q", data)
	}
	if !strings.Contains(string(data), "second line") {
		t.Errorf("expected new record appended, got: %q", data)
	}
}

func TestSetup_BadFilePath(t *testing.T) {
	var buf bytes.Buffer
	_, _, err := Setup(Options{
		Level:    slog.LevelInfo,
		Format:   FormatText,
		Console:  &buf,
		FilePath: filepath.Join(t.TempDir(), "missing", "dir", "spectator.log"),
	})
	if err == nil {
		t.Fatal("expected error for unwritable log file path")
	}
}

func TestMultiHandler_DispatchesToAll(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	logger := slog.New(h)

	logger.Info("both destinations")

	if !strings.Contains(a.String(), "both destinations") {
		t.Errorf("first handler missing record: %q", a.String())
	}
	if !strings.Contains(b.String(), "both destinations") {
		t.Errorf("second handler missing record: %q", b.String())
	}
}

func TestMultiHandler_RespectsPerHandlerLevels(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("MultiHandler should be enabled when any handler is enabled")
	}

	logger := slog.New(h)
	logger.Debug("debug record")

	if a.Len() != 0 {
		t.Errorf("error-level handler should not receive debug record: %q", a.String())
	}
	if !strings.Contains(b.String(), "debug record") {
		t.Errorf("debug-level handler missing record: %q", b.String())
	}
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	)
	logger := slog.New(h).With("common", "attr")

	logger.Info("message")

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		if !strings.Contains(buf.String(), "common=attr") {
			t.Errorf("%s handler missing shared attribute: %q", name, buf.String())
		}
	}
}
