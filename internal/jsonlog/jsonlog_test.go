package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.PrintInfo("catalog loaded", map[string]string{"books": "12"})
	l.PrintError(errors.New("boom"), nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines; got %d", len(lines))
	}

	var entry struct {
		Level      string            `json:"level"`
		Message    string            `json:"message"`
		Properties map[string]string `json:"properties"`
		Trace      string            `json:"trace"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Level != "INFO" {
		t.Errorf("expected level INFO; got %s", entry.Level)
	}
	if entry.Message != "catalog loaded" {
		t.Errorf("unexpected message %q", entry.Message)
	}
	if entry.Properties["books"] != "12" {
		t.Errorf("unexpected properties %v", entry.Properties)
	}
	if entry.Trace != "" {
		t.Error("INFO entries should not carry a stack trace")
	}

	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("expected level ERROR; got %s", entry.Level)
	}
	if entry.Trace == "" {
		t.Error("ERROR entries should carry a stack trace")
	}
}

func TestLoggerMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)
	l.PrintInfo("dropped", nil)
	if buf.Len() != 0 {
		t.Errorf("expected INFO entry to be dropped; got %q", buf.String())
	}
}
