package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogBeforeInit(t *testing.T) {
	globalLogger = nil
	// must not panic
	Info(context.Background(), "hello", "k", "v")
	Decision(context.Background(), "TCS.NS", "BUY", 71.2, "test")
}

func TestDecisionFields(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithConfig(LogConfig{Level: "INFO", Format: "json", Writer: &buf}); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { globalLogger = nil }()

	Decision(context.Background(), "AAPL", "HOLD", 42.5, "composite", "score", 0.1)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["type"] != "DECISION" || rec["symbol"] != "AAPL" || rec["action"] != "HOLD" {
		t.Errorf("unexpected record: %v", rec)
	}
	if rec["confidence"] != 42.5 {
		t.Errorf("expected confidence 42.5, got %v", rec["confidence"])
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	_ = InitWithConfig(LogConfig{Level: "INFO", Format: "text", Writer: &buf})
	defer func() { globalLogger = nil }()

	Debug(context.Background(), "hidden")
	WarnWithErr(context.Background(), "visible", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug line to be dropped, got %q", out)
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "boom") {
		t.Errorf("expected warning with error, got %q", out)
	}
}

func TestOperationTimer(t *testing.T) {
	var buf bytes.Buffer
	_ = InitWithConfig(LogConfig{Level: "DEBUG", Format: "text", Writer: &buf})
	defer func() {
		globalLogger = nil
		_ = InitWithConfig(LogConfig{Level: "INFO", Writer: &bytes.Buffer{}})
		globalLogger = nil
	}()

	op := StartOperation(context.Background(), "fetch", "ticker", "INFY.NS")
	if d := op.End("rows", 3); d < 0 {
		t.Errorf("expected non-negative duration, got %v", d)
	}
	if !strings.Contains(buf.String(), "Operation completed") {
		t.Errorf("expected completion log, got %q", buf.String())
	}

	buf.Reset()
	StartOperation(context.Background(), "fetch").EndWithError(errors.New("timeout"))
	if !strings.Contains(buf.String(), "Operation failed") {
		t.Errorf("expected failure log, got %q", buf.String())
	}
}
