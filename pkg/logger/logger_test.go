package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestInitFormats(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWith(Options{Format: FormatJSON, Output: &buf}); err != nil {
		t.Fatalf("failed to initialize json logger: %v", err)
	}
	_ = SetLevelString("info")

	Get().Named("worker").Info(context.Background(), "scored",
		String("player_id", "p1"),
		Float64("overall", 6.4),
		Bool("new", true),
		Duration("took", 2*time.Millisecond),
		Int64("rows", 3),
		Error(errors.New("boom")),
	)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "scored" || rec["component"] != "worker" || rec["player_id"] != "p1" {
		t.Errorf("unexpected record %v", rec)
	}
	if rec["error"] != "boom" {
		t.Errorf("expected error text, got %v", rec["error"])
	}
	if src, _ := rec["source"].(string); !strings.Contains(src, "logger_test.go") {
		t.Errorf("expected caller in source, got %v", rec["source"])
	}

	if err := InitWith(Options{Format: "xml"}); err == nil {
		t.Error("expected unknown format to fail")
	}
}

func TestRequestIDIsAttached(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWith(Options{Output: &buf}); err != nil {
		t.Fatalf("init: %v", err)
	}
	ctx := WithRequestID(context.Background(), "req-42")
	if got := RequestID(ctx); got != "req-42" {
		t.Fatalf("RequestID = %q", got)
	}

	Get().Warn(ctx, "slow request")
	if !strings.Contains(buf.String(), "request_id=req-42") {
		t.Errorf("expected request id in %q", buf.String())
	}
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWith(Options{Output: &buf}); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { _ = SetLevelString("info") }()

	if err := SetLevelString("warn"); err != nil {
		t.Fatalf("SetLevelString: %v", err)
	}
	Get().Info(context.Background(), "hidden")
	Get().Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info and debug to be filtered, got %q", buf.String())
	}
	Get().With(String("k", "v")).Error(context.Background(), "shown")
	if !strings.Contains(buf.String(), "shown") || !strings.Contains(buf.String(), "k=v") {
		t.Errorf("expected error record with bound field, got %q", buf.String())
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected unknown level to fail")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info(context.Background(), "discarded")
	l.Named("x").With(Int("n", 1)).Error(context.TODO(), "discarded")
}
