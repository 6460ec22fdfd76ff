package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: "json"}, "fuel-test", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "debug")
	l.Debug("call done", CallFields("GET", "http://example.com/get", 200))

	m := decodeLine(t, &buf)
	if m["message"] != "call done" {
		t.Errorf("expected message 'call done', got %v", m["message"])
	}
	if m[FieldMethod] != "GET" {
		t.Errorf("expected method GET, got %v", m[FieldMethod])
	}
	if m[FieldStatusCode] != float64(200) {
		t.Errorf("expected status 200, got %v", m[FieldStatusCode])
	}
	if m["service"] != "fuel-test" {
		t.Errorf("expected service field, got %v", m["service"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")
	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "invalid-level")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected info level, got %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithComponent("fuel.httpclient").Info("x")
	if m := decodeLine(t, &buf); m[FieldComponent] != "fuel.httpclient" {
		t.Errorf("expected component field, got %v", m[FieldComponent])
	}
}

func TestWithContext_RequestID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithRequestID(context.Background(), "req-1")
	jsonLogger(&buf, "info").WithContext(ctx).Info("x")
	if m := decodeLine(t, &buf); m[FieldRequestID] != "req-1" {
		t.Errorf("expected request_id, got %v", m[FieldRequestID])
	}
}

func TestWithContext_NoValue(t *testing.T) {
	l := jsonLogger(&bytes.Buffer{}, "info")
	if l.WithContext(context.Background()) != l {
		t.Error("expected same logger when context has no request id")
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").
		WithFields(Fields(FieldCodec, "gojson")).
		WithError(fmt.Errorf("boom")).
		Error("decode failed")
	m := decodeLine(t, &buf)
	if m[FieldCodec] != "gojson" {
		t.Errorf("expected codec field, got %v", m[FieldCodec])
	}
	if m["error"] != "boom" {
		t.Errorf("expected error field, got %v", m["error"])
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "", &buf)
	l.Info("hello", Fields("k", "v"))
	out := buf.String()
	if !strings.Contains(out, "[INF]") || !strings.Contains(out, "hello") || !strings.Contains(out, "k:") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestNop(t *testing.T) {
	Nop().Error("nothing")
}

func TestSetGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	SetGlobalLogger(jsonLogger(&buf, "info"))
	Info("global")
	if !strings.Contains(buf.String(), "global") {
		t.Errorf("expected global output, got %q", buf.String())
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := Nop()
	Register("custom", l)
	if Get("custom") != l {
		t.Error("expected registered logger")
	}
	if Get("unregistered") == nil {
		t.Error("expected fallback logger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stderr" || !cfg.Timestamp {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		cfg     Config
		wantErr bool
	}{
		{Config{Level: "debug", Format: "json"}, false},
		{Config{Level: "info", Format: "console"}, false},
		{Config{Level: "loud", Format: "json"}, true},
		{Config{Level: "info", Format: "xml"}, true},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.cfg, err, tt.wantErr)
		}
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(m) != 2 || m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestCallFields_OmitsZeroStatus(t *testing.T) {
	if _, ok := CallFields("GET", "u", 0)[FieldStatusCode]; ok {
		t.Error("expected no status field for zero status")
	}
}

func TestMergeHelpers(t *testing.T) {
	m := MergeWithError(nil, fmt.Errorf("x"))
	if m[FieldError] != "x" {
		t.Errorf("unexpected %v", m)
	}
	m = MergeWithDuration(m, 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("unexpected %v", m)
	}
}
