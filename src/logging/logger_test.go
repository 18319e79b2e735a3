package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestCtxAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	SetLogger(New(Config{Output: &buf}))
	t.Cleanup(func() { SetLogger(original) })

	ctx := ContextWithRequestID(context.Background(), "req-123")
	Ctx(ctx).Info().Msg("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to decode log line %q: %v", buf.String(), err)
	}
	if entry["request_id"] != "req-123" {
		t.Errorf("request_id = %v, want req-123", entry["request_id"])
	}
	if entry["message"] != "hello" {
		t.Errorf("message = %v, want hello", entry["message"])
	}
}

func TestCtxWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	SetLogger(New(Config{Output: &buf}))
	t.Cleanup(func() { SetLogger(original) })

	Ctx(context.Background()).Info().Msg("plain")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("unexpected request_id in %q", buf.String())
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	id := GenerateRequestID()
	if len(id) != 36 {
		t.Fatalf("expected UUID string, got %q", id)
	}
	ctx := ContextWithRequestID(context.Background(), id)
	if got := RequestIDFromContext(ctx); got != id {
		t.Errorf("RequestIDFromContext = %q, want %q", got, id)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"":         "info",
		"DEBUG":    "debug",
		"warning":  "warn",
		"error":    "error",
		"disabled": "disabled",
		"verbose":  "info",
	}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestSetLoggerSwapsGlobal(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	SetLogger(New(Config{Output: &buf}))
	t.Cleanup(func() { SetLogger(original) })

	Warn().Str("component", "test").Msg("swapped")

	if !strings.Contains(buf.String(), `"component":"test"`) {
		t.Errorf("log line %q missing field", buf.String())
	}
}
