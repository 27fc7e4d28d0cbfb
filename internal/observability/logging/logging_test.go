package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
)

func TestValidateAndExtractRequestID(t *testing.T) {
	valid := uuid.NewString()

	tests := []struct {
		name     string
		input    string
		wantSame bool
	}{
		{name: "valid uuid is kept", input: valid, wantSame: true},
		{name: "empty gets a new id", input: ""},
		{name: "garbage gets a new id", input: "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateAndExtractRequestID(tt.input)
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("expected a uuid, got %q", got)
			}
			if tt.wantSame && got != tt.input {
				t.Errorf("expected %q, got %q", tt.input, got)
			}
			if !tt.wantSame && got == tt.input {
				t.Errorf("expected a replacement id")
			}
		})
	}
}

func TestHandlerAddsContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(HandlerConfig{
		Writer:        &buf,
		Level:         slog.LevelInfo,
		Service:       ServiceInfo{Name: "reminder", Version: "test"},
		Environment:   EnvDev,
		DefaultModule: Module("reminder"),
	}))

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithModule(ctx, Module("duesweep"))

	logger.InfoContext(ctx, "hello", slog.String("key", "value"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}

	if entry["message"] != "hello" || entry["severity"] != "INFO" {
		t.Errorf("unexpected message/severity: %v", entry)
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("expected request_id, got %v", entry["request_id"])
	}
	if entry["module"] != "duesweep" {
		t.Errorf("expected context module to win, got %v", entry["module"])
	}
	if entry["env"] != "dev" {
		t.Errorf("expected env dev, got %v", entry["env"])
	}
	service, ok := entry["service"].(map[string]any)
	if !ok || service["name"] != "reminder" {
		t.Errorf("unexpected service group: %v", entry["service"])
	}
}

func TestHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(HandlerConfig{
		Writer: &buf,
		Level:  slog.LevelWarn,
	}))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %s", buf.String())
	}
}
