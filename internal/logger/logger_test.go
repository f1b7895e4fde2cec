package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected valid JSON output, got error: %v (%q)", err, buf.String())
	}
	return entry
}

func TestNew(t *testing.T) {
	for _, env := range []string{EnvDevelopment, EnvTest, "production"} {
		if New(env) == nil {
			t.Errorf("Expected logger to be created for %s", env)
		}
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		env       string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{env: EnvDevelopment, wantDebug: true, wantInfo: true, wantWarn: true},
		{env: "production", wantDebug: false, wantInfo: true, wantWarn: true},
		{env: EnvTest, wantDebug: false, wantInfo: false, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(tt.env, &buf)

			log.Debug("debug message", nil)
			if got := strings.Contains(buf.String(), "debug message"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			buf.Reset()

			log.Info("info message", nil)
			if got := strings.Contains(buf.String(), "info message"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			buf.Reset()

			log.Warn("warn message", nil)
			if got := strings.Contains(buf.String(), "warn message"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestInfo_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.Info("Transaction recorded", map[string]interface{}{
		"property_id": "p1",
		"count":       3,
	})

	entry := decode(t, &buf)
	if entry["message"] != "Transaction recorded" {
		t.Errorf("Expected message field, got %v", entry["message"])
	}
	if entry["property_id"] != "p1" {
		t.Errorf("Expected property_id p1, got %v", entry["property_id"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("Expected count 3, got %v", entry["count"])
	}
	if entry["service"] != "propman" {
		t.Errorf("Expected service propman, got %v", entry["service"])
	}
}

type amount string

func (a amount) String() string { return "£" + string(a) }

func TestFields_StringersAndErrors(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.Warn("Cache unavailable", map[string]interface{}{
		"cause": errors.New("connection refused"),
		"rent":  amount("1200.00"),
	})

	entry := decode(t, &buf)
	if entry["cause"] != "connection refused" {
		t.Errorf("Expected error text, got %v", entry["cause"])
	}
	if entry["rent"] != "£1200.00" {
		t.Errorf("Expected Stringer text, got %v", entry["rent"])
	}
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.Error("Failed to persist state snapshot", errors.New("db down"), map[string]interface{}{
		"context": "database",
	})

	entry := decode(t, &buf)
	if entry["error"] != "db down" {
		t.Errorf("Expected error field, got %v", entry["error"])
	}
	if entry["level"] != "error" {
		t.Errorf("Expected error level, got %v", entry["level"])
	}
}

func TestChildLoggers(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	child := log.With(map[string]interface{}{"timeout": 2 * time.Second}).
		WithRequestID("req-12345").
		WithComponent("extraction-worker")
	child.Info("job done", nil)

	entry := decode(t, &buf)
	if entry["request_id"] != "req-12345" {
		t.Errorf("Expected request_id, got %v", entry["request_id"])
	}
	if entry["component"] != "extraction-worker" {
		t.Errorf("Expected component, got %v", entry["component"])
	}
	if entry["timeout"] != "2s" {
		t.Errorf("Expected timeout 2s, got %v", entry["timeout"])
	}
}

func TestNilFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.Info("message with nil fields", nil)

	if !strings.Contains(buf.String(), "message with nil fields") {
		t.Error("Expected message to be logged even with nil fields")
	}
}
