package logger

import (
	"bytes"
	"testing"
)

func TestRedactValues(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf, "info")

	l.Info("set", "key", "db.password", "value", "hunter2")

	entry := decode(t, &buf)
	if entry["value"] != redactedValue {
		t.Errorf("value = %v, want redacted", entry["value"])
	}
	if entry["key"] != "db.password" {
		t.Errorf("key = %v, keys must not be redacted", entry["key"])
	}
}

func TestRedactValues_Disabled(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf, ShowValues: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info("set", "value", "hunter2")

	entry := decode(t, &buf)
	if entry["value"] != "hunter2" {
		t.Errorf("value = %v, want hunter2", entry["value"])
	}
}

func TestRedactValues_Suffix(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf, "info")

	l.Info("op", "old_value", "a", "count", 3)
	entry := decode(t, &buf)
	if entry["old_value"] != redactedValue {
		t.Errorf("old_value = %v, want redacted", entry["old_value"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("count = %v, want 3", entry["count"])
	}
}

func TestRedactedKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"value", true},
		{"VALUE", true},
		{"new_value", true},
		{"api_token", true},
		{"key", false},
		{"values_count", false},
		{"capacity", false},
	}
	for _, tt := range tests {
		if got := isRedactedKey(tt.key); got != tt.want {
			t.Errorf("isRedactedKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
