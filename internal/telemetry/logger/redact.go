// Package logger provides structured logging for chainmap tools.
package logger

import (
	"log/slog"
	"strings"
)

// Attribute keys whose string values are replaced by redactedValue.
// Dictionary values are user data and may hold credentials.
var redactedKeys = []string{
	"value",
	"password",
	"secret",
	"token",
}

// redactedValue is the placeholder for redacted data.
const redactedValue = "***REDACTED***"

// redactValues redacts an attribute if its key is in redactedKeys.
// Groups are walked recursively.
func redactValues(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactValues(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	if a.Value.Kind() == slog.KindString && a.Value.String() != "" && isRedactedKey(a.Key) {
		return slog.String(a.Key, redactedValue)
	}
	return a
}

// isRedactedKey reports whether values logged under key are redacted.
func isRedactedKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, k := range redactedKeys {
		if keyLower == k || strings.HasSuffix(keyLower, "_"+k) {
			return true
		}
	}
	return false
}
