// Package logger provides structured logging for chainmap tools.
package logger

import (
	"time"

	"github.com/yndnr/chainmap-go/pkg/hashmap"
)

// RehashObserver returns a hashmap.Observer that logs every rehash at debug
// level. A rehash taking longer than slow is logged at warn level instead;
// slow <= 0 disables the warning.
func RehashObserver(l Logger, slow time.Duration) hashmap.Observer {
	return hashmap.ObserverFunc(func(e hashmap.RehashEvent) {
		args := []any{
			"reason", string(e.Reason),
			"from", e.From,
			"to", e.To,
			"size", e.Size,
			"duration", e.Duration,
		}
		if slow > 0 && e.Duration > slow {
			l.Warn("slow rehash", args...)
			return
		}
		l.Debug("rehash", args...)
	})
}
