// Package ledger keeps the durable, append-only record of successful
// terminations. The ledger is the sole source of truth for recovery
// candidates: the termination engine appends, the recovery advisor reads.
package ledger

import "time"

// Entry is one recorded termination. Entries are immutable once written and
// serialize as a single JSON line with key order {time, pid, name, method},
// so external tooling can tail the file.
type Entry struct {
	Time   time.Time `json:"time"`
	PID    int32     `json:"pid"`
	Name   string    `json:"name"`
	Method string    `json:"method"`
}

// Ledger is an append-only termination log.
type Ledger interface {
	// Append records one successful termination.
	Append(e Entry) error
	// ReadRecent returns up to limit entries, most recent first.
	// limit <= 0 means no limit.
	ReadRecent(limit int) ([]Entry, error)
}
