package snapshot

import (
	"encoding/json"
	"time"
)

// DefaultLimit is how many processes a capture returns when the caller
// does not ask for a specific count.
const DefaultLimit = 10

// OwnerKind classifies who a process belongs to.
type OwnerKind int

const (
	OwnerUser OwnerKind = iota
	OwnerService
	OwnerSystem
)

// String returns string representation of an owner kind
func (k OwnerKind) String() string {
	switch k {
	case OwnerUser:
		return "user"
	case OwnerService:
		return "service"
	case OwnerSystem:
		return "system"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the owner kind as its string form
func (k OwnerKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Proc is the raw per-process sample a Prober returns before classification.
type Proc struct {
	PID      int32
	Name     string
	Username string
	PPID     int32
	RSS      uint64
}

// Record is one live process as observed at capture time. Records are
// transient; they are never persisted.
type Record struct {
	PID           int32     `json:"pid"`
	Name          string    `json:"name"`
	Owner         OwnerKind `json:"owner"`
	MemoryBytes   uint64    `json:"memory_bytes"`
	MemoryPercent float64   `json:"memory_percent"`
}

// Filter controls how much of the process table a capture returns.
type Filter struct {
	Limit      int  // 0 means DefaultLimit
	IncludeAll bool // return everything, ignore Limit
}

// Snapshot is the result of one capture: the observed processes plus the
// system memory totals they were measured against.
type Snapshot struct {
	TakenAt  time.Time `json:"taken_at"`
	MemTotal uint64    `json:"mem_total_bytes"`
	MemUsed  uint64    `json:"mem_used_bytes"`
	Records  []Record  `json:"processes"`
}
