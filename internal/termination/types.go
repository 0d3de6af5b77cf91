package termination

import (
	"encoding/json"
	"time"
)

// DefaultGracePeriod is how long a process gets to honor a graceful
// shutdown request before escalation.
const DefaultGracePeriod = 3 * time.Second

// Method describes how (or whether) a target was terminated.
type Method int

const (
	MethodGraceful Method = iota
	MethodForced
	MethodSkipped
	MethodFailed
)

// String returns string representation of a method
func (m Method) String() string {
	switch m {
	case MethodGraceful:
		return "graceful"
	case MethodForced:
		return "forced"
	case MethodSkipped:
		return "skipped"
	case MethodFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the method as its string form
func (m Method) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Request describes one termination invocation. It is created per call,
// consumed synchronously, and never persisted.
type Request struct {
	// Targets are pids or process names, processed in order.
	Targets []string
	// Force skips the graceful attempt and terminates immediately.
	Force bool
	// DryRun computes the would-be plan without signaling anything.
	DryRun bool
	// Confirmed records that the caller obtained explicit approval for
	// protected targets. The engine never prompts.
	Confirmed bool
	// Signal is an optional name or number sent as-is, independent of
	// Force. Platform-mapped; no escalation applies.
	Signal string
	// GracePeriod bounds the wait before escalating. Zero means default.
	GracePeriod time.Duration
}

// Outcome is the per-target result. Exactly one Outcome is produced for
// every target, in request order; a bad target never blocks the rest.
type Outcome struct {
	Target string `json:"target"`
	PID    int32  `json:"pid"`
	Name   string `json:"name,omitempty"`
	Method Method `json:"method"`
	Reason string `json:"reason,omitempty"`
}
