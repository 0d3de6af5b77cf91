package termination

import "context"

// Signaller sends termination requests to live processes. One platform
// backend is selected at startup; tests inject fakes so no real process is
// ever touched.
type Signaller interface {
	// Graceful asks the process to shut down politely; it may ignore or
	// delay the request.
	Graceful(ctx context.Context, pid int32) error
	// Forced terminates unconditionally, permissions permitting.
	Forced(ctx context.Context, pid int32) error
	// Signal sends an explicit, platform-mapped signal by name or number.
	Signal(ctx context.Context, pid int32, signal string) error
	// Alive reports whether the process still exists.
	Alive(ctx context.Context, pid int32) bool
}

// NewSignaller returns the termination backend for this platform.
func NewSignaller() Signaller {
	return newPlatformSignaller()
}
