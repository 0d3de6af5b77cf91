//go:build !windows

package termination

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/unix"
)

// unixSignaller terminates processes with POSIX signals: SIGTERM for the
// graceful request, SIGKILL for forced termination.
type unixSignaller struct{}

func newPlatformSignaller() Signaller {
	return unixSignaller{}
}

func (unixSignaller) Graceful(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return err
	}
	return p.TerminateWithContext(ctx)
}

func (unixSignaller) Forced(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return err
	}
	return p.KillWithContext(ctx)
}

func (unixSignaller) Signal(ctx context.Context, pid int32, signal string) error {
	sig, err := ParseSignal(signal)
	if err != nil {
		return err
	}
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return err
	}
	return p.SendSignalWithContext(ctx, sig)
}

func (unixSignaller) Alive(ctx context.Context, pid int32) bool {
	ok, err := process.PidExistsWithContext(ctx, pid)
	return err == nil && ok
}

// ParseSignal maps a number or a name like "KILL" or "SIGTERM" to a signal.
func ParseSignal(s string) (syscall.Signal, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("invalid signal number %d", n)
		}
		return syscall.Signal(n), nil
	}
	name := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	if sig := unix.SignalNum(name); sig != 0 {
		return sig, nil
	}
	return 0, fmt.Errorf("unknown signal %q", s)
}

// IsForcedSignal reports whether the named signal bypasses graceful
// handling entirely.
func IsForcedSignal(s string) bool {
	sig, err := ParseSignal(s)
	return err == nil && sig == unix.SIGKILL
}
