//go:build windows

package termination

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// windowsSignaller terminates processes through taskkill: a plain
// "taskkill /PID" for the graceful close request, "/F" for forced
// termination.
type windowsSignaller struct{}

func newPlatformSignaller() Signaller {
	return windowsSignaller{}
}

func (windowsSignaller) Graceful(ctx context.Context, pid int32) error {
	return runTaskkill(ctx, pid, false)
}

func (windowsSignaller) Forced(ctx context.Context, pid int32) error {
	return runTaskkill(ctx, pid, true)
}

func (s windowsSignaller) Signal(ctx context.Context, pid int32, signal string) error {
	switch normalizeSignal(signal) {
	case "KILL", "9":
		return s.Forced(ctx, pid)
	case "TERM", "15", "INT", "2":
		return s.Graceful(ctx, pid)
	default:
		return fmt.Errorf("signal %q is not supported on Windows", signal)
	}
}

func (windowsSignaller) Alive(ctx context.Context, pid int32) bool {
	ok, err := process.PidExistsWithContext(ctx, pid)
	return err == nil && ok
}

func runTaskkill(ctx context.Context, pid int32, force bool) error {
	args := []string{"/PID", strconv.Itoa(int(pid))}
	if force {
		args = append(args, "/F")
	}
	out, err := exec.CommandContext(ctx, "taskkill", args...).CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if detail != "" {
			return fmt.Errorf("taskkill: %s", detail)
		}
		return fmt.Errorf("taskkill: %w", err)
	}
	return nil
}

func normalizeSignal(s string) string {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "SIG")
	return name
}

// IsForcedSignal reports whether the named signal bypasses graceful
// handling entirely.
func IsForcedSignal(s string) bool {
	switch normalizeSignal(s) {
	case "KILL", "9":
		return true
	}
	return false
}
