//go:build !windows

package recovery

import "syscall"

// detachAttr puts the relaunched process in its own process group.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
