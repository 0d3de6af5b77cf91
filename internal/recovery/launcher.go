package recovery

import "os/exec"

// ExecLauncher starts recovery processes detached in their own process
// group so they outlive procwatch.
type ExecLauncher struct{}

// Launch starts command and releases the handle without waiting.
func (ExecLauncher) Launch(command string, args []string) error {
	cmd := exec.Command(command, args...)
	cmd.SysProcAttr = detachAttr()
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
