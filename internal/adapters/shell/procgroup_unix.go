//go:build !windows

package shell

import (
	"os/exec"
	"syscall"
)

// setupProcessGroup puts the task in its own process group and overrides
// cmd.Cancel to kill the entire group on timeout or cancellation, so
// grandchildren holding the output pipes die with the task.
func setupProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		}
		return nil
	}
}
