//go:build windows

package shell

import "os/exec"

// setupProcessGroup is a no-op on Windows where Setpgid is unavailable.
// The default exec.CommandContext cancel kills the task process itself.
func setupProcessGroup(_ *exec.Cmd) {}
