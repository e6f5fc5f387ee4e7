// Package shell provides the process adapter that runs task executables.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.trai.ch/taskrun/internal/core/domain"
	"go.trai.ch/taskrun/internal/core/ports"
)

// DefaultWaitDelay bounds how long Run waits for output pipes to close after
// the task has been killed.
const DefaultWaitDelay = 2 * time.Second

// Process implements ports.Process using os/exec.
type Process struct {
	logger    ports.Logger
	inherit   []string
	waitDelay time.Duration
}

// NewProcess creates a new Process.
func NewProcess(logger ports.Logger) *Process {
	return &Process{
		logger:    logger,
		inherit:   InheritedEnv,
		waitDelay: DefaultWaitDelay,
	}
}

// Run starts the task described by spec and waits for it to finish.
//
// The environment is merged with the following priority (low to high):
// 1. Host variables named in InheritedEnv
// 2. spec.Env (static variables and encoded parameters)
//
// Non-zero exit, timeout and cancellation are reported in the outcome.
// Only a process that could not be started yields an error, a *domain.SpawnError.
func (p *Process) Run(ctx context.Context, spec domain.ProcessSpec) (*domain.RawOutcome, error) {
	if len(spec.Argv) == 0 {
		return nil, &domain.SpawnError{Err: exec.ErrNotFound}
	}
	if ctx.Err() != nil {
		return &domain.RawOutcome{ExitCode: domain.ExitCodeUnknown, Cancelled: true}, nil
	}

	name := spec.Argv[0]
	cmdEnv := resolveEnvironment(os.Environ(), p.inherit, spec.Env)

	// Resolve bare names against the task's PATH rather than the host's.
	executable := name
	if filepath.Base(name) == name {
		lp, err := lookPath(name, cmdEnv)
		if err != nil {
			return nil, &domain.SpawnError{Executable: name, Err: &exec.Error{Name: name, Err: err}}
		}
		executable = lp
	}

	runCtx := ctx
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, executable, spec.Argv[1:]...) //nolint:gosec // user provided task
	cmd.Args[0] = name
	cmd.Dir = spec.WorkingDir
	cmd.Env = cmdEnv
	cmd.WaitDelay = p.waitDelay
	setupProcessGroup(cmd)

	if spec.Stdin != nil {
		cmd.Stdin = bytes.NewReader(spec.Stdin)
	}

	stdout := newCapture(spec.MaxOutputBytes)
	stderr := newCapture(spec.MaxOutputBytes)
	stderrLog := &lineLogger{logger: p.logger, msg: "task stderr"}
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, stderrLog)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &domain.SpawnError{Executable: name, Err: err}
	}
	p.logger.Debug("task process started", "executable", name, "pid", cmd.Process.Pid)

	waitErr := cmd.Wait()
	duration := time.Since(start)
	stderrLog.Flush()

	outcome := &domain.RawOutcome{
		ExitCode:        exitCode(cmd.ProcessState),
		Stdout:          stdout.Bytes(),
		Stderr:          stderr.Bytes(),
		StdoutTruncated: stdout.Truncated(),
		StderrTruncated: stderr.Truncated(),
		Duration:        duration,
	}

	// A process that exited cleanly just as the deadline passed was not killed.
	if runCtx.Err() != nil && !cmd.ProcessState.Success() {
		if ctx.Err() != nil {
			outcome.Cancelled = true
		} else {
			outcome.TimedOut = true
		}
		outcome.ExitCode = domain.ExitCodeUnknown
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) && !outcome.Terminated() {
		p.logger.Debug("task process wait", "executable", name, "error", waitErr.Error())
	}

	p.logger.Debug("task process exited",
		"executable", name,
		"exit_code", outcome.ExitCode,
		"timed_out", outcome.TimedOut,
		"cancelled", outcome.Cancelled,
		"duration", duration,
	)

	return outcome, nil
}

func exitCode(state *os.ProcessState) int {
	if state == nil {
		return domain.ExitCodeUnknown
	}
	if code := state.ExitCode(); code >= 0 {
		return code
	}
	return domain.ExitCodeUnknown
}
