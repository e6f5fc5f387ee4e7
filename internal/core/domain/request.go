package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

const (
	// DefaultEnvPrefix is prepended to parameter names delivered as environment variables.
	DefaultEnvPrefix = "PT_"

	// DefaultMaxOutputBytes bounds the captured size of each of stdout and stderr.
	DefaultMaxOutputBytes = 1 << 20
)

// InputMethod selects how parameters are delivered to a task.
type InputMethod string

const (
	// InputEnv delivers parameters as prefixed environment variables.
	InputEnv InputMethod = "env"
	// InputStdin delivers parameters as a single JSON object on standard input.
	InputStdin InputMethod = "stdin"
	// InputBoth delivers parameters through both channels.
	InputBoth InputMethod = "both"
)

// ParseInputMethod converts a string to an InputMethod.
// The empty string maps to InputBoth; "environment" is accepted as an alias of "env".
func ParseInputMethod(s string) (InputMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return InputBoth, nil
	case "env", "environment":
		return InputEnv, nil
	case "stdin":
		return InputStdin, nil
	case "both":
		return InputBoth, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidInputMethod, "unknown input method"), "input_method", s)
	}
}

// UsesEnv reports whether parameters are delivered as environment variables.
func (m InputMethod) UsesEnv() bool {
	return m == InputEnv || m == InputBoth
}

// UsesStdin reports whether parameters are delivered on standard input.
func (m InputMethod) UsesStdin() bool {
	return m == InputStdin || m == InputBoth
}

// ExecutionRequest describes a single task invocation.
// It is created by the caller and consumed once by the runner.
type ExecutionRequest struct {
	// Executable is the resolved path of the task.
	Executable string
	// Args are extra command line arguments passed after the executable.
	Args []string
	// Interpreter, when set, is run with the executable as its first argument.
	Interpreter string
	// Params are the task parameters.
	Params ParameterSet
	// InputMethod selects how Params are delivered.
	InputMethod InputMethod
	// EnvPrefix is prepended to parameter names in environment delivery.
	EnvPrefix string
	// Timeout bounds the task run time. Zero disables the timeout.
	Timeout time.Duration
	// MaxOutputBytes bounds each captured output stream. Zero selects DefaultMaxOutputBytes.
	MaxOutputBytes int
	// WorkingDir is the directory the task runs in. Empty inherits the caller's.
	WorkingDir string
	// Environment holds extra static environment variables for the task.
	Environment map[string]string
	// Metadata, when set, marks parameters whose values must not be logged.
	Metadata *TaskMetadata
}

// WithDefaults returns a copy of the request with empty fields set to their defaults.
func (r ExecutionRequest) WithDefaults() ExecutionRequest {
	if r.InputMethod == "" {
		r.InputMethod = InputBoth
	}
	if r.EnvPrefix == "" {
		r.EnvPrefix = DefaultEnvPrefix
	}
	if r.MaxOutputBytes == 0 {
		r.MaxOutputBytes = DefaultMaxOutputBytes
	}
	return r
}

// Validate checks the request for errors that would prevent execution.
func (r *ExecutionRequest) Validate() error {
	if strings.TrimSpace(r.Executable) == "" {
		return zerr.Wrap(ErrMissingExecutable, ErrInvalidRequest.Error())
	}
	switch r.InputMethod {
	case InputEnv, InputStdin, InputBoth:
	default:
		return zerr.With(zerr.Wrap(ErrInvalidInputMethod, ErrInvalidRequest.Error()), "input_method", r.InputMethod)
	}
	if r.Timeout < 0 {
		return zerr.With(zerr.Wrap(ErrInvalidTimeout, ErrInvalidRequest.Error()), "timeout", r.Timeout)
	}
	if r.MaxOutputBytes < 0 {
		return zerr.With(zerr.Wrap(ErrInvalidOutputLimit, ErrInvalidRequest.Error()), "max_output_bytes", r.MaxOutputBytes)
	}
	if r.InputMethod.UsesEnv() {
		for _, key := range r.Params.Keys() {
			if !validEnvName(key) {
				return zerr.With(zerr.Wrap(ErrInvalidParameterName, ErrInvalidRequest.Error()), "parameter", key)
			}
		}
	}
	return nil
}

// Argv returns the full command line: interpreter (if any), executable, then Args.
func (r *ExecutionRequest) Argv() []string {
	argv := make([]string, 0, len(r.Args)+2)
	if r.Interpreter != "" {
		argv = append(argv, r.Interpreter)
	}
	argv = append(argv, r.Executable)
	return append(argv, r.Args...)
}

// Fingerprint returns a stable digest of the executable and its parameters.
// Identical invocations share a fingerprint, which correlates them in logs and traces.
func (r *ExecutionRequest) Fingerprint() string {
	d := xxhash.New()
	_, _ = d.WriteString(r.Executable)
	_, _ = d.Write([]byte{0})
	for _, arg := range r.Args {
		_, _ = d.WriteString(arg)
		_, _ = d.Write([]byte{0})
	}
	// json.Marshal sorts map keys, so equal sets hash equally.
	if data, err := json.Marshal(r.Params); err == nil {
		_, _ = d.Write(data)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// ProcessSpec is everything the process adapter needs to run one task.
type ProcessSpec struct {
	// Argv is the command line; Argv[0] is the program to start.
	Argv []string
	// Env holds variables layered over the inherited environment.
	Env map[string]string
	// Stdin is written to the process in full. Nil means no input.
	Stdin []byte
	// Timeout bounds the run time. Zero disables it.
	Timeout time.Duration
	// MaxOutputBytes bounds each captured stream.
	MaxOutputBytes int
	// WorkingDir is the process working directory.
	WorkingDir string
}

func validEnvName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "=\x00")
}
