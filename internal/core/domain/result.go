package domain

import (
	"encoding/json"
	"fmt"
	"maps"
)

// ResultKind identifies the variant of a Result.
type ResultKind string

const (
	// KindSuccess marks a task that printed valid JSON and exited 0.
	KindSuccess ResultKind = "success"
	// KindTaskError marks a task that reported an in-band _error.
	KindTaskError ResultKind = "task_error"
	// KindProtocolError marks a task that ran but broke the output contract.
	KindProtocolError ResultKind = "protocol_error"
	// KindProcessError marks a task that timed out, was cancelled or exited non-zero.
	KindProcessError ResultKind = "process_error"
)

// Reserved keys of the task output contract.
const (
	OutputKey = "_output"
	ErrorKey  = "_error"
)

// Process error reasons.
const (
	ReasonTimeout            = "timeout"
	ReasonCancelled          = "cancelled"
	ReasonNonzeroExit        = "nonzero exit"
	ReasonNonzeroUnparseable = "nonzero exit, unparseable output"
)

// ReasonInvalidJSON is the protocol error reason for stdout that is not one JSON document.
const ReasonInvalidJSON = "stdout not valid JSON"

// Error kinds used when a non-task failure is expressed as an _error object.
const (
	ErrorKindUnknown       = "unknown"
	ErrorKindProcessError  = "taskrun/process-error"
	ErrorKindProtocolError = "taskrun/protocol-error"
)

// Result is the classified outcome of one task invocation.
// Exactly one of Success, TaskError, ProtocolError or ProcessError is produced.
type Result interface {
	Kind() ResultKind
	// Message is a one-line, human-readable description of the outcome.
	Message() string
	result()
}

// Success is a task that printed one JSON document and exited 0 without _error.
type Success struct {
	Output     any
	Summary    string
	HasSummary bool
}

// TaskError is a task that reported failure through the _error key.
type TaskError struct {
	// ErrKind is the machine-readable _error.kind, e.g. "mytask/missing_parameter".
	ErrKind string
	// Msg is the human-readable _error.msg.
	Msg string
	// Details holds _error.details when the task provided them.
	Details map[string]any
	// PartialOutput is the task output object without the _error key.
	PartialOutput map[string]any
}

// ProtocolError is a task that exited 0 but whose output violates the JSON contract.
type ProtocolError struct {
	Reason    string
	RawStdout string
	Truncated bool
}

// ProcessError is a task that timed out, was cancelled or exited non-zero without _error.
type ProcessError struct {
	Reason   string
	ExitCode int
	Stderr   string
}

func (*Success) result()       {}
func (*TaskError) result()     {}
func (*ProtocolError) result() {}
func (*ProcessError) result()  {}

// Kind implements Result.
func (*Success) Kind() ResultKind { return KindSuccess }

// Kind implements Result.
func (*TaskError) Kind() ResultKind { return KindTaskError }

// Kind implements Result.
func (*ProtocolError) Kind() ResultKind { return KindProtocolError }

// Kind implements Result.
func (*ProcessError) Kind() ResultKind { return KindProcessError }

// Message implements Result.
func (s *Success) Message() string {
	if s.HasSummary {
		return s.Summary
	}
	return "The task completed successfully"
}

// Message implements Result. The task's own _error.msg is returned verbatim.
func (e *TaskError) Message() string {
	return e.Msg
}

// Message implements Result.
func (e *ProtocolError) Message() string {
	if e.Truncated {
		return "The task output is not valid JSON (output was truncated)"
	}
	return "The task output is not valid JSON"
}

// Message implements Result.
func (e *ProcessError) Message() string {
	switch e.Reason {
	case ReasonTimeout:
		return "The task timed out"
	case ReasonCancelled:
		return "The task was cancelled"
	default:
		return fmt.Sprintf("The task failed with exit code %d", e.ExitCode)
	}
}

// IsOK reports whether r is a Success.
func IsOK(r Result) bool {
	_, ok := r.(*Success)
	return ok
}

// Envelope renders r as a task output object carrying the reserved keys.
// Failures that did not come from the task itself are expressed as _error
// objects so every result has the same shape.
func Envelope(r Result) map[string]any {
	switch v := r.(type) {
	case *Success:
		if obj, ok := v.Output.(map[string]any); ok {
			return maps.Clone(obj)
		}
		data, _ := json.Marshal(v.Output)
		return map[string]any{OutputKey: string(data)}
	case *TaskError:
		env := maps.Clone(v.PartialOutput)
		if env == nil {
			env = make(map[string]any, 1)
		}
		errObj := map[string]any{"kind": v.ErrKind, "msg": v.Msg}
		if len(v.Details) > 0 {
			errObj["details"] = maps.Clone(v.Details)
		}
		env[ErrorKey] = errObj
		return env
	case *ProtocolError:
		return map[string]any{
			OutputKey: v.RawStdout,
			ErrorKey: map[string]any{
				"kind":    ErrorKindProtocolError,
				"msg":     v.Message(),
				"details": map[string]any{"reason": v.Reason, "truncated": v.Truncated},
			},
		}
	case *ProcessError:
		env := map[string]any{
			ErrorKey: map[string]any{
				"kind":    ErrorKindProcessError,
				"msg":     v.Message(),
				"details": map[string]any{"reason": v.Reason, "exit_code": v.ExitCode},
			},
		}
		if v.Stderr != "" {
			env[OutputKey] = v.Stderr
		}
		return env
	default:
		return map[string]any{}
	}
}
