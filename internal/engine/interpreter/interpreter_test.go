package interpreter_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/taskrun/internal/core/domain"
	"go.trai.ch/taskrun/internal/engine/interpreter"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		name    string
		outcome domain.RawOutcome
		want    domain.Result
	}{
		{
			name:    "success",
			outcome: domain.RawOutcome{Stdout: []byte(`{"status":"success"}`)},
			want:    &domain.Success{Output: map[string]any{"status": "success"}},
		},
		{
			name:    "success with summary",
			outcome: domain.RawOutcome{Stdout: []byte(`{"_output":"ok at 1.2.3.4"}`)},
			want: &domain.Success{
				Output:     map[string]any{"_output": "ok at 1.2.3.4"},
				Summary:    "ok at 1.2.3.4",
				HasSummary: true,
			},
		},
		{
			name:    "non-string _output is not a summary",
			outcome: domain.RawOutcome{Stdout: []byte(`{"_output":42}`)},
			want:    &domain.Success{Output: map[string]any{"_output": json.Number("42")}},
		},
		{
			name:    "success with array output",
			outcome: domain.RawOutcome{Stdout: []byte(`[1,"two"]`)},
			want:    &domain.Success{Output: []any{json.Number("1"), "two"}},
		},
		{
			name: "task error with exit 1",
			outcome: domain.RawOutcome{
				ExitCode: 1,
				Stdout:   []byte(`{"host":"x","_error":{"msg":"No host argument passed","kind":"exercise5/missing_parameter"}}`),
			},
			want: &domain.TaskError{
				ErrKind:       "exercise5/missing_parameter",
				Msg:           "No host argument passed",
				PartialOutput: map[string]any{"host": "x"},
			},
		},
		{
			name:    "task error wins over exit 0",
			outcome: domain.RawOutcome{Stdout: []byte(`{"_error":{"msg":"nope","kind":"t/fail"}}`)},
			want:    &domain.TaskError{ErrKind: "t/fail", Msg: "nope"},
		},
		{
			name:    "task error without kind or msg",
			outcome: domain.RawOutcome{ExitCode: 2, Stdout: []byte(`{"_error":{}}`)},
			want:    &domain.TaskError{ErrKind: domain.ErrorKindUnknown},
		},
		{
			name:    "task error that is a plain string",
			outcome: domain.RawOutcome{ExitCode: 1, Stdout: []byte(`{"_error":"disk full"}`)},
			want:    &domain.TaskError{ErrKind: domain.ErrorKindUnknown, Msg: "disk full"},
		},
		{
			name: "task error keeps details and issue code",
			outcome: domain.RawOutcome{
				ExitCode: 1,
				Stdout:   []byte(`{"_error":{"kind":"k","msg":"m","details":{"file":"a"},"issue_code":"E1"}}`),
			},
			want: &domain.TaskError{
				ErrKind: "k",
				Msg:     "m",
				Details: map[string]any{"file": "a", "issue_code": "E1"},
			},
		},
		{
			name:    "timeout",
			outcome: domain.RawOutcome{ExitCode: -1, TimedOut: true, Stdout: []byte(`{"status":"success"}`)},
			want:    &domain.ProcessError{Reason: domain.ReasonTimeout, ExitCode: -1},
		},
		{
			name:    "cancelled",
			outcome: domain.RawOutcome{ExitCode: -1, Cancelled: true, Stderr: []byte("bye")},
			want:    &domain.ProcessError{Reason: domain.ReasonCancelled, ExitCode: -1, Stderr: "bye"},
		},
		{
			name:    "nonzero exit with unparseable output",
			outcome: domain.RawOutcome{ExitCode: 3, Stdout: []byte("Something broke\n"), Stderr: []byte("trace")},
			want:    &domain.ProcessError{Reason: domain.ReasonNonzeroUnparseable, ExitCode: 3, Stderr: "trace"},
		},
		{
			name:    "nonzero exit with empty output",
			outcome: domain.RawOutcome{ExitCode: 127},
			want:    &domain.ProcessError{Reason: domain.ReasonNonzeroUnparseable, ExitCode: 127},
		},
		{
			name:    "nonzero exit with valid JSON",
			outcome: domain.RawOutcome{ExitCode: 4, Stdout: []byte(`{"status":"degraded"}`)},
			want:    &domain.ProcessError{Reason: domain.ReasonNonzeroExit, ExitCode: 4},
		},
		{
			name:    "malformed JSON with exit 0",
			outcome: domain.RawOutcome{Stdout: []byte(`{"status":`)},
			want:    &domain.ProtocolError{Reason: domain.ReasonInvalidJSON, RawStdout: `{"status":`},
		},
		{
			name:    "empty output with exit 0",
			outcome: domain.RawOutcome{},
			want:    &domain.ProtocolError{Reason: domain.ReasonInvalidJSON},
		},
		{
			name:    "truncated output",
			outcome: domain.RawOutcome{Stdout: []byte(`{"big":"aaaa`), StdoutTruncated: true},
			want:    &domain.ProtocolError{Reason: domain.ReasonInvalidJSON, RawStdout: `{"big":"aaaa`, Truncated: true},
		},
		{
			name:    "binary output",
			outcome: domain.RawOutcome{Stdout: []byte{0xff, 0xfe}},
			want:    &domain.ProtocolError{Reason: domain.ReasonInvalidJSON, RawStdout: "�"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := tt.outcome
			assert.Equal(t, tt.want, interpreter.Interpret(&outcome))
		})
	}
}

func TestInterpret_KeepsStderrTail(t *testing.T) {
	stderr := strings.Repeat("a", interpreter.StderrTail) + "END"

	result := interpreter.Interpret(&domain.RawOutcome{ExitCode: 1, Stderr: []byte(stderr)})

	processErr, ok := result.(*domain.ProcessError)
	assert.True(t, ok)
	assert.Len(t, processErr.Stderr, interpreter.StderrTail)
	assert.True(t, strings.HasSuffix(processErr.Stderr, "END"))
}

func TestInterpret_DoesNotShareOutput(t *testing.T) {
	outcome := &domain.RawOutcome{ExitCode: 1, Stdout: []byte(`{"a":1,"_error":{"kind":"k"}}`)}

	first := interpreter.Interpret(outcome).(*domain.TaskError)
	first.PartialOutput["a"] = "changed"

	second := interpreter.Interpret(outcome).(*domain.TaskError)
	assert.Equal(t, json.Number("1"), second.PartialOutput["a"])
}
