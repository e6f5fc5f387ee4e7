// Package interpreter classifies what a task process left behind into a Result.
package interpreter

import (
	"encoding/json"
	"maps"
	"strings"

	"go.trai.ch/taskrun/internal/adapters/codec"
	"go.trai.ch/taskrun/internal/core/domain"
)

// StderrTail is the number of trailing stderr bytes kept on a ProcessError.
const StderrTail = 4096

// Interpret classifies outcome. It never fails; every outcome maps to exactly one Result.
//
// The checks run in order:
//  1. a killed process is a ProcessError (timeout or cancelled);
//  2. output that does not decode is a ProcessError on non-zero exit, else a ProtocolError;
//  3. an object carrying _error is a TaskError, whatever the exit code;
//  4. a non-zero exit is a ProcessError;
//  5. anything else is a Success.
func Interpret(outcome *domain.RawOutcome) domain.Result {
	switch {
	case outcome.TimedOut:
		return processError(outcome, domain.ReasonTimeout)
	case outcome.Cancelled:
		return processError(outcome, domain.ReasonCancelled)
	}

	doc, err := codec.DecodeStdout(outcome.Stdout)
	if err != nil {
		if outcome.ExitCode != 0 {
			return processError(outcome, domain.ReasonNonzeroUnparseable)
		}
		return &domain.ProtocolError{
			Reason:    domain.ReasonInvalidJSON,
			RawStdout: strings.ToValidUTF8(string(outcome.Stdout), "�"),
			Truncated: outcome.StdoutTruncated,
		}
	}

	obj, isObject := doc.(map[string]any)
	if isObject {
		if errValue, ok := obj[domain.ErrorKey]; ok {
			return taskError(obj, errValue)
		}
	}

	if outcome.ExitCode != 0 {
		return processError(outcome, domain.ReasonNonzeroExit)
	}

	success := &domain.Success{Output: doc}
	if isObject {
		if summary, ok := obj[domain.OutputKey].(string); ok {
			success.Summary = summary
			success.HasSummary = true
		}
	}
	return success
}

func processError(outcome *domain.RawOutcome, reason string) *domain.ProcessError {
	stderr := outcome.Stderr
	if len(stderr) > StderrTail {
		stderr = stderr[len(stderr)-StderrTail:]
	}
	return &domain.ProcessError{
		Reason:   reason,
		ExitCode: outcome.ExitCode,
		Stderr:   strings.ToValidUTF8(string(stderr), "�"),
	}
}

func taskError(obj map[string]any, errValue any) *domain.TaskError {
	result := &domain.TaskError{ErrKind: domain.ErrorKindUnknown}

	partial := maps.Clone(obj)
	delete(partial, domain.ErrorKey)
	if len(partial) > 0 {
		result.PartialOutput = partial
	}

	errObj, ok := errValue.(map[string]any)
	if !ok {
		result.Msg = stringify(errValue)
		return result
	}

	if kind, ok := errObj["kind"].(string); ok && kind != "" {
		result.ErrKind = kind
	}
	if msg, ok := errObj["msg"]; ok && msg != nil {
		result.Msg = stringify(msg)
	}

	// details and any further fields such as issue_code are kept for the caller.
	details := make(map[string]any)
	if d, ok := errObj["details"].(map[string]any); ok {
		maps.Copy(details, d)
	}
	for k, v := range errObj {
		switch k {
		case "kind", "msg", "details":
		default:
			details[k] = v
		}
	}
	if len(details) > 0 {
		result.Details = details
	}
	return result
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
