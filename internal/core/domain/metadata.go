package domain

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// RedactedValue replaces sensitive parameter values in logs.
const RedactedValue = "Sensitive [value redacted]"

// TaskParamName is the parameter that carries the task name to the task.
const TaskParamName = "_task"

// NoopParamName is the parameter that asks the task for a noop run.
const NoopParamName = "_noop"

// ParameterSpec describes one parameter declared by a task.
type ParameterSpec struct {
	Type        string
	Description string
	Sensitive   bool
}

// TaskMetadata is the optional description shipped next to a task executable.
type TaskMetadata struct {
	Description  string
	InputMethod  InputMethod
	Parameters   map[string]ParameterSpec
	SupportsNoop bool
}

// DeclaresParameters reports whether the metadata restricts the accepted parameters.
func (m *TaskMetadata) DeclaresParameters() bool {
	return m != nil && len(m.Parameters) > 0
}

// ParameterNames returns the declared parameter names in sorted order.
func (m *TaskMetadata) ParameterNames() []string {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.Parameters))
}

// IsSensitive reports whether the named parameter must not be logged.
func (m *TaskMetadata) IsSensitive(name string) bool {
	if m == nil {
		return false
	}
	return m.Parameters[name].Sensitive
}

// Redact returns a copy of params with sensitive values replaced by RedactedValue.
func (m *TaskMetadata) Redact(params ParameterSet) map[string]any {
	out := params.Map()
	for k := range out {
		if m.IsSensitive(k) {
			out[k] = RedactedValue
		}
	}
	return out
}

// TaskName derives a task name from an executable path: the file name without extension.
func TaskName(executable string) string {
	base := filepath.Base(executable)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
