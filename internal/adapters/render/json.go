package render

import (
	"io"

	"go.trai.ch/taskrun/internal/core/domain"
)

// Envelope statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// JSONRenderer prints {"task": ..., "status": ..., "value": ...} where value
// is the result envelope carrying _output and _error.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type jsonResult struct {
	Task   string         `json:"task"`
	Status string         `json:"status"`
	Value  map[string]any `json:"value"`
}

// Render implements ports.Renderer.
func (JSONRenderer) Render(w io.Writer, task string, result domain.Result) error {
	status := StatusFailure
	if domain.IsOK(result) {
		status = StatusSuccess
	}

	data, err := indentJSON(jsonResult{Task: task, Status: status, Value: domain.Envelope(result)}, "")
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, data+"\n")
	return err
}
