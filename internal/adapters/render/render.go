// Package render writes task results in human or JSON form.
package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"go.trai.ch/taskrun/internal/core/ports"
	"go.trai.ch/zerr"
)

// Output formats.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
)

// ErrUnknownFormat is returned for an output format other than human or json.
var ErrUnknownFormat = zerr.New("unknown output format, expected 'human' or 'json'")

// Renderers holds one renderer per output format.
type Renderers struct {
	Human ports.Renderer
	JSON  ports.Renderer
}

// NewRenderers creates the renderers for all formats.
func NewRenderers() *Renderers {
	return &Renderers{
		Human: NewHumanRenderer(),
		JSON:  NewJSONRenderer(),
	}
}

// For returns the renderer for format. The empty format selects human output.
func (r *Renderers) For(format string) (ports.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatHuman:
		return r.Human, nil
	case FormatJSON:
		return r.JSON, nil
	default:
		return nil, zerr.With(zerr.Wrap(ErrUnknownFormat, "invalid output format"), "format", format)
	}
}

// indentJSON encodes v as indented JSON whose continuation lines start with prefix.
func indentJSON(v any, prefix string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "  ")
	if err := enc.Encode(v); err != nil {
		return "", zerr.Wrap(err, "failed to encode result")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
