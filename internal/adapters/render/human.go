package render

import (
	"io"
	"maps"
	"strings"

	"go.trai.ch/taskrun/internal/core/domain"
	"go.trai.ch/taskrun/internal/ui/output"
	"go.trai.ch/taskrun/internal/ui/style"
)

const (
	labelIndent = "  "
	blockIndent = "    "
)

// HumanRenderer prints a status line followed by the details of the result.
type HumanRenderer struct{}

// NewHumanRenderer creates a HumanRenderer.
func NewHumanRenderer() *HumanRenderer {
	return &HumanRenderer{}
}

// Render implements ports.Renderer.
func (HumanRenderer) Render(w io.Writer, task string, result domain.Result) error {
	palette := style.NewPalette(output.NewRenderer(w))

	var b strings.Builder
	if domain.IsOK(result) {
		b.WriteString(palette.Success.Render(style.Check+" "+task) + ": " + result.Message() + "\n")
	} else {
		b.WriteString(palette.Failure.Render(style.Cross+" "+task) + ": " + result.Message() + "\n")
	}

	label := func(name string) string {
		return labelIndent + palette.Muted.Render(name+":")
	}

	switch r := result.(type) {
	case *domain.Success:
		body := r.Output
		if obj, ok := r.Output.(map[string]any); ok && r.HasSummary {
			rest := maps.Clone(obj)
			delete(rest, domain.OutputKey)
			if len(rest) == 0 {
				break
			}
			body = rest
		}
		data, err := indentJSON(body, labelIndent)
		if err != nil {
			return err
		}
		b.WriteString(labelIndent + data + "\n")

	case *domain.TaskError:
		b.WriteString(label("kind") + " " + r.ErrKind + "\n")
		if len(r.Details) > 0 {
			if err := writeJSONBlock(&b, label("details"), r.Details); err != nil {
				return err
			}
		}
		if len(r.PartialOutput) > 0 {
			if err := writeJSONBlock(&b, label("output"), r.PartialOutput); err != nil {
				return err
			}
		}

	case *domain.ProcessError:
		b.WriteString(label("reason") + " " + r.Reason + "\n")
		writeTextBlock(&b, label("stderr"), r.Stderr)

	case *domain.ProtocolError:
		b.WriteString(label("reason") + " " + r.Reason + "\n")
		if r.Truncated {
			b.WriteString(label("truncated") + " true\n")
		}
		writeTextBlock(&b, label("stdout"), r.RawStdout)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSONBlock(b *strings.Builder, label string, v any) error {
	data, err := indentJSON(v, blockIndent)
	if err != nil {
		return err
	}
	b.WriteString(label + "\n" + blockIndent + data + "\n")
	return nil
}

func writeTextBlock(b *strings.Builder, label, text string) {
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	b.WriteString(label + "\n")
	for line := range strings.SplitSeq(text, "\n") {
		b.WriteString(strings.TrimRight(blockIndent+line, " \t") + "\n")
	}
}
