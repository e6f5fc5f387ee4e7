package render

import (
	"io"
	"strings"

	"go.trai.ch/taskrun/internal/core/domain"
	"go.trai.ch/taskrun/internal/ui/output"
	"go.trai.ch/taskrun/internal/ui/style"
)

// Metadata writes a task's description, input method and parameters.
func Metadata(w io.Writer, task string, meta *domain.TaskMetadata) error {
	palette := style.NewPalette(output.NewRenderer(w))

	var b strings.Builder
	b.WriteString(palette.Title.Render(task) + "\n")

	if meta == nil {
		b.WriteString(labelIndent + palette.Muted.Render("no metadata") + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	if meta.Description != "" {
		b.WriteString(labelIndent + meta.Description + "\n")
	}

	inputMethod := meta.InputMethod
	if inputMethod == "" {
		inputMethod = domain.InputBoth
	}
	b.WriteString(labelIndent + palette.Muted.Render("input method:") + " " + string(inputMethod) + "\n")
	if meta.SupportsNoop {
		b.WriteString(labelIndent + palette.Muted.Render("supports noop:") + " true\n")
	}

	if meta.DeclaresParameters() {
		b.WriteString(labelIndent + palette.Muted.Render("parameters:") + "\n")
		for _, name := range meta.ParameterNames() {
			param := meta.Parameters[name]

			var attrs []string
			if param.Type != "" {
				attrs = append(attrs, param.Type)
			}
			if param.Sensitive {
				attrs = append(attrs, "sensitive")
			}

			line := blockIndent + palette.Accent.Render(name)
			if len(attrs) > 0 {
				line += " (" + strings.Join(attrs, ", ") + ")"
			}
			if param.Description != "" {
				line += " " + style.Arrow + " " + param.Description
			}
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
