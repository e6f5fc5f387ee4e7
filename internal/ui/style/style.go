// Package style holds the colors and icons shared by the terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Arrow   = "→"
)

// Palette is the set of styles bound to one lipgloss renderer.
type Palette struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
}

// NewPalette creates the styles for r.
func NewPalette(r *lipgloss.Renderer) Palette {
	return Palette{
		Title:   r.NewStyle().Bold(true),
		Success: r.NewStyle().Foreground(Green).Bold(true),
		Failure: r.NewStyle().Foreground(Red).Bold(true),
		Muted:   r.NewStyle().Foreground(Slate),
		Accent:  r.NewStyle().Foreground(Iris),
	}
}
