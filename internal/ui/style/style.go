// Package style holds the colors and icons shared by CLI output.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Slate = lipgloss.Color("#667085")
	Green = lipgloss.Color("#22A06B")
	Red   = lipgloss.Color("#D93025")
)

// Icons.
const (
	Check = "✓"
	Cross = "✗"
	Tilde = "~"
)
