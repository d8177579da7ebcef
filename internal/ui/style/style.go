// Package style holds the colors, icons and lipgloss styles shared by the
// terminal renderers.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Teal   = lipgloss.Color("#0E9384")
	Slate  = lipgloss.Color("#667085")
	Ink    = lipgloss.Color("#101828")
	Mist   = lipgloss.Color("#EAECF0")
	Green  = lipgloss.Color("#12B76A")
	Red    = lipgloss.Color("#F04438")
	Yellow = lipgloss.Color("#F79009")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "·"
	Arrow   = "→"
)

// Text styles.
var (
	Header = lipgloss.NewStyle().Bold(true).Foreground(Teal).Padding(0, 1)
	Cell   = lipgloss.NewStyle().Padding(0, 1)
	Muted  = lipgloss.NewStyle().Foreground(Slate)
	Border = lipgloss.NewStyle().Foreground(Mist)
)

// StatusColor maps a record status to its display color.
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "active", "approved", "completed":
		return Green
	case "pending", "draft":
		return Yellow
	case "inactive", "cancelled":
		return Red
	default:
		return Slate
	}
}
