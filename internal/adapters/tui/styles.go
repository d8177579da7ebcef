package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/depot/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Teal).
			Foreground(lipgloss.Color("#FFFFFF"))

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.Slate).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(style.Slate)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Teal).
			Bold(true)

	okStyle  = lipgloss.NewStyle().Foreground(style.Green)
	lowStyle = lipgloss.NewStyle().Foreground(style.Yellow)
	outStyle = lipgloss.NewStyle().Foreground(style.Red)

	errorStyle = lipgloss.NewStyle().Foreground(style.Red).Bold(true)
	footStyle  = lipgloss.NewStyle().Foreground(style.Slate).Faint(true)
)
