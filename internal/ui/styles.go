// Package ui provides the console styles used by the scssc commands.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Console colors
var (
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	ColorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	ColorNotice  = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	ColorComment = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"}
)

// Styles contains the lipgloss styles for command output.
type Styles struct {
	Success  lipgloss.Style
	Error    lipgloss.Style
	Notice   lipgloss.Style
	Comment  lipgloss.Style
	Question lipgloss.Style
	Muted    lipgloss.Style

	// ErrorBlock frames multi-line compiler errors
	ErrorBlock lipgloss.Style

	// Cursor marks the highlighted choice in pickers
	Cursor lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Success:  lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess),
		Error:    lipgloss.NewStyle().Foreground(ColorError),
		Notice:   lipgloss.NewStyle().Foreground(ColorNotice),
		Comment:  lipgloss.NewStyle().Foreground(ColorComment),
		Question: lipgloss.NewStyle().Foreground(ColorSuccess),
		Muted:    lipgloss.NewStyle().Foreground(ColorMuted),
		ErrorBlock: lipgloss.NewStyle().
			Foreground(ColorError).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorError).
			PaddingLeft(1),
		Cursor: lipgloss.NewStyle().Bold(true).Foreground(ColorNotice),
	}
}

// PlainStyles returns styles that render text unchanged, for --no-color.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()

	return Styles{
		Success:    plain,
		Error:      plain,
		Notice:     plain,
		Comment:    plain,
		Question:   plain,
		Muted:      plain,
		ErrorBlock: plain,
		Cursor:     plain,
	}
}

// NewStyles picks colored or plain styles.
func NewStyles(color bool) Styles {
	if color {
		return DefaultStyles()
	}

	return PlainStyles()
}

// FormatKB renders a byte count in kilobytes with one decimal.
func FormatKB(bytes int64) string {
	return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
}
