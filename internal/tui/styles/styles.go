// Package styles defines shared lipgloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage
	warningColor   = lipgloss.Color("#D7AF5F") // Muted amber
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta

	// TitleStyle for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// SubtleStyle for hints/help text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SelectedStyle for the row under the cursor
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// CompletedStyle for finished tasks
	CompletedStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Strikethrough(true)

	// LabelStyle for form labels and filter names
	LabelStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Width(10)

	// TagStyle for tag chips
	TagStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	// StatusBarStyle for bottom status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// BoxStyle for panel borders
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(secondaryColor).
			Padding(1, 2)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// ErrorBannerStyle frames the store error above the list
	ErrorBannerStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(errorColor).
			PaddingLeft(1)

	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		"medium": lipgloss.NewStyle().Foreground(warningColor),
		"low":    lipgloss.NewStyle().Foreground(successColor),
	}
)

// Priority renders a priority label in its color.
func Priority(p string) string {
	if s, ok := priorityStyles[p]; ok {
		return s.Render(p)
	}
	return p
}
