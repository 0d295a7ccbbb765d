package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	enabledStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green
	disabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // Grey
	installedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // Blue
	missingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red
)

// InstalledLabel renders an installed/not-installed marker.
func InstalledLabel(installed bool) string {
	if installed {
		return installedStyle.Render("installed")
	}
	return missingStyle.Render("not installed")
}

// EnabledLabel renders an enabled/disabled marker.
func EnabledLabel(enabled bool) string {
	if enabled {
		return enabledStyle.Render("enabled")
	}
	return disabledStyle.Render("disabled")
}

// Highlight renders text in the accent color used for profile names.
func Highlight(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true).Render(text)
}
