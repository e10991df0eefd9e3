package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arrvision/stereorig/internal/version"
)

// Application branding constants
const (
	AppName = "STEREORIG FLEET WIZARD"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red

	TextColor   = lipgloss.Color("#FFFFFF") // White
	SubtleColor = lipgloss.Color("#626262") // Gray
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	RowStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(TextColor)

	SelectedRowStyle = lipgloss.NewStyle().
				PaddingLeft(0).
				Foreground(SecondaryColor).
				Bold(true)

	DisabledRowStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(SubtleColor)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	WarnStatusStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(1, 0)
)

// RenderHeader renders the wizard header line: app name, version and the
// config file being edited.
func RenderHeader(path string) string {
	left := HeaderStyle.Render(AppName + " v" + AppVersion())
	right := SubtleStyle.Render(path)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// Checkbox renders an enabled marker for a slot row.
func Checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
