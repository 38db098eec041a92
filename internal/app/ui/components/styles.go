package components

import (
	"github.com/charmbracelet/lipgloss"

	"logpane/internal/app/logview"
)

// Common styles shared across UI components
var (
	// TitleStyle for the modal title
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(FgPrimary)

	// HeaderStyle wraps the header line
	HeaderStyle = lipgloss.NewStyle().
			Padding(1, 0, 0, 0)

	// SeparatorStyle for horizontal lines
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(SeparatorColor)

	// FooterStyle wraps the footer block
	FooterStyle = lipgloss.NewStyle()

	// FooterHelpStyle for the help line below the footer separator
	FooterHelpStyle = lipgloss.NewStyle().
			Padding(0, 0, 1, 0)

	// HelpStyle for help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(FgBorder)

	// ContentStyle wraps the modal body
	ContentStyle = lipgloss.NewStyle().
			Padding(1, 0, 0, 0)

	// MutedStyle for secondary text
	MutedStyle = lipgloss.NewStyle().
			Foreground(FgMuted)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(FgStatusError)

	// ConfirmStyle for the delete confirmation prompt
	ConfirmStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(FgStatusWarning)

	// EmptyStateStyle for empty state messages
	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(FgMuted).
			MarginTop(1)

	// SpinnerStyle for loading spinners
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(FgPrimary)

	// PulseStyle for the loading pulse next to the title
	PulseStyle = lipgloss.NewStyle().
			Foreground(FgStatusWarning)

	// FilterActiveStyle highlights the current minimum level in the filter bar
	FilterActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true)

	// FilterInactiveStyle dims levels below the current minimum
	FilterInactiveStyle = lipgloss.NewStyle().
				Foreground(FgBorder)

	// TableHeaderStyle for the column header row
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(FgMuted).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(FgBorder).
				BorderBottom(true)

	// TableSelectedStyle for the row under the cursor
	TableSelectedStyle = lipgloss.NewStyle().
				Background(BgSelection).
				Bold(true)

	// MarkStyle for the anchor row of a range selection
	MarkStyle = lipgloss.NewStyle().
			Background(BgMark)
)

// LevelStyle returns the foreground style for a severity level
func LevelStyle(level logview.Level) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(LevelColor(level))
}
