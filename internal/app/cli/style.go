package cli

import (
	"github.com/charmbracelet/lipgloss"

	"logpane/internal/app/ui/components"
	"logpane/internal/config"
)

var (
	sectionHeader   = lipgloss.NewStyle().Bold(true).Foreground(components.FgPrimary).MarginTop(1).MarginBottom(1)
	bodyLarge       = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	bodyMedium      = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	commandName     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	exampleCode     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA726"))
	appNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(components.FgPrimary)
	appVersionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDBDBD"))
	titleWrapper    = lipgloss.NewStyle().MarginTop(1).MarginBottom(1)
)

// RenderTitle renders the app title block with name, version, and description
func RenderTitle() string {
	title := titleWrapper.Render(
		appNameStyle.Render(config.AppName) + appVersionStyle.Render(" v"+config.Version),
	)
	description := bodyLarge.Render(config.AppDescription)

	return lipgloss.JoinVertical(lipgloss.Left, title, description)
}
