package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// usageLine pairs a command with its description
type usageLine struct {
	command string
	desc    string
}

var usageLines = []usageLine{
	{"logpane runs <testId> [--run id] [--page n]", "View the transformation log of a test"},
	{"logpane report <glob>", "View report files, reloading on change"},
	{"logpane serve", "Run the transformation log service"},
	{"logpane init", "Generate logpane.yaml"},
	{"logpane version", "Show version"},
	{"logpane help", "Show help"},
}

var exampleLines = []usageLine{
	{"logpane runs 42 --level warn", "Warnings and errors of test 42"},
	{"logpane runs 42 --run 7 --no-ui", "Print the first page of run 7"},
	{"logpane report 'reports/**/*.json'", "Follow every report under reports/"},
}

const flagsText = "Flags: --level/-L trace|debug|info|warn|error, --no-ui"

// renderHelp renders the usage screen
func renderHelp() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		RenderTitle(),
		sectionHeader.Render("Usage:"),
		renderLines(usageLines, commandName),
		sectionHeader.Render("Examples:"),
		renderLines(exampleLines, exampleCode),
		"",
		bodyMedium.Render(flagsText),
	) + "\n"
}

func renderLines(lines []usageLine, style lipgloss.Style) string {
	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l.command))
	}

	rendered := make([]string, len(lines))
	for i, l := range lines {
		pad := strings.Repeat(" ", width-lipgloss.Width(l.command)+4)
		rendered[i] = bodyMedium.Render("  " + style.Render(l.command) + pad + l.desc)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
