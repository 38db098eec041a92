package components

import "github.com/charmbracelet/lipgloss"

// Tip styles
var (
	tipKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	tipDescStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"})
)

func tipKey(k string) string  { return tipKeyStyle.Render(k) }
func tipDesc(d string) string { return tipDescStyle.Render(d) }

// Tips contains hints shown in the footer; DeleteTips only apply to deletable sources
var (
	Tips = []string{
		tipDesc("Press ") + tipKey("1-5") + tipDesc(" to jump to a minimum level"),
		tipDesc("Press ") + tipKey("g/G") + tipDesc(" for the first or last page"),
		tipDesc("Press ") + tipKey("r") + tipDesc(" to reload the current page"),
		tipDesc("Print a page without the modal using ") + tipKey("logpane runs <id> --no-ui"),
		tipDesc("Write a config template with ") + tipKey("logpane init"),
	}

	DeleteTips = []string{
		tipDesc("Press ") + tipKey("m") + tipDesc(" then ") + tipKey("d") + tipDesc(" to delete a range"),
		tipDesc("Press ") + tipKey("D") + tipDesc(" to delete everything up to the cursor"),
	}
)
