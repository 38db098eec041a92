package modal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"logpane/internal/app/logview"
	"logpane/internal/app/ui/components"
)

// View renders the modal
func (m Model) View() string {
	if !m.ui.ready {
		return "Initializing…"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.RenderHeader(m.ui.width, m.renderTitle(), m.renderPageInfo()),
		m.renderFilterBar(),
		m.renderBody(),
		m.renderStatus(),
		components.RenderFooter(m.ui.width, m.renderAppStats(), m.renderHelp()),
	)
}

// renderTitle renders the title with the loading pulse
func (m Model) renderTitle() string {
	title := components.TitleStyle.Render(m.title)
	if !m.ui.pulse.IsActive() {
		return title
	}

	return m.ui.pulse.Render(components.PulseStyle) + " " + title
}

// renderPageInfo renders "page x/y • n logs"
func (m Model) renderPageInfo() string {
	page := fmt.Sprintf("page %d/%d", m.engine.Page()+1, m.engine.PageCount())

	count, known := m.engine.Count()
	if !known {
		return page
	}

	noun := "logs"
	if count == 1 {
		noun = "log"
	}

	return fmt.Sprintf("%s • %d %s", page, count, noun)
}

// renderFilterBar renders every level, highlighting the ones that pass the filter
func (m Model) renderFilterBar() string {
	current := m.engine.Level()
	parts := make([]string, 0, len(logview.Levels()))

	for i, level := range logview.Levels() {
		label := fmt.Sprintf("%d %s %s", i+1, level.Glyph(), level)

		switch {
		case level == current:
			parts = append(parts, components.FilterActiveStyle.Inherit(components.LevelStyle(level)).Render(label))
		case level > current:
			parts = append(parts, components.LevelStyle(level).Render(label))
		default:
			parts = append(parts, components.FilterInactiveStyle.Render(label))
		}
	}

	return " " + strings.Join(parts, "  ")
}

// renderBody renders the table, or the empty, loading or error state
func (m Model) renderBody() string {
	if m.engine.State() == logview.Failed {
		return components.RenderContent(
			components.ErrorStyle.Render(m.engine.Err().Error()) + "\n" +
				components.MutedStyle.Render("press r to retry"),
		)
	}

	rows := m.engine.Rows()

	if len(rows) == 0 {
		if m.engine.Loading() {
			return components.RenderContent(m.ui.spinner.View() + " " + components.MutedStyle.Render("loading logs…"))
		}

		if count, known := m.engine.Count(); known && count == 0 {
			return components.EmptyStateStyle.Render(m.empty)
		}
	}

	return m.ui.table.View()
}

// renderStatus renders the confirm prompt, a notice or the rotating tip
func (m Model) renderStatus() string {
	switch {
	case m.state.confirm != nil:
		return components.ConfirmStyle.Render(m.state.confirm.prompt)
	case m.state.notice != "":
		return components.MutedStyle.Render(m.state.notice)
	case m.state.mark != nil:
		return components.MutedStyle.Render("marked " + m.formatTime(m.state.mark.Timestamp))
	}

	return m.renderTip()
}

// renderTip returns the current rotating tip or empty string if tips are disabled
func (m Model) renderTip() string {
	if !m.ui.showTips {
		return ""
	}

	tips := components.Tips
	if m.engine.CanDelete() {
		tips = append(append([]string{}, tips...), components.DeleteTips...)
	}

	rotation := m.ui.tickCounter / components.TipRotationTicks
	tipIndex := (m.ui.tipOffset + rotation) % len(tips)

	return " " + tips[tipIndex]
}

// renderAppStats renders the viewer's own CPU and memory usage
func (m Model) renderAppStats() string {
	if m.state.appCPU == 0 && m.state.appMEM == 0 {
		return ""
	}

	return fmt.Sprintf("cpu %s • mem %s", formatCPU(m.state.appCPU), formatMEM(m.state.appMEM))
}

// renderHelp renders the help text with keybindings
func (m Model) renderHelp() string {
	if m.state.confirm != nil {
		return m.ui.help.View(confirmHelp{keys: m.ui.keys})
	}

	return m.ui.help.View(m.ui.keys)
}

// formatCPU formats a CPU percentage value
func formatCPU(cpu float64) string {
	return fmt.Sprintf("%.1f%%", cpu)
}

// formatMEM formats a memory value in MB or GB
func formatMEM(mem float64) string {
	if mem < components.MBToGB {
		return fmt.Sprintf("%.0fMB", mem)
	}

	return fmt.Sprintf("%.1fGB", mem/components.MBToGB)
}
