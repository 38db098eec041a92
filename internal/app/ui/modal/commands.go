package modal

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"logpane/internal/app/logview"
	"logpane/internal/app/monitor"
	"logpane/internal/app/ui/components"
)

// run performs req off the update loop and delivers its result as a message
func (m Model) run(req *logview.Request) tea.Cmd {
	if req == nil {
		return nil
	}

	ctx := m.ctx

	return func() tea.Msg {
		return resultMsg{res: req.Do(ctx)}
	}
}

// tickCmd returns a command that sends a tick after the interval
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// statsCmd samples the viewer's own CPU and memory after the polling interval
func statsCmd(ctx context.Context, mon monitor.Monitor) tea.Cmd {
	if mon == nil {
		return nil
	}

	return tea.Tick(components.StatsPollingInterval, func(time.Time) tea.Msg {
		sampleCtx, cancel := context.WithTimeout(ctx, components.StatsBatchTimeout)
		defer cancel()

		stats, err := mon.Self(sampleCtx)
		if err != nil {
			return statsMsg{}
		}

		return statsMsg{CPU: stats.CPU, MEM: stats.MEM}
	})
}
