//go:generate mockgen -source=tui.go -destination=tui_mock.go -package=cli
package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"logpane/internal/config/logger"
)

// TUI runs an interactive model on the terminal
type TUI interface {
	Show(ctx context.Context, model tea.Model, feed <-chan tea.Msg) error
}

type tui struct {
	log logger.Logger
}

// NewTUI creates a TUI that owns the alternate screen while a model runs
func NewTUI(log logger.Logger) TUI {
	return &tui{log: log.WithComponent("TUI")}
}

// Show runs model until it quits; messages from feed are delivered to it while it runs
func (t *tui) Show(ctx context.Context, model tea.Model, feed <-chan tea.Msg) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if feed != nil {
		go forward(ctx, p, feed)
	}

	t.log.Debug().Msg("Starting program")

	_, err := p.Run()

	t.log.Debug().Msg("Program exited")

	return err
}

// sender is the part of tea.Program that forward needs
type sender interface {
	Send(msg tea.Msg)
}

// forward delivers feed messages until ctx ends or feed closes
func forward(ctx context.Context, p sender, feed <-chan tea.Msg) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-feed:
			if !ok {
				return
			}

			p.Send(msg)
		}
	}
}
