package modal

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"logpane/internal/app/errors"
	"logpane/internal/app/logview"
	"logpane/internal/app/ui/components"
)

// Tick timing constants
const (
	tickInterval       = components.UITickInterval
	tickCounterMaximum = 1000000
)

// resultMsg carries a finished adapter round-trip back to the update loop
type resultMsg struct {
	res logview.Result
}

// tickMsg signals a UI tick for animations
type tickMsg time.Time

// statsMsg carries the viewer's own resource usage
type statsMsg struct {
	CPU float64
	MEM float64
}

// ReloadedMsg tells the modal its source changed underneath it; Err is set when the reload failed
type ReloadedMsg struct {
	Err error
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.ui.width = msg.Width
		m.ui.height = msg.Height
		m.ui.ready = true
		m.resize()

		return m, nil

	case resultMsg:
		next := m.engine.Resolve(msg.res)
		m.syncTable()

		return m, m.run(next)

	case ReloadedMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("Source reload failed")
			m.state.notice = fmt.Sprintf("reload failed: %v", msg.Err)

			return m, nil
		}

		m.state.notice = ""

		return m.reload()

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.ui.spinner, cmd = m.ui.spinner.Update(msg)

		return m, cmd

	case tickMsg:
		m.ui.tickCounter++

		if m.ui.tickCounter >= tickCounterMaximum {
			m.ui.tickCounter = 0
		}

		m.updatePulse()

		return m, tickCmd()

	case statsMsg:
		m.state.appCPU = msg.CPU
		m.state.appMEM = msg.MEM

		return m, statsCmd(m.ctx, m.monitor)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.ui.keys

	if key.Matches(msg, keys.ForceQuit) {
		m.log.Warn().Msg("Force quit requested")
		return m.close()
	}

	if m.state.confirm != nil {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m.close()

	case key.Matches(msg, keys.Up):
		m.ui.table.MoveUp(1)
		return m, nil

	case key.Matches(msg, keys.Down):
		m.ui.table.MoveDown(1)
		return m, nil

	case key.Matches(msg, keys.PrevPage):
		return m.paginate(m.engine.PrevPage())

	case key.Matches(msg, keys.NextPage):
		return m.paginate(m.engine.NextPage())

	case key.Matches(msg, keys.FirstPage):
		return m.paginate(m.engine.FirstPage())

	case key.Matches(msg, keys.LastPage):
		return m.paginate(m.engine.LastPage())

	case key.Matches(msg, keys.LevelUp):
		return m.setLevel(m.engine.Level().Next())

	case key.Matches(msg, keys.LevelDown):
		return m.setLevel(m.engine.Level().Prev())

	case key.Matches(msg, keys.Level):
		return m.setLevel(logview.Level(msg.Runes[0] - '1'))

	case key.Matches(msg, keys.Reload):
		return m.reload()

	case key.Matches(msg, keys.ToggleTips):
		m.ui.showTips = !m.ui.showTips
		return m, nil

	case key.Matches(msg, keys.Mark):
		return m.handleMark()

	case key.Matches(msg, keys.DeleteRange):
		return m.handleDeleteRange()

	case key.Matches(msg, keys.DeleteUntil):
		return m.handleDeleteUntil()

	case key.Matches(msg, keys.DeleteAll):
		m.state.confirm = &pendingDelete{rng: logview.All(), prompt: "delete all logs?"}
		return m, nil
	}

	return m, nil
}

// handleConfirmKey resolves a pending delete prompt
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ui.keys.Confirm):
		pending := m.state.confirm
		m.state.confirm = nil

		req, err := m.engine.Delete(pending.rng)
		if err != nil {
			m.log.Warn().Err(err).Msg("Delete rejected")
			m.state.notice = deleteNotice(err)

			return m, nil
		}

		m.log.Info().Msgf("Deleting logs (%s)", pending.prompt)
		m.state.mark = nil
		m.state.notice = ""
		m.syncTable()

		return m, m.run(req)

	case key.Matches(msg, m.ui.keys.Cancel):
		m.state.confirm = nil
		return m, nil
	}

	return m, nil
}

// handleMark toggles the range anchor on the cursor row
func (m Model) handleMark() (tea.Model, tea.Cmd) {
	entry, ok := m.cursorEntry()
	if !ok {
		return m, nil
	}

	if m.isMarked(entry) {
		m.state.mark = nil
	} else {
		m.state.mark = &entry
	}

	m.syncTable()

	return m, nil
}

// handleDeleteRange asks to delete from the marked row to the cursor row
func (m Model) handleDeleteRange() (tea.Model, tea.Cmd) {
	entry, ok := m.cursorEntry()
	if !ok {
		return m, nil
	}

	if m.state.mark == nil {
		m.state.notice = "mark a row with m first"
		return m, nil
	}

	rng := logview.Between(m.state.mark.Timestamp, entry.Timestamp)
	m.state.confirm = &pendingDelete{
		rng:    rng,
		prompt: fmt.Sprintf("delete logs from %s to %s?", m.formatTime(*rng.From), m.formatTime(*rng.To)),
	}

	return m, nil
}

// handleDeleteUntil asks to delete everything up to the cursor row
func (m Model) handleDeleteUntil() (tea.Model, tea.Cmd) {
	entry, ok := m.cursorEntry()
	if !ok {
		return m, nil
	}

	m.state.confirm = &pendingDelete{
		rng:    logview.Until(entry.Timestamp),
		prompt: fmt.Sprintf("delete logs up to %s?", m.formatTime(entry.Timestamp)),
	}

	return m, nil
}

// setLevel changes the minimum level filter
func (m Model) setLevel(level logview.Level) (tea.Model, tea.Cmd) {
	req := m.engine.SetLevel(level)
	if req == nil {
		return m, nil
	}

	m.log.Debug().Msgf("Level filter set to %s", m.engine.Level())
	m.syncTable()

	return m, m.run(req)
}

// paginate applies a page change and moves the cursor to the top of the new page
func (m Model) paginate(req *logview.Request) (tea.Model, tea.Cmd) {
	if req == nil {
		return m, nil
	}

	m.ui.table.SetCursor(0)
	m.syncTable()

	return m, m.run(req)
}

// reload refetches count and rows with the current filter
func (m Model) reload() (tea.Model, tea.Cmd) {
	req := m.engine.Reload()
	m.syncTable()

	return m, m.run(req)
}

// close cancels outstanding requests and quits
func (m Model) close() (tea.Model, tea.Cmd) {
	m.state.closed = true
	m.cancel()

	return m, tea.Quit
}

// updatePulse animates the title pulse while the engine is waiting on its source
func (m *Model) updatePulse() {
	if !m.engine.Loading() {
		if m.ui.pulse.IsActive() {
			m.ui.pulse.Stop()
		}

		return
	}

	m.ui.pulse.Start()
	m.ui.pulse.Update()
}

func deleteNotice(err error) string {
	switch {
	case errors.Is(err, errors.ErrEngineBusy):
		return "still loading, try again"
	case errors.Is(err, errors.ErrDeleteUnsupported):
		return "this log cannot be deleted"
	default:
		return err.Error()
	}
}
