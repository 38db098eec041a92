package modal

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"logpane/internal/app/logview"
	"logpane/internal/app/monitor"
	"logpane/internal/app/ui/components"
	"logpane/internal/config/logger"
)

// DefaultEmptyMessage is shown when the filtered stream has no entries
const DefaultEmptyMessage = "There are no logs"

// Options configures the modal presentation
type Options struct {
	Title        string
	EmptyMessage string
	TimeFormat   string
	Render       logview.CellRenderer
}

// pendingDelete is a delete waiting for confirmation
type pendingDelete struct {
	rng    logview.Range
	prompt string
}

// Model is the Bubble Tea model for one log modal session
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	engine  *logview.Engine
	monitor monitor.Monitor
	render  logview.CellRenderer
	title   string
	empty   string
	layout  string

	state struct {
		mark    *logview.Entry
		confirm *pendingDelete
		notice  string
		closed  bool
		appCPU  float64
		appMEM  float64
	}

	ui struct {
		width       int
		height      int
		ready       bool
		keys        KeyMap
		help        help.Model
		table       table.Model
		spinner     spinner.Model
		pulse       *components.Blink
		tickCounter int
		showTips    bool
		tipOffset   int
	}

	log logger.Logger
}

// NewModel creates a modal over engine. Closing the modal cancels every outstanding request
func NewModel(ctx context.Context, engine *logview.Engine, opts Options, mon monitor.Monitor, log logger.Logger) Model {
	ctx, cancel := context.WithCancel(ctx)

	m := Model{
		ctx:     ctx,
		cancel:  cancel,
		engine:  engine,
		monitor: mon,
		render:  opts.Render,
		title:   opts.Title,
		empty:   opts.EmptyMessage,
		layout:  opts.TimeFormat,
		log:     log.WithComponent("MODAL"),
	}

	if m.empty == "" {
		m.empty = DefaultEmptyMessage
	}

	if m.layout == "" {
		m.layout = logview.TimestampLayout
	}

	m.ui.keys = DefaultKeyMap()
	m.ui.keys.setDeletable(engine.CanDelete())
	m.ui.help = help.New()
	m.ui.spinner = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(components.SpinnerStyle))
	m.ui.pulse = components.NewBlink()
	m.ui.showTips = true
	m.ui.tipOffset = rand.Intn(len(components.Tips)) //nolint:gosec // not security-critical
	m.ui.table = newTable(layoutColumns(engine.Columns(), defaultWidth))

	return m
}

// newTable creates the focused, styled log table
func newTable(columns []table.Column) table.Model {
	t := table.New(table.WithColumns(columns), table.WithFocused(true))

	styles := table.DefaultStyles()
	styles.Header = components.TableHeaderStyle
	styles.Selected = components.TableSelectedStyle
	t.SetStyles(styles)

	return t
}

// Init opens the stream and starts the UI tickers
func (m Model) Init() tea.Cmd {
	m.log.Debug().Msgf("Opening modal '%s'", m.title)

	return tea.Batch(
		m.run(m.engine.Open()),
		m.ui.spinner.Tick,
		tickCmd(),
		statsCmd(m.ctx, m.monitor),
	)
}

// Engine returns the engine the modal drives
func (m Model) Engine() *logview.Engine {
	return m.engine
}

// Closed reports whether the user closed the modal
func (m Model) Closed() bool {
	return m.state.closed
}

// formatTime renders a range bound for prompts
func (m Model) formatTime(t time.Time) string {
	return logview.FormatTimestamp(t, m.layout)
}

// cursorEntry returns the entry under the table cursor
func (m Model) cursorEntry() (logview.Entry, bool) {
	rows := m.engine.Rows()
	cursor := m.ui.table.Cursor()

	if cursor < 0 || cursor >= len(rows) {
		return logview.Entry{}, false
	}

	return rows[cursor], true
}

// isMarked reports whether entry is the anchor of the range selection
func (m Model) isMarked(entry logview.Entry) bool {
	mark := m.state.mark
	if mark == nil {
		return false
	}

	return mark.Timestamp.Equal(entry.Timestamp) &&
		mark.Level == entry.Level &&
		mark.SourceID == entry.SourceID &&
		mark.Message == entry.Message
}

// syncTable pushes the engine rows into the table and keeps the cursor in range
func (m *Model) syncTable() {
	cells := m.engine.Table(m.render)
	rows := make([]table.Row, len(cells))

	for i, entry := range m.engine.Rows() {
		gutter := " "
		if m.isMarked(entry) {
			gutter = markGlyph
		}

		rows[i] = append(table.Row{gutter}, cells[i]...)
	}

	cursor := m.ui.table.Cursor()

	m.ui.table.SetRows(rows)

	switch {
	case len(rows) == 0:
		m.ui.table.SetCursor(0)
	case cursor >= len(rows):
		m.ui.table.SetCursor(len(rows) - 1)
	case cursor < 0:
		m.ui.table.SetCursor(0)
	}
}

// resize lays the table out for the current window
func (m *Model) resize() {
	m.ui.help.Width = m.ui.width

	height := m.ui.height - components.ModalChromeHeight - components.TableBorderHeight - filterBarHeight
	if height < components.MinTableHeight {
		height = components.MinTableHeight
	}

	m.ui.table.SetColumns(layoutColumns(m.engine.Columns(), m.ui.width))
	m.ui.table.SetWidth(m.ui.width)
	m.ui.table.SetHeight(height)
}
