package components

import "time"

// UI timing constants
const (
	// UITickInterval is the base tick rate for the modal animations
	UITickInterval = 100 * time.Millisecond

	// UITicksPerSecond is the derived animation FPS
	UITicksPerSecond = int(time.Second / UITickInterval)

	// StatsPollingInterval controls how often the footer stats are refreshed
	StatsPollingInterval = 2 * time.Second

	// StatsBatchTimeout bounds a single stats sample
	StatsBatchTimeout = time.Second

	// TipRotationTicks is the number of ticks a footer tip stays visible
	TipRotationTicks = 80
)

// Memory conversion
const (
	MBToGB = 1024
)

// Modal layout constants
const (
	ModalChromeHeight = 6 // header, blank, status line, footer line, help, blank
	MinTableHeight    = 3
	TableBorderHeight = 1 // column header row
)

// Header layout constants
const (
	HeaderSeparatorMinWidth = 4
	HeaderFixedChars        = 10
)

// Footer layout constants
const (
	FooterSeparatorMinWidth = 4
	FooterFixedChars        = 6
)

// Column widths
const (
	ColWidthLevel     = 7
	ColWidthTimestamp = 19
	ColWidthRun       = 8
	MessageMinWidth   = 20
	TablePadding      = 2 // left/right cell padding of the bubbles table
)
