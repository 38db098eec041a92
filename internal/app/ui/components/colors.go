package components

import (
	"github.com/charmbracelet/lipgloss"

	"logpane/internal/app/logview"
)

// Color palette for the UI with semantic naming
const (
	// Foreground colors - text and elements
	FgPrimary = lipgloss.Color("#7D56F4") // Purple - primary/focus color
	FgMuted   = lipgloss.Color("7")       // Light gray - muted elements
	FgBorder  = lipgloss.Color("8")       // Gray - borders and help text

	// Background colors
	BgSelection = lipgloss.Color("235") // Dark gray - cursor row background
	BgMark      = lipgloss.Color("53")  // Dark purple - marked row background

	// Status colors
	FgStatusReady   = lipgloss.Color("10") // Green - ready
	FgStatusWarning = lipgloss.Color("11") // Yellow - loading/confirm
	FgStatusError   = lipgloss.Color("9")  // Red - failed
)

// SeparatorColor is the adaptive color for header and footer lines
var SeparatorColor = lipgloss.AdaptiveColor{Light: "#737373", Dark: "#a3a3a3"}

// levelColors is indexed by logview.Level
var levelColors = [...]lipgloss.AdaptiveColor{
	{Light: "#737373", Dark: "#737373"}, // Trace - gray
	{Light: "#0891b2", Dark: "#22d3ee"}, // Debug - cyan
	{Light: "#059669", Dark: "#34d399"}, // Info - emerald
	{Light: "#d97706", Dark: "#fbbf24"}, // Warn - amber
	{Light: "#dc2626", Dark: "#f87171"}, // Error - red
}

// LevelColor returns the color used for a severity level; out-of-range levels are clamped
func LevelColor(level logview.Level) lipgloss.AdaptiveColor {
	return levelColors[level.Clamp()]
}
