package modal

import (
	"github.com/charmbracelet/bubbles/table"

	"logpane/internal/app/logview"
	"logpane/internal/app/ui/components"
)

const (
	defaultWidth    = 100
	filterBarHeight = 1
	markGlyph       = "▌"
	gutterWidth     = 1
)

// fixedWidths holds the widths of columns that do not grow with the window
var fixedWidths = map[string]int{
	"Level":     components.ColWidthLevel,
	"Timestamp": components.ColWidthTimestamp,
	"Run ID":    components.ColWidthRun,
}

// layoutColumns sizes the gutter and data columns for width; unknown columns share what is left
func layoutColumns(columns []logview.Column, width int) []table.Column {
	if width <= 0 {
		width = defaultWidth
	}

	result := make([]table.Column, 0, len(columns)+1)
	result = append(result, table.Column{Title: "", Width: gutterWidth})

	used := gutterWidth + components.TablePadding
	flexible := 0

	for _, c := range columns {
		if w, ok := fixedWidths[c.Name]; ok {
			used += w + components.TablePadding
		} else {
			used += components.TablePadding
			flexible++
		}
	}

	share := components.MessageMinWidth
	if flexible > 0 {
		share = max((width-used)/flexible, components.MessageMinWidth)
	}

	for _, c := range columns {
		w, ok := fixedWidths[c.Name]
		if !ok {
			w = share
		}

		result = append(result, table.Column{Title: c.Name, Width: w})
	}

	return result
}
