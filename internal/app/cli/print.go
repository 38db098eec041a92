package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"logpane/internal/app/logview"
	"logpane/internal/app/ui/components"
	"logpane/internal/app/ui/modal"
)

const (
	defaultPrintWidth = 120
	columnGap         = "  "
)

// printPage loads one page synchronously and writes it as a plain table
func (c *cli) printPage(ctx context.Context, engine *logview.Engine, render logview.CellRenderer) error {
	if err := engine.Drive(ctx, engine.Open()); err != nil {
		return err
	}

	count, _ := engine.Count()
	if count == 0 {
		fmt.Fprintln(c.out, modal.DefaultEmptyMessage)
		return nil
	}

	writeTable(c.out, terminalWidth(c.out), engine.Columns(), engine.Rows(), engine.Table(render))
	fmt.Fprintf(c.out, "\npage %d/%d • %d logs • min level %s\n", engine.Page()+1, engine.PageCount(), count, engine.Level())

	return nil
}

// writeTable aligns cells into columns; the last column is cut to the terminal width
func writeTable(w io.Writer, width int, columns []logview.Column, entries []logview.Entry, rows [][]string) {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = lipgloss.Width(c.Name)
	}

	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	if last := len(widths) - 1; last >= 0 {
		used := 0
		for _, wd := range widths[:last] {
			used += wd + len(columnGap)
		}

		widths[last] = max(min(widths[last], width-used), components.MessageMinWidth)
	}

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = components.PadRight(c.Name, widths[i])
	}

	fmt.Fprintln(w, strings.TrimRight(strings.Join(header, columnGap), " "))

	for r, row := range rows {
		cells := make([]string, len(row))

		for i, cell := range row {
			cell = components.PadRight(components.Truncate(cell, widths[i]), widths[i])
			if i == 0 {
				cell = components.LevelStyle(entries[r].Level).Render(cell)
			}

			cells[i] = cell
		}

		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, columnGap), " "))
	}
}

// terminalWidth returns the width of w when it is a terminal
func terminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return defaultPrintWidth
	}

	width, _, err := term.GetSize(f.Fd())
	if err != nil || width <= 0 {
		return defaultPrintWidth
	}

	return width
}
