package modal

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"logpane/internal/app/logview"
)

// TransformationCells renders Level, Timestamp, Run ID and Message cells
func TransformationCells(layout string) logview.CellRenderer {
	return func(entry logview.Entry) []string {
		run := ""
		if entry.SourceID != 0 {
			run = strconv.FormatInt(entry.SourceID, 10)
		}

		return []string{
			levelCell(entry.Level),
			logview.FormatTimestamp(entry.Timestamp, layout),
			run,
			MessageText(entry.Message),
		}
	}
}

// ReportCells renders Level, Timestamp and Message cells
func ReportCells(layout string) logview.CellRenderer {
	return func(entry logview.Entry) []string {
		return []string{
			levelCell(entry.Level),
			logview.FormatTimestamp(entry.Timestamp, layout),
			MessageText(entry.Message),
		}
	}
}

func levelCell(level logview.Level) string {
	return level.Glyph() + " " + level.String()
}

// MessageText flattens a log message to one line of plain text.
// Messages may carry HTML markup; only text content is kept and script or style bodies are dropped.
func MessageText(message string) string {
	if !strings.ContainsRune(message, '<') && !strings.ContainsRune(message, '&') {
		return collapseSpace(message)
	}

	var (
		b    strings.Builder
		skip int
	)

	z := html.NewTokenizer(strings.NewReader(message))

	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapseSpace(b.String())

		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}

		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				skip++
			case "br", "p", "div", "li", "tr":
				b.WriteByte(' ')
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			case "p", "div", "li", "td", "tr":
				b.WriteByte(' ')
			}

		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
