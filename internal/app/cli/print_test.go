package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logpane/internal/app/logview"
)

func Test_writeTable(t *testing.T) {
	columns := logview.NewColumns("Level", "Timestamp", "Message")
	entries := []logview.Entry{
		{Level: logview.Info, Timestamp: time.Unix(0, 0)},
		{Level: logview.Error, Timestamp: time.Unix(1, 0)},
	}
	rows := [][]string{
		{"● INFO", "12:00:00", "short"},
		{"✖ ERROR", "12:00:01", strings.Repeat("x", 200)},
	}

	var buf bytes.Buffer
	writeTable(&buf, 60, columns, entries, rows)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Level    Timestamp  Message", lines[0])
	assert.Equal(t, "● INFO   12:00:00   short", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "✖ ERROR  12:00:01   xxx"))
	assert.True(t, strings.HasSuffix(lines[2], "…"))
	assert.LessOrEqual(t, len([]rune(lines[2])), 60)
}

func Test_terminalWidth(t *testing.T) {
	assert.Equal(t, defaultPrintWidth, terminalWidth(&bytes.Buffer{}))
}
