package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"logpane/internal/config"
)

func Test_RenderHeader(t *testing.T) {
	tests := []struct {
		name  string
		width int
		title string
		info  string
	}{
		{name: "fits", width: 80, title: "runs #12", info: "page 1/3"},
		{name: "narrow width truncates title", width: 30, title: strings.Repeat("x", 60), info: "page 1/1"},
		{name: "empty info", width: 40, title: "report", info: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderHeader(tt.width, tt.title, tt.info)

			assert.Contains(t, result, "─")
			assert.Contains(t, result, tt.info)
		})
	}
}

func Test_RenderHeader_KeepsShortTitle(t *testing.T) {
	result := RenderHeader(80, "runs #12", "info")

	assert.Contains(t, result, "runs #12")
}

func Test_RenderFooter(t *testing.T) {
	t.Run("version only", func(t *testing.T) {
		result := RenderFooter(60, "", "q close")

		assert.Contains(t, result, "v"+config.Version)
		assert.Contains(t, result, "q close")
		assert.NotContains(t, result, "•")
	})

	t.Run("stats and version", func(t *testing.T) {
		result := RenderFooter(60, "cpu 0.5% • mem 12MB", "q close")

		assert.Contains(t, result, "cpu 0.5%")
		assert.Contains(t, result, "v"+config.Version)
	})
}

func Test_RenderLine(t *testing.T) {
	assert.Equal(t, 5, lipgloss.Width(RenderLine(5)))
	assert.Equal(t, 0, lipgloss.Width(RenderLine(-3)))
}

func Test_Truncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		width  int
		expect string
	}{
		{name: "exact width no change", input: "hello", width: 5, expect: "hello"},
		{name: "shorter than width", input: "hi", width: 5, expect: "hi"},
		{name: "longer than width truncates", input: "hello world", width: 8, expect: "hello w…"},
		{name: "width 1 returns ellipsis", input: "hello", width: 1, expect: "…"},
		{name: "width 0 returns empty", input: "hello", width: 0, expect: ""},
		{name: "unicode truncation", input: "日本語テスト", width: 5, expect: "日本…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Truncate(tt.input, tt.width))
		})
	}
}

func Test_PadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		width  int
		expect string
	}{
		{name: "empty string pad to 3", input: "", width: 3, expect: "   "},
		{name: "short string", input: "ab", width: 4, expect: "ab  "},
		{name: "longer than width no change", input: "hello", width: 2, expect: "hello"},
		{name: "wide characters", input: "日本", width: 6, expect: "日本  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, PadRight(tt.input, tt.width))
		})
	}
}
