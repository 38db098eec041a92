package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxevent"

	"logpane/internal/config"
	"logpane/internal/config/logger"
)

func Test_LoadConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Viewer, cfg.Viewer)
}

func Test_LoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("viewer:\n  pageSize: 0\n"), 0o644))

	cfg, err := loadConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func Test_CreateApp(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		file    bool
		tuiMode bool
	}{
		{name: "Creates app with info level logging and TUI", level: logger.InfoLevel, tuiMode: true},
		{name: "Creates app with TUI logging to a file", level: logger.InfoLevel, file: true, tuiMode: true},
		{name: "Creates app with debug level logging and no UI", level: logger.DebugLevel},
		{name: "Creates app with error level logging", level: logger.ErrorLevel, tuiMode: true},
		{name: "Creates app with warn level logging", level: logger.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Logging.Level = tt.level

			if tt.file {
				cfg.Logging.File = filepath.Join(t.TempDir(), "logpane.log")
			}

			app := createApp(cfg, tt.tuiMode)
			require.NotNil(t, app)
			assert.NoError(t, app.Err())

			if tt.file {
				assert.FileExists(t, cfg.Logging.File)
			}
		})
	}
}

func Test_CreateApp_FileLoggerError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.File = filepath.Join(t.TempDir(), "missing", "logpane.log")

	app := createApp(cfg, true)
	assert.Error(t, app.Err())
}

func Test_UsesTUI(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{name: "No args returns false", args: []string{}, expected: false},
		{name: "Runs opens the viewer", args: []string{"runs", "42"}, expected: true},
		{name: "Report opens the viewer", args: []string{"report", "*.json"}, expected: true},
		{name: "Runs with --no-ui prints", args: []string{"runs", "42", "--no-ui"}, expected: false},
		{name: "--no-ui before the command prints", args: []string{"--no-ui", "report", "*.json"}, expected: false},
		{name: "Serve writes logs to the terminal", args: []string{"serve"}, expected: false},
		{name: "Invalid args return false", args: []string{"runs", "abc"}, expected: false},
		{name: "Other commands return false", args: []string{"help", "version"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, usesTUI(tt.args))
		})
	}
}

func Test_CreateFxLogger(t *testing.T) {
	tests := []struct {
		name           string
		level          string
		expectedType   interface{}
		expectedLogger interface{}
	}{
		{name: "Debug level returns console logger", level: logger.DebugLevel, expectedType: &fxevent.ConsoleLogger{}},
		{name: "Info level returns nop logger", level: logger.InfoLevel, expectedLogger: fxevent.NopLogger},
		{name: "Warn level returns nop logger", level: logger.WarnLevel, expectedLogger: fxevent.NopLogger},
		{name: "Error level returns nop logger", level: logger.ErrorLevel, expectedLogger: fxevent.NopLogger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Logging.Level = tt.level

			loggerFunc := createFxLogger(cfg)
			assert.NotNil(t, loggerFunc)

			result := loggerFunc()
			assert.NotNil(t, result)

			if tt.expectedType != nil {
				assert.IsType(t, tt.expectedType, result)
			}

			if tt.expectedLogger != nil {
				assert.Equal(t, tt.expectedLogger, result)
			}
		})
	}
}
