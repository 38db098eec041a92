package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"logpane/internal/app"
	"logpane/internal/app/cli"
	"logpane/internal/config"
	"logpane/internal/config/logger"
)

// main is the entry point for the application
func main() {
	os.Exit(runApp())
}

// runApp contains the main application logic
func runApp() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	return run(createApp(cfg, usesTUI(os.Args[1:])))
}

// run starts the application and blocks until it asks to shut down
func run(application *fx.App) int {
	startCtx, cancel := context.WithTimeout(context.Background(), application.StartTimeout())
	defer cancel()

	if err := application.Start(startCtx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	signal := <-application.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), application.StopTimeout())
	defer cancel()

	if err := application.Stop(stopCtx); err != nil {
		return 1
	}

	return signal.ExitCode
}

// usesTUI reports whether args open the interactive viewer, which owns the terminal
func usesTUI(args []string) bool {
	opts, err := cli.Parse(args)
	if err != nil {
		return false
	}

	return !opts.NoUI && (opts.Type == cli.CommandRuns || opts.Type == cli.CommandReport)
}

// loadConfig wraps config.Load for easier testing
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// createApp creates the FX application with the given config
func createApp(cfg *config.Config, tuiMode bool) *fx.App {
	loggerOption := logger.Module
	if tuiMode {
		loggerOption = fx.Provide(newFileLogger(cfg))
	}

	return fx.New(
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg),
		loggerOption,
		app.Module,
	)
}

// newFileLogger keeps log output off the terminal while the viewer runs
func newFileLogger(cfg *config.Config) func(fx.Lifecycle) (logger.Logger, error) {
	return func(lc fx.Lifecycle) (logger.Logger, error) {
		log, closer, err := logger.NewFileLogger(cfg)
		if err != nil {
			return nil, err
		}

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return log, nil
	}
}

// createFxLogger returns an FX logger based on the config
func createFxLogger(cfg *config.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel {
			return &fxevent.ConsoleLogger{W: os.Stderr}
		}

		return fxevent.NopLogger
	}
}
