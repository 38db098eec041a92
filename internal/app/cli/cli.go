//go:generate mockgen -source=cli.go -destination=cli_mock.go -package=cli
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"logpane/internal/app/errors"
	"logpane/internal/app/logview"
	"logpane/internal/app/monitor"
	"logpane/internal/app/server"
	"logpane/internal/app/source/report"
	"logpane/internal/app/source/transformation"
	"logpane/internal/app/store"
	"logpane/internal/app/ui/modal"
	"logpane/internal/config"
	"logpane/internal/config/logger"
)

// CLI defines the interface for cli operations
type CLI interface {
	Run(args []string) error
	Execute() (int, error)
}

// cli represents the command-line interface for the application
type cli struct {
	ctx     context.Context
	cfg     *config.Config
	client  *transformation.Client
	stores  store.Factory
	monitor monitor.Monitor
	ui      TUI
	out     io.Writer
	errOut  io.Writer
	log     logger.Logger
}

// NewCLI creates a new cli instance
func NewCLI(
	cfg *config.Config,
	client *transformation.Client,
	stores store.Factory,
	mon monitor.Monitor,
	ui TUI,
	log logger.Logger,
) CLI {
	return &cli{
		ctx:     context.Background(),
		cfg:     cfg,
		client:  client,
		stores:  stores,
		monitor: mon,
		ui:      ui,
		out:     os.Stdout,
		errOut:  os.Stderr,
		log:     log,
	}
}

// Execute runs the process arguments and maps the outcome to an exit code
func (c *cli) Execute() (int, error) {
	if err := c.Run(os.Args[1:]); err != nil {
		c.log.Error().Err(err).Msg("Command failed")
		fmt.Fprintf(c.errOut, "%s: %v\n", config.AppName, err)

		return 1, err
	}

	return 0, nil
}

// Run processes command-line arguments and executes commands
func (c *cli) Run(args []string) error {
	opts, err := Parse(args)
	if err != nil {
		return err
	}

	switch opts.Type {
	case CommandHelp:
		return c.handleHelp()
	case CommandVersion:
		return c.handleVersion()
	case CommandInit:
		return c.handleInit()
	case CommandRuns:
		return c.handleRuns(opts)
	case CommandReport:
		return c.handleReport(opts)
	case CommandServe:
		return c.handleServe()
	default:
		return errors.ErrUnknownCommand
	}
}

// handleRuns opens the transformation log of one test
func (c *cli) handleRuns(opts *Options) error {
	level, err := c.minLevel(opts)
	if err != nil {
		return err
	}

	c.log.Debug().Msgf("Opening transformation log: test=%d run=%d level=%s", opts.TestID, opts.RunID, level)

	engine := logview.NewEngine(c.client.Stream(opts.TestID, opts.RunID), logview.Options{
		PageSize: c.cfg.Viewer.PageSize,
		Level:    level,
		Columns:  transformation.Columns(),
	}, c.log)
	engine.SetPage(opts.Page - 1)

	render := modal.TransformationCells(c.cfg.Viewer.TimeFormat)

	if opts.NoUI {
		return c.printPage(c.ctx, engine, render)
	}

	title := fmt.Sprintf("test #%d", opts.TestID)
	if opts.RunID != 0 {
		title = fmt.Sprintf("%s run #%d", title, opts.RunID)
	}

	model := modal.NewModel(c.ctx, engine, modal.Options{
		Title:      title,
		TimeFormat: c.cfg.Viewer.TimeFormat,
		Render:     render,
	}, c.monitor, c.log)

	return c.ui.Show(c.ctx, model, nil)
}

// handleReport opens the report files matching the pattern and reloads them on change
func (c *cli) handleReport(opts *Options) error {
	level, err := c.minLevel(opts)
	if err != nil {
		return err
	}

	r, err := report.Open(opts.Pattern, c.cfg.Report.Debounce, c.log)
	if err != nil {
		return err
	}

	c.log.Debug().Msgf("Loaded %d report files for '%s'", len(r.Files()), opts.Pattern)

	engine := logview.NewEngine(r.Source(), logview.Options{
		PageSize: c.cfg.Viewer.PageSize,
		Level:    level,
		Columns:  report.Columns(),
	}, c.log)

	render := modal.ReportCells(c.cfg.Viewer.TimeFormat)

	if opts.NoUI {
		return c.printPage(c.ctx, engine, render)
	}

	ctx, cancel := context.WithCancel(c.ctx)
	defer cancel()

	feed := make(chan tea.Msg, 1)

	w, err := r.Watch(ctx, func(err error) {
		select {
		case feed <- modal.ReloadedMsg{Err: err}:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	model := modal.NewModel(ctx, engine, modal.Options{
		Title:      opts.Pattern,
		TimeFormat: c.cfg.Viewer.TimeFormat,
		Render:     render,
	}, c.monitor, c.log)

	return c.ui.Show(ctx, model, feed)
}

// handleServe runs the log service until interrupted
func (c *cli) handleServe() error {
	ctx, stop := signal.NotifyContext(c.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := c.stores()
	if err != nil {
		return err
	}
	defer st.Close()

	return server.NewServer(c.cfg, st, c.log).Run(ctx)
}

// handleInit writes the config template to the working directory
func (c *cli) handleInit() error {
	if err := config.WriteTemplate(config.ConfigFile); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Created %s\n", config.ConfigFile)

	return nil
}

// handleHelp prints usage
func (c *cli) handleHelp() error {
	fmt.Fprint(c.out, renderHelp())
	return nil
}

// handleVersion prints the version
func (c *cli) handleVersion() error {
	fmt.Fprintf(c.out, "%s v%s\n", config.AppName, config.Version)
	return nil
}

// minLevel resolves the --level flag, falling back to viewer.level
func (c *cli) minLevel(opts *Options) (logview.Level, error) {
	name := opts.Level
	if name == "" {
		name = c.cfg.Viewer.Level
	}

	return logview.ParseLevel(name)
}
