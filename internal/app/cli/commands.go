package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"logpane/internal/app/errors"
	"logpane/internal/config"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandHelp CommandType = iota
	CommandRuns
	CommandReport
	CommandServe
	CommandInit
	CommandVersion
)

// Options contains the parsed command-line arguments
type Options struct {
	Type    CommandType
	TestID  int64
	RunID   int64
	Pattern string
	Level   string
	Page    int
	NoUI    bool
}

// rootFlags holds flag values for the root command
type rootFlags struct {
	version bool
}

// Parse parses command-line args and returns an Options struct
func Parse(args []string) (*Options, error) {
	result := &Options{
		Type: CommandHelp,
		Page: 1,
	}

	var flags rootFlags

	root := buildRootCommand(result, &flags)
	root.AddCommand(
		buildRunsCommand(result),
		buildReportCommand(result),
		buildServeCommand(result),
		buildInitCommand(result),
		buildVersionCommand(result),
	)

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	if flags.version {
		result.Type = CommandVersion
	}

	return result, nil
}

// buildRootCommand creates the root cobra command
func buildRootCommand(result *Options, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: config.AppDescription,
		Long: `Logpane is a terminal log viewer with paging, minimum level filtering
and range deletion over transformation logs and report files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandHelp
		},
	}

	cmd.PersistentFlags().BoolVar(&result.NoUI, "no-ui", false, "Print one page instead of opening the viewer")
	cmd.PersistentFlags().StringVarP(&result.Level, "level", "L", "", "Minimum level (trace, debug, info, warn, error)")
	cmd.Flags().BoolVarP(&flags.version, "version", "v", false, "Show version information")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		result.Type = CommandHelp
	})

	return cmd
}

// buildRunsCommand creates the runs subcommand
func buildRunsCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs <testId>",
		Short: "View the transformation log of a test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("%w: '%s'", errors.ErrInvalidTestID, args[0])
			}

			if result.RunID < 0 {
				return fmt.Errorf("%w: %d", errors.ErrInvalidRunID, result.RunID)
			}

			if result.Page < 1 {
				result.Page = 1
			}

			result.Type = CommandRuns
			result.TestID = id

			return nil
		},
	}

	cmd.Flags().Int64Var(&result.RunID, "run", 0, "Only show logs of this run")
	cmd.Flags().IntVarP(&result.Page, "page", "p", 1, "Page to open")

	return cmd
}

// buildReportCommand creates the report subcommand
func buildReportCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <glob>",
		Short: "View report log files matching a glob, reloading on change",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandReport
			result.Pattern = args[0]
		},
	}

	return cmd
}

// buildServeCommand creates the serve subcommand
func buildServeCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the transformation log service",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandServe
		},
	}

	return cmd
}

// buildInitCommand creates the init subcommand
func buildInitCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"i"},
		Short:   "Generate logpane.yaml template",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandInit
		},
	}

	return cmd
}

// buildVersionCommand creates the version subcommand
func buildVersionCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandVersion
		},
	}

	return cmd
}
