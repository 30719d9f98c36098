// Package cli implements the funcscan command line.
package cli

import (
	"errors"
	"log/slog"

	"github.com/me/funcscan/internal/config"
	"github.com/me/funcscan/internal/logging"
	"github.com/me/funcscan/pkg/model"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	cfg    config.Config
	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the funcscan launcher.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "funcscan",
		Short: "Launch the nf-core/funcscan pipeline on a shared volume",
		Long: `funcscan provisions a shared storage volume, mirrors the project into it,
runs nf-core/funcscan with Nextflow and uploads the engine log when done.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(flagConfig)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = flagLogLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = flagLogFormat
			}
			if flagDebug {
				cfg.LogLevel = "debug"
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "TOML config file (defaults apply when empty)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "auto", "Log format (text, json, console, auto)")

	root.AddCommand(
		newRunCmd(),
		newProvisionCmd(),
		newLaunchCmd(),
		newFlagsCmd(),
		newParamsCmd(),
		newHistoryCmd(),
	)

	return root
}

// ExitCode maps an error returned by the root command to a process exit
// status: the engine's own status when it ran and failed, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var execErr *model.ExecutionError
	if errors.As(err, &execErr) && execErr.ExitCode > 0 {
		return execErr.ExitCode
	}
	return 1
}
