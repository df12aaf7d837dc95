package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dukerupert/memosync/internal/config"
	"github.com/dukerupert/memosync/internal/logging"
)

// app is the state shared by every subcommand once flags and configuration
// have been read.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "memosync",
		Short: "A small note-taking workspace served over HTTP",
		Long: `MemoSync keeps a single workspace of color-tagged, pinnable notes.
Run "memosync serve" for the web interface or use the notes commands to
inspect and edit the same storage from a terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Parse(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.App.LogLevel = a.logLevel
			}
			a.cfg = cfg
			a.logger = logging.Setup(cmd.ErrOrStderr(), cfg.App.LogLevel, cfg.App.Pretty)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "read settings from a .env, YAML or JSON file before the environment")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides MEMOSYNC_LOG_LEVEL")

	cmd.AddCommand(newServeCmd(a), newNotesCmd(a))
	return cmd
}
