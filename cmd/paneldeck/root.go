package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"paneldeck/internal/config"
	"paneldeck/internal/layout"
	"paneldeck/internal/logging"
	"paneldeck/internal/store"
)

// options are the persistent flags. Set flags override the config file.
type options struct {
	configPath string
	axis       string
	statePath  string
	logFile    string
	verbose    bool

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "paneldeck",
		Short: "A terminal dashboard of resizable, reorderable panels",
		Long: `paneldeck arranges content panels side by side in the terminal.
Drag a divider to resize two neighbors, drag a title bar to reorder,
and press SPC for the command menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("axis") {
				cfg.Layout.Axis = opts.axis
			}
			if cmd.Flags().Changed("state") {
				cfg.Store.Path = opts.statePath
			}
			if cmd.Flags().Changed("log-file") {
				cfg.Log.File = opts.logFile
			}
			if opts.verbose {
				cfg.Log.Level = "debug"
			}
			if _, err := layout.ParseAxis(cfg.Layout.Axis); err != nil {
				return err
			}
			opts.cfg = cfg

			// Subcommands log to stderr; run swaps in a file logger.
			level, err := logging.ParseLevel(cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.New(cmd.ErrOrStderr(), level)))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", os.Getenv(config.ConfigEnv), "config file (TOML)")
	flags.StringVar(&opts.axis, "axis", "", "panel axis: horizontal or vertical")
	flags.StringVar(&opts.statePath, "state", "", "panel state file (.json or .yaml)")
	flags.StringVar(&opts.logFile, "log-file", "", "log file used while the dashboard runs")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newPanelsCmd(opts))
	return root
}

// openStore opens the configured state file.
func openStore(opts *options, logger *log.Logger) (*store.Store, error) {
	return store.NewStore(opts.cfg.Store.Path, logger)
}
