package cli

import (
	"github.com/spf13/cobra"

	"github.com/pablasso/tasktracker/internal/version"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dataDir    string
	backend    string
	logLevel   string
}

// NewRootCmd builds the tasktracker command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "tasktracker",
		Short:         "Track tasks from the terminal",
		Long:          `Tasktracker keeps a prioritized, tagged task list. Run it without arguments for the interactive view.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tasktracker/config.yaml)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory for task data")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: file, redis, sqlite, mysql or memory")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newToggleCmd(opts),
		newRemoveCmd(opts),
		newMoveCmd(opts),
		newEditCmd(opts),
		newStatsCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
