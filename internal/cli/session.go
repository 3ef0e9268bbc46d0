package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablasso/tasktracker/internal/config"
	"github.com/pablasso/tasktracker/internal/logging"
	"github.com/pablasso/tasktracker/internal/persist"
)

// LoadConfig reads the config file and applies the flag overrides.
func (o *rootOptions) LoadConfig() (*config.Config, error) {
	return config.LoadWith(o.configPath, config.Overrides{
		DataDir:  o.dataDir,
		Backend:  o.backend,
		LogLevel: o.logLevel,
	})
}

// openSession loads config, logs to stderr and returns a hydrated store.
// A CLI command that cannot read existing tasks stops here, since saving
// afterwards would replace them.
func openSession(cmd *cobra.Command, opts *rootOptions) (*persist.Session, error) {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	sess, err := persist.Open(cmd.Context(), cfg, log)
	if err != nil {
		return nil, err
	}
	if sess.LoadErr != nil {
		sess.Close()
		return nil, fmt.Errorf("load tasks: %w", sess.LoadErr)
	}
	return sess, nil
}

// withSession runs fn against a hydrated session and closes it afterwards.
func withSession(opts *rootOptions, fn func(cmd *cobra.Command, args []string, sess *persist.Session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd, opts)
		if err != nil {
			return err
		}
		defer sess.Close()
		return fn(cmd, args, sess)
	}
}

func notFound(cmd *cobra.Command, id string) {
	fmt.Fprintf(cmd.ErrOrStderr(), "no task with id %s\n", id)
}
