package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pablasso/tasktracker/internal/persist"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write all tasks as JSON",
		Long:  `Write all tasks as pretty-printed JSON to file, or to stdout when no file is given.`,
		Args:  cobra.MaximumNArgs(1),
	}
	cmd.RunE = withSession(opts, func(cmd *cobra.Command, args []string, sess *persist.Session) error {
		out, err := sess.Store.Export()
		if err != nil {
			return fmt.Errorf("failed to export tasks: %w", err)
		}
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		if err := os.WriteFile(args[0], []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", len(sess.Store.List()), args[0])
		return nil
	})
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace all tasks with a JSON file",
		Long: `Replace all tasks with the JSON array in file. Use "-" to read stdin.
Entries without a title are skipped.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = withSession(opts, func(cmd *cobra.Command, args []string, sess *persist.Session) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		if err := sess.Store.ImportTasksFromJSONText(string(data)); err != nil {
			return errors.New(sess.Store.Error())
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d tasks\n", len(sess.Store.List()))
		return nil
	})
	return cmd
}
