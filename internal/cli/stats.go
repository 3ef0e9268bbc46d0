package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablasso/tasktracker/internal/persist"
	"github.com/pablasso/tasktracker/internal/version"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withSession(opts, func(cmd *cobra.Command, args []string, sess *persist.Session) error {
		st := sess.Store.Stats()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total:     %d\n", st.Total)
		fmt.Fprintf(out, "Active:    %d\n", st.Active)
		fmt.Fprintf(out, "Completed: %d (%d%%)\n", st.Completed, st.Percent)
		if cats := sess.Store.Categories(); len(cats) > 0 {
			fmt.Fprintf(out, "Categories: %v\n", cats)
		}
		if tags := sess.Store.Tags(); len(tags) > 0 {
			fmt.Fprintf(out, "Tags: %v\n", tags)
		}
		return nil
	})
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tasktracker %s (commit %s, built %s)\n",
				version.Version, version.CommitSHA, version.BuildDate)
		},
	}
}
