package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pablasso/tasktracker/internal/exchange"
	"github.com/pablasso/tasktracker/internal/persist"
	"github.com/pablasso/tasktracker/internal/store"
	"github.com/pablasso/tasktracker/internal/task"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var priority, category, tags string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long:  `Add a task to the top of the list. Words after "add" form the title.`,
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.RunE = withSession(opts, func(cmd *cobra.Command, args []string, sess *persist.Session) error {
		rec := task.Record{"title": strings.Join(args, " ")}
		if cmd.Flags().Changed("priority") {
			rec["priority"] = priority
		}
		if cmd.Flags().Changed("category") {
			rec["category"] = category
		}
		if cmd.Flags().Changed("tags") {
			rec["tags"] = tags
		}

		added, ok := sess.Store.AddTask(rec)
		if !ok {
			return fmt.Errorf("title must not be empty")
		}
		fmt.Fprintln(cmd.OutOrStdout(), added.ID)
		return nil
	})

	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high (default medium)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "comma separated tags")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var filter, search, category, priority, tag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
	}
	cmd.RunE = withSession(opts, func(cmd *cobra.Command, args []string, sess *persist.Session) error {
		f := store.Filter(filter)
		if !isFilter(f) {
			return fmt.Errorf("invalid --filter %q (want all, active or completed)", filter)
		}

		s := sess.Store
		s.SetFilter(f)
		s.SetSearch(search)
		s.SetCategoryFilter(category)
		s.SetPriorityFilter(priority)
		s.SetTagFilter(tag)
		visible := s.Visible()

		if asJSON {
			out, err := exchange.Export(visible)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}

		if len(visible) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDONE\tPRIORITY\tCATEGORY\tTITLE\tTAGS")
		for _, t := range visible {
			done := " "
			if t.Completed {
				done = "x"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				t.ID,
				done,
				t.Priority,
				t.Category,
				t.Title,
				strings.Join(t.Tags, ","),
			)
		}
		return w.Flush()
	})

	cmd.Flags().StringVarP(&filter, "filter", "f", string(store.FilterAll), "all, active or completed")
	cmd.Flags().StringVarP(&search, "search", "s", "", "text to match in title, category or tags")
	cmd.Flags().StringVar(&category, "category", store.AllValues, "only this category")
	cmd.Flags().StringVar(&priority, "priority", store.AllValues, "only this priority")
	cmd.Flags().StringVar(&tag, "tag", "", "only tasks with this tag")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func isFilter(f store.Filter) bool {
	for _, known := range store.Filters {
		if f == known {
			return true
		}
	}
	return false
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task done or not done",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = withSession(opts, func(cmd *cobra.Command, args []string, sess *persist.Session) error {
		if !sess.Store.ToggleTask(args[0]) {
			notFound(cmd, args[0])
		}
		return nil
	})
	return cmd
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
	}
	cmd.RunE = withSession(opts, func(cmd *cobra.Command, args []string, sess *persist.Session) error {
		if !sess.Store.DeleteTask(args[0]) {
			notFound(cmd, args[0])
		}
		return nil
	})
	return cmd
}

func newMoveCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <over-id>",
		Short: "Move a task to another task's position",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = withSession(opts, func(cmd *cobra.Command, args []string, sess *persist.Session) error {
		if sess.Store.ReorderTasks(args[0], args[1]) {
			return nil
		}
		for _, id := range args {
			if _, ok := sess.Store.Find(id); !ok {
				notFound(cmd, id)
			}
		}
		return nil
	})
	return cmd
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var title, priority, category, tags string
	var completed bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Long: `Change fields of a task. Only the flags you pass are applied.
An empty --title deletes the task.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = withSession(opts, func(cmd *cobra.Command, args []string, sess *persist.Session) error {
		var changes task.Changes
		flags := cmd.Flags()
		if flags.Changed("title") {
			changes.Title = task.Ptr(title)
		}
		if flags.Changed("completed") {
			changes.Completed = task.Ptr(completed)
		}
		if flags.Changed("priority") {
			changes.Priority = task.Ptr(string(task.NormalizePriority(priority)))
		}
		if flags.Changed("category") {
			changes.Category = task.Ptr(category)
		}
		if flags.Changed("tags") {
			changes.Tags = task.Ptr(task.ParseTags(tags))
		}
		if changes.IsEmpty() {
			return fmt.Errorf("nothing to change: pass at least one of --title, --priority, --category, --tags or --completed")
		}

		if !sess.Store.UpdateTask(args[0], changes) {
			notFound(cmd, args[0])
		}
		return nil
	})

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "comma separated tags, replacing the current ones")
	cmd.Flags().BoolVar(&completed, "completed", false, "completion state")
	return cmd
}
