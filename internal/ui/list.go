package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskpilot/internal/sorter"
	"github.com/javiermolinar/taskpilot/internal/task"
)

func (a *App) listCmd() *cobra.Command {
	var (
		by    string
		desc  bool
		group bool
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List pending tasks ordered by the configured key (deadline by default).

Keys: deadline, start, priority (weight), label (type), title.
Ties are broken by task id so the order is stable.`,
		Example: `  taskpilot list
  taskpilot list --by=priority --desc
  taskpilot list --by=label --group --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			key := a.config.SortKey()
			if by != "" {
				k, err := sorter.ParseKey(by)
				if err != nil {
					return err
				}
				key = k
			}
			order := a.config.SortOrder()
			if desc {
				order = sorter.Descending
			}

			var view []*task.Task
			for t := range a.store.All() {
				if all || t.IsPending() {
					view = append(view, t)
				}
			}

			out := cmd.OutOrStdout()
			opts := RowOpts{Now: a.now()}
			if group {
				groups := sorter.GroupBy(view, key)
				if order == sorter.Descending {
					for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
						groups[i], groups[j] = groups[j], groups[i]
					}
				}
				if len(groups) == 0 {
					fmt.Fprintln(out, "No tasks found.")
					return nil
				}
				PrintGroups(out, groups, opts)
				return nil
			}

			fmt.Fprintln(out, formatHeader(fmt.Sprintf("Tasks by %s (%s):", key, order)))
			PrintTasks(out, sorter.SortBy(view, key, order), opts, "No tasks found.")
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "Sort key (default from config)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().BoolVar(&group, "group", false, "Group tasks sharing the sort key")
	cmd.Flags().BoolVar(&all, "all", false, "Include completed and missed tasks")

	return cmd
}
