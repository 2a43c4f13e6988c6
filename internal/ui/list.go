package ui

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mulino/flowstate/internal/dateutil"
	"github.com/mulino/flowstate/internal/filter"
)

func (a *App) listCmd() *cobra.Command {
	var (
		date  string
		label string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks for a day",
		Long: `List the tasks scheduled on a day, earliest first.

The --filter flag narrows the list to a category or a tag name.`,
		Example: `  flowstate list
  flowstate list --date=tomorrow
  flowstate list --date=2025-03-14 --filter=school`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			if err := a.load(ctx); err != nil {
				return err
			}

			day, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return err
			}

			tasks := a.store.TasksForDay(day)
			if label != "" {
				tasks = filter.Filter(label).Apply(tasks)
			}
			sort.SliceStable(tasks, func(i, j int) bool {
				return tasks[i].Start.Before(tasks[j].Start)
			})

			if len(tasks) == 0 {
				fmt.Println("Nothing scheduled.")
				return nil
			}

			fmt.Println(formatDayHeader(day))
			for _, t := range tasks {
				fmt.Println(formatTaskLine(t))
			}

			stats := CollectStats(tasks)
			fmt.Printf("\n%s scheduled in %d blocks, %d done\n",
				formatMinutes(stats.TotalMinutes()), stats.TotalBlocks, stats.DoneBlocks)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD or a keyword, default today)")
	cmd.Flags().StringVar(&label, "filter", "", "Category or tag name")

	return cmd
}
