package ui

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mulino/flowstate/internal/dateutil"
	"github.com/mulino/flowstate/internal/filter"
	"github.com/mulino/flowstate/internal/task"
)

func (a *App) weekCmd() *cobra.Command {
	var (
		date    string
		label   string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the week's schedule",
		Long: `Display the week containing a date, Monday through Sunday, with the
scheduled minutes per category underneath.`,
		Example: `  flowstate week
  flowstate week --date=next-week
  flowstate week --filter=hobbies`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			ctx := context.Background()
			if err := a.load(ctx); err != nil {
				return err
			}

			day, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return err
			}
			monday, sunday := dateutil.WeekRange(day)

			header := fmt.Sprintf("WEEK: %s - %s", monday.Format("Mon Jan 2"), sunday.Format("Mon Jan 2, 2006"))
			fmt.Printf("\n  %s\n", formatHeader(header))
			fmt.Println(rule())

			var week []*task.Task
			for d := 0; d < 7; d++ {
				current := monday.AddDate(0, 0, d)
				tasks := a.store.TasksForDay(current)
				if label != "" {
					tasks = filter.Filter(label).Apply(tasks)
				}
				if len(tasks) == 0 {
					continue
				}
				sort.SliceStable(tasks, func(i, j int) bool {
					return tasks[i].Start.Before(tasks[j].Start)
				})

				fmt.Printf("  %s\n", formatHeader(current.Format("Mon Jan 2")))
				for _, t := range tasks {
					fmt.Println(formatTaskLine(t))
				}
				fmt.Println()
				week = append(week, tasks...)
			}

			if len(week) == 0 {
				fmt.Println("  Nothing scheduled this week.")
				return nil
			}

			fmt.Println(rule())
			stats := CollectStats(week)
			for _, c := range task.Categories() {
				if stats.Minutes[c] == 0 {
					continue
				}
				fmt.Printf("  %s %s\n",
					formatCategory(c, fmt.Sprintf("%-8s", c)),
					formatMinutes(stats.Minutes[c]),
				)
			}
			fmt.Printf("  %s %s in %d blocks, %d done\n\n",
				formatHeader("total   "),
				formatMinutes(stats.TotalMinutes()), stats.TotalBlocks, stats.DoneBlocks)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date inside the week (default today)")
	cmd.Flags().StringVar(&label, "filter", "", "Category or tag name")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}
