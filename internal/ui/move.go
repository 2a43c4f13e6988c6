package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mulino/flowstate/internal/dateutil"
	"github.com/mulino/flowstate/internal/task"
)

func (a *App) moveCmd() *cobra.Command {
	var (
		date     string
		at       string
		category string
	)

	cmd := &cobra.Command{
		Use:   "move [task]",
		Short: "Move a task to a new time",
		Long: `Move a task to a new start time, keeping its duration. The target
snaps to the grid. Tasks are referenced by id prefix or exact title.

Example:
  flowstate move 3f2a --date=friday --at=14:00
  flowstate move "Write documentation" --at=09:00 --category=school`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := a.load(ctx); err != nil {
				return err
			}

			t, err := a.resolveTask(args[0])
			if err != nil {
				return err
			}

			day := dateutil.TruncateToDay(t.Start)
			if date != "" {
				day, err = dateutil.ParseRelativeDate(date, time.Now())
				if err != nil {
					return err
				}
			}
			clock := at
			if clock == "" {
				clock = t.Start.Format("15:04")
			}
			start, err := dateutil.At(day, clock)
			if err != nil {
				return err
			}
			start = a.grid().SnapTime(start)

			var cat *task.Category
			if category != "" {
				parsed, err := task.ParseCategory(category)
				if err != nil {
					return err
				}
				cat = &parsed
			}

			if err := a.store.Move(ctx, t.ID, start, cat); err != nil {
				return fmt.Errorf("moving task: %w", err)
			}
			a.flush()

			fmt.Printf("Moved %s to %s\n", t.Title, start.Format("Mon 2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Target date (default: keep the current day)")
	cmd.Flags().StringVar(&at, "at", "", "Target time (HH:MM, default: keep the current time)")
	cmd.Flags().StringVar(&category, "category", "", "Also switch category")

	return cmd
}
