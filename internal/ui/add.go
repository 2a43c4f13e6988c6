package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mulino/flowstate/internal/dateutil"
	"github.com/mulino/flowstate/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date        string
		at          string
		duration    int
		category    string
		description string
		tagList     string
		colorHex    string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task to your schedule. The start time snaps to the grid.

Example:
  flowstate add "Write documentation" --date=tomorrow --at=09:10 --duration=90 --category=work`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := a.load(ctx); err != nil {
				return err
			}

			day, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return err
			}
			start, err := dateutil.At(day, at)
			if err != nil {
				return err
			}
			start = a.grid().SnapTime(start)

			cat, err := task.ParseCategory(category)
			if err != nil {
				return err
			}

			draft, err := task.New(args[0], start, duration, cat)
			if err != nil {
				return err
			}
			draft.Description = description
			if colorHex != "" {
				draft.Color = colorHex
			}
			if tagList != "" {
				for _, name := range strings.Split(tagList, ",") {
					if name = strings.TrimSpace(name); name != "" {
						draft.TagNames = append(draft.TagNames, name)
					}
				}
			}

			created, err := a.store.Create(ctx, draft)
			if err != nil {
				return fmt.Errorf("creating task: %w", err)
			}
			a.flush()

			fmt.Printf("Created %s at %s (%s)\n",
				created.Title,
				start.Format("Mon 2006-01-02 15:04"),
				formatMinutes(created.DurationMinutes),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow, a weekday; default today)")
	cmd.Flags().StringVar(&at, "at", "", "Start time (HH:MM, required)")
	cmd.Flags().IntVar(&duration, "duration", 60, "Duration in minutes")
	cmd.Flags().StringVar(&category, "category", "work", "Category: work, school or hobbies")
	cmd.Flags().StringVar(&description, "description", "", "Longer description")
	cmd.Flags().StringVar(&tagList, "tags", "", "Comma-separated tag names")
	cmd.Flags().StringVar(&colorHex, "color", "", "Hex color (default follows the category)")

	_ = cmd.MarkFlagRequired("at")

	return cmd
}
