package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [task]",
		Aliases: []string{"remove"},
		Short:   "Delete a task",
		Long: `Delete a task from the schedule.

Example:
  flowstate rm 3f2a`,
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

			if err := a.store.Delete(ctx, t.ID); err != nil {
				return fmt.Errorf("deleting task: %w", err)
			}
			a.flush()

			fmt.Printf("Deleted %s\n", t.Title)
			return nil
		},
	}
}
