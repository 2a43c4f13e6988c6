package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) resizeCmd() *cobra.Command {
	var duration int

	cmd := &cobra.Command{
		Use:   "resize [task]",
		Short: "Change a task's duration",
		Long: `Change how long a task runs. The start time stays put.

Example:
  flowstate resize 3f2a --duration=90`,
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

			if err := a.store.Resize(ctx, t.ID, duration); err != nil {
				return fmt.Errorf("resizing task: %w", err)
			}
			a.flush()

			fmt.Printf("%s now runs %s from %s\n",
				t.Title, formatMinutes(duration), t.Start.Format("15:04"))
			return nil
		},
	}

	cmd.Flags().IntVar(&duration, "duration", 0, "New duration in minutes (required)")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}
