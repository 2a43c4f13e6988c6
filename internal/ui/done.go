package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) doneCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done [task]",
		Short: "Mark a task as completed",
		Long: `Mark a task as completed, or un-complete it with --undo.

Example:
  flowstate done 3f2a
  flowstate done "Morning run" --undo`,
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

			if err := a.store.SetCompleted(ctx, t.ID, !undo); err != nil {
				return fmt.Errorf("updating task: %w", err)
			}
			a.flush()

			if undo {
				fmt.Printf("Reopened %s\n", t.Title)
			} else {
				fmt.Printf("%s %s\n", formatDone("✓"), t.Title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark as not completed instead")

	return cmd
}
