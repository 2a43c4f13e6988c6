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

func (a *App) templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List and stamp task templates",
	}

	cmd.AddCommand(a.templatesListCmd())
	cmd.AddCommand(a.templatesStampCmd())

	return cmd
}

func (a *App) templatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Run: func(_ *cobra.Command, _ []string) {
			for _, tpl := range task.BuiltinTemplates() {
				fmt.Printf("  %s %s (%s)\n",
					formatCategory(tpl.Category, fmt.Sprintf("%-8s", tpl.Category)),
					tpl.Title,
					formatMinutes(tpl.DurationMinutes),
				)
			}
		},
	}
}

func (a *App) templatesStampCmd() *cobra.Command {
	var (
		date string
		at   string
	)

	cmd := &cobra.Command{
		Use:   "stamp [category]",
		Short: "Create a task from a template",
		Long: `Create a task from the builtin template for a category.

Example:
  flowstate templates stamp work --date=tomorrow --at=09:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := a.load(ctx); err != nil {
				return err
			}

			tpl, err := findTemplate(args[0])
			if err != nil {
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

			created, err := a.store.Create(ctx, tpl.Instantiate(start))
			if err != nil {
				return fmt.Errorf("creating task: %w", err)
			}
			a.flush()

			fmt.Printf("Stamped %s at %s\n", created.Title, start.Format("Mon 2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (default today)")
	cmd.Flags().StringVar(&at, "at", "", "Start time (HH:MM, required)")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func findTemplate(name string) (task.Template, error) {
	for _, tpl := range task.BuiltinTemplates() {
		if strings.EqualFold(string(tpl.Category), name) {
			return tpl, nil
		}
	}
	return task.Template{}, fmt.Errorf("no template for %q", name)
}
