package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) tagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tags",
	}

	cmd.AddCommand(a.tagsListCmd())
	cmd.AddCommand(a.tagsAddCmd())
	cmd.AddCommand(a.tagsDescribeCmd())
	cmd.AddCommand(a.tagsRemoveCmd())

	return cmd
}

func (a *App) tagsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tags",
		RunE: func(_ *cobra.Command, _ []string) error {
			list, err := a.tags.List(context.Background())
			if err != nil {
				return fmt.Errorf("listing tags: %w", err)
			}
			if len(list) == 0 {
				fmt.Println("No tags yet.")
				return nil
			}
			for _, tag := range list {
				if tag.Description != "" {
					fmt.Printf("  #%s %s\n", tag.Name, formatMuted(tag.Description))
				} else {
					fmt.Printf("  #%s\n", tag.Name)
				}
			}
			return nil
		},
	}
}

func (a *App) tagsAddCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tag, err := a.tags.Create(context.Background(), args[0], description)
			if err != nil {
				return fmt.Errorf("creating tag: %w", err)
			}
			fmt.Printf("Created #%s\n", tag.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "What the tag is for")

	return cmd
}

func (a *App) tagsDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [name] [description]",
		Short: "Set a tag's description",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.tags.UpdateDescription(context.Background(), args[0], args[1]); err != nil {
				return fmt.Errorf("updating tag: %w", err)
			}
			fmt.Printf("Updated #%s\n", args[0])
			return nil
		},
	}
}

func (a *App) tagsRemoveCmd() *cobra.Command {
	var cascade bool

	cmd := &cobra.Command{
		Use:   "rm [name]",
		Short: "Delete a tag",
		Long: `Delete a tag. With --cascade every task carrying the tag is deleted
as well; without it the tasks keep the now-orphaned tag name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			if !cascade {
				if err := a.tags.Delete(ctx, args[0]); err != nil {
					return fmt.Errorf("deleting tag: %w", err)
				}
				fmt.Printf("Deleted #%s\n", args[0])
				return nil
			}

			if err := a.load(ctx); err != nil {
				return err
			}
			count, err := a.tags.DeleteCascade(ctx, args[0])
			if err != nil {
				return fmt.Errorf("deleting tag: %w", err)
			}
			a.flush()
			fmt.Printf("Deleted #%s and %d tasks\n", args[0], count)
			return nil
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "Also delete tasks carrying the tag")

	return cmd
}
