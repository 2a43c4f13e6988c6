// Package ui implements the command line interface.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mulino/flowstate/internal/config"
	"github.com/mulino/flowstate/internal/store"
	"github.com/mulino/flowstate/internal/tags"
	"github.com/mulino/flowstate/internal/task"
	"github.com/mulino/flowstate/internal/timegrid"
	"github.com/mulino/flowstate/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  *store.Store
	tags   *tags.Manager
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application around the task store and tag manager.
func NewApp(st *store.Store, tagMgr *tags.Manager, cfg *config.Config) *App {
	a := &App{store: st, tags: tagMgr, config: cfg}

	a.root = &cobra.Command{
		Use:   "flowstate",
		Short: "A calendar for planning your week in focused blocks",
		Long: `Flowstate is a weekly planner built around a snapping time grid.

Running it without a subcommand opens the interactive calendar.
Subcommands operate on the same schedule from the command line.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.store, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.resizeCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.tagsCmd())
	a.root.AddCommand(a.templatesCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("flowstate %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// load pulls the schedule from the backend before a command touches it.
func (a *App) load(ctx context.Context) error {
	if err := a.store.Load(ctx); err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}
	return nil
}

// flush waits for pending background writes so the process does not exit
// with work still in flight.
func (a *App) flush() {
	a.store.Wait()
}

// grid returns the configured snapping grid.
func (a *App) grid() timegrid.Config {
	return timegrid.Config{
		StartHour:     a.config.Grid.StartHour,
		EndHour:       a.config.Grid.EndHour,
		SnapMinutes:   a.config.Grid.SnapMinutes,
		PixelsPerHour: float64(a.config.Grid.PixelsPerHour),
		ColumnWidth:   timegrid.DefaultColumnWidth,
	}
}

// resolveTask finds a task by id prefix or exact title. Uuids are
// unwieldy on a command line, so a unique prefix is enough.
func (a *App) resolveTask(ref string) (*task.Task, error) {
	if t, ok := a.store.Get(ref); ok {
		return t, nil
	}

	var matches []*task.Task
	for _, t := range a.store.Tasks() {
		if strings.HasPrefix(t.ID, ref) || strings.EqualFold(t.Title, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no task matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%q is ambiguous, %d tasks match", ref, len(matches))
	}
}
