// Package tui provides the interactive weekly calendar.
package tui

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mulino/flowstate/internal/config"
	"github.com/mulino/flowstate/internal/dateutil"
	"github.com/mulino/flowstate/internal/drag"
	"github.com/mulino/flowstate/internal/filter"
	"github.com/mulino/flowstate/internal/store"
	"github.com/mulino/flowstate/internal/task"
	"github.com/mulino/flowstate/internal/timegrid"
	"github.com/mulino/flowstate/internal/tui/commands"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove        // A task or template is being dragged by the cursor
	ModePrompt      // Quick-add prompt is open
	ModeConfirm     // Waiting for delete confirmation
)

// Position is a cursor position in the grid.
type Position struct {
	Day int // 0=Monday, 6=Sunday
	Row int // Index into the visible slots
}

// Model is the main TUI model.
type Model struct {
	store  *store.Store
	config *config.Config
	grid   timegrid.Config
	drag   *drag.Controller

	styles *Styles

	weekStart time.Time // Monday of the displayed week
	cursor    Position
	mode      Mode
	filt      filter.Filter
	loading   bool

	confirmTask *task.Task // Pending delete

	prompt textinput.Model

	width  int
	height int
	scroll int // First visible row

	statusMsg  string
	statusTime time.Time
	err        error

	now func() time.Time
}

// New creates a new TUI model over the task store.
func New(st *store.Store, cfg *config.Config) *Model {
	prompt := textinput.New()
	prompt.Placeholder = `Deep work @14:00 +90 #focus`
	prompt.CharLimit = 256
	prompt.Width = 48

	grid := timegrid.Config{
		StartHour:     cfg.Grid.StartHour,
		EndHour:       cfg.Grid.EndHour,
		SnapMinutes:   cfg.Grid.SnapMinutes,
		PixelsPerHour: float64(cfg.Grid.PixelsPerHour),
		ColumnWidth:   timegrid.DefaultColumnWidth,
	}

	monday, _ := dateutil.WeekRange(time.Now())

	return &Model{
		store:     st,
		config:    cfg,
		grid:      grid,
		drag:      drag.NewController(st),
		styles:    NewStyles(ResolvePalette(cfg.UI.Theme)),
		weekStart: monday,
		cursor:    Position{Day: weekdayIndex(time.Now()), Row: 0},
		mode:      ModeNormal,
		filt:      filter.All,
		loading:   true,
		prompt:    prompt,
		now:       time.Now,
	}
}

// Init starts the initial schedule load.
func (m Model) Init() tea.Cmd {
	return commands.LoadSchedule(m.store)
}

// Run starts the TUI.
func Run(st *store.Store, cfg *config.Config) error {
	return RunWithDebug(st, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(st *store.Store, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	p := tea.NewProgram(New(st, cfg), tea.WithAltScreen())
	_, err := p.Run()

	// Drain background writes before the process exits.
	st.Wait()
	return err
}

// slots returns the visible slot rows.
func (m Model) slots() []timegrid.Slot {
	return m.grid.VisibleSlots()
}

// rowMinutes is how many minutes one grid row spans.
func (m Model) rowMinutes() int {
	return m.grid.SnapMinutes
}

// dayDate returns the date of a day column in the displayed week.
func (m Model) dayDate(day int) time.Time {
	return m.weekStart.AddDate(0, 0, day)
}

// timeAt resolves a cursor position to its slot's wall-clock time.
func (m Model) timeAt(p Position) time.Time {
	slots := m.slots()
	if len(slots) == 0 {
		return m.dayDate(p.Day)
	}
	row := clampInt(p.Row, 0, len(slots)-1)
	d := m.dayDate(p.Day)
	return time.Date(d.Year(), d.Month(), d.Day(), slots[row].Hour, slots[row].Minute, 0, 0, d.Location())
}

// pointAt maps a cursor position to grid pixels for the drag controller.
// One row step or one column step always clears the activation distance.
func (m Model) pointAt(p Position) drag.Point {
	rowHeight := m.grid.PixelsPerHour * float64(m.rowMinutes()) / 60.0
	return drag.Point{
		X: (float64(p.Day) + 0.5) * m.grid.ColumnWidth,
		Y: float64(p.Row) * rowHeight,
	}
}

// dayTasks returns the filtered tasks of one day column, earliest first.
func (m Model) dayTasks(day int) []*task.Task {
	tasks := m.filt.Apply(m.store.TasksForDay(m.dayDate(day)))
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Start.Before(tasks[j].Start)
	})
	return tasks
}

// taskAt returns the task covering a cursor position, if any.
func (m Model) taskAt(p Position) *task.Task {
	slotTime := m.timeAt(p)
	for _, t := range m.dayTasks(p.Day) {
		if !t.Start.After(slotTime) && t.End().After(slotTime) {
			return t
		}
	}
	return nil
}

// setStatus shows a transient message in the footer.
func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTime = m.now().Add(3 * time.Second)
}

// weekdayIndex maps a time to its Monday-based column index.
func weekdayIndex(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
