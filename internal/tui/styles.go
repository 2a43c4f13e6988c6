package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/mulino/flowstate/internal/task"
)

// Default column width - recalculated from the terminal width.
const defaultColWidth = 16

// Palette holds the base colors for one theme.
type Palette struct {
	Bg        string
	Fg        string
	FgMuted   string
	Accent    string
	Cursor    string
	Done      string
	GhostBg   string
	StatusBg  string
	Completed string
}

var darkPalette = Palette{
	Bg:        "#1e1e2e",
	Fg:        "#cdd6f4",
	FgMuted:   "#6c7086",
	Accent:    "#89b4fa",
	Cursor:    "#f5e0dc",
	Done:      "#a6e3a1",
	GhostBg:   "#45475a",
	StatusBg:  "#313244",
	Completed: "#585b70",
}

var lightPalette = Palette{
	Bg:        "#eff1f5",
	Fg:        "#4c4f69",
	FgMuted:   "#9ca0b0",
	Accent:    "#1e66f5",
	Cursor:    "#dc8a78",
	Done:      "#40a02b",
	GhostBg:   "#ccd0da",
	StatusBg:  "#dce0e8",
	Completed: "#acb0be",
}

// ResolvePalette picks a palette for the configured theme name. "auto"
// follows the terminal background.
func ResolvePalette(theme string) Palette {
	switch theme {
	case "dark":
		return darkPalette
	case "light":
		return lightPalette
	default:
		if termenv.HasDarkBackground() {
			return darkPalette
		}
		return lightPalette
	}
}

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	palette Palette

	TitleStyle     lipgloss.Style
	DayHeader      lipgloss.Style
	DayHeaderToday lipgloss.Style
	TimeColumn     lipgloss.Style

	EmptyCell  lipgloss.Style
	CursorCell lipgloss.Style
	GhostCell  lipgloss.Style

	StatusBar  lipgloss.Style
	StatusText lipgloss.Style
	HelpText   lipgloss.Style
	ErrorText  lipgloss.Style

	PromptBox lipgloss.Style

	// Per-category task cell styles, keyed by category
	taskStyles     map[task.Category]lipgloss.Style
	taskDoneStyles map[task.Category]lipgloss.Style
}

// NewStyles derives the style set for a palette.
func NewStyles(p Palette) *Styles {
	s := &Styles{
		palette: p,

		TitleStyle:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent)),
		DayHeader:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Fg)).Align(lipgloss.Center),
		DayHeaderToday: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent)).Underline(true).Align(lipgloss.Center),
		TimeColumn:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.FgMuted)).Align(lipgloss.Right),

		EmptyCell:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.FgMuted)),
		CursorCell: lipgloss.NewStyle().Background(lipgloss.Color(p.Cursor)).Foreground(lipgloss.Color(p.Bg)).Bold(true),
		GhostCell:  lipgloss.NewStyle().Background(lipgloss.Color(p.GhostBg)).Foreground(lipgloss.Color(p.Fg)).Italic(true),

		StatusBar:  lipgloss.NewStyle().Background(lipgloss.Color(p.StatusBg)).Foreground(lipgloss.Color(p.Fg)),
		StatusText: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Done)),
		HelpText:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.FgMuted)),
		ErrorText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")),

		PromptBox: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.Accent)).Padding(0, 1),

		taskStyles:     map[task.Category]lipgloss.Style{},
		taskDoneStyles: map[task.Category]lipgloss.Style{},
	}

	for _, c := range task.Categories() {
		bg := darkenHex(c.DefaultColor(), 0.45)
		s.taskStyles[c] = lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color(p.Fg)).
			Bold(true)
		s.taskDoneStyles[c] = lipgloss.NewStyle().
			Background(lipgloss.Color(darkenHex(bg, 0.4))).
			Foreground(lipgloss.Color(p.Completed)).
			Strikethrough(true)
	}

	return s
}

// TaskStyle returns the cell style for a task, honoring a custom color.
func (s *Styles) TaskStyle(t *task.Task) lipgloss.Style {
	if t.Completed {
		if st, ok := s.taskDoneStyles[t.Category]; ok && t.Color == t.Category.DefaultColor() {
			return st
		}
		return lipgloss.NewStyle().
			Background(lipgloss.Color(darkenHex(t.Color, 0.7))).
			Foreground(lipgloss.Color(s.palette.Completed)).
			Strikethrough(true)
	}
	if st, ok := s.taskStyles[t.Category]; ok && (t.Color == "" || t.Color == t.Category.DefaultColor()) {
		return st
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(darkenHex(t.Color, 0.45))).
		Foreground(lipgloss.Color(s.palette.Fg)).
		Bold(true)
}

// darkenHex blends a hex color toward black in Lab space so task
// backgrounds stay readable behind light text.
func darkenHex(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	black := colorful.Color{}
	return c.BlendLab(black, amount).Clamped().Hex()
}
