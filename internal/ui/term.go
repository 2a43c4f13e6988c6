package ui

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/mulino/flowstate/internal/task"
)

// Color definitions for consistent styling across the UI.
var (
	// Work: blue, the calendar's primary accent
	colorWork = color.New(color.FgBlue, color.Bold)

	// School: violet reads as magenta on most terminals
	colorSchool = color.New(color.FgMagenta)

	// Hobbies: orange is closest to yellow in the base palette
	colorHobbies = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Done: green check marks
	colorDone = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// rule draws a horizontal separator sized to the terminal, capped on very
// wide windows.
func rule() string {
	width := termWidth() - 2
	if width > 100 {
		width = 100
	}
	return strings.Repeat("─", width)
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatCategory colors a string by task category.
func formatCategory(c task.Category, s string) string {
	switch c {
	case task.CategoryWork:
		return colorWork.Sprint(s)
	case task.CategorySchool:
		return colorSchool.Sprint(s)
	case task.CategoryHobbies:
		return colorHobbies.Sprint(s)
	default:
		return s
	}
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatDone formats text for completed tasks.
func formatDone(s string) string {
	return colorDone.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
