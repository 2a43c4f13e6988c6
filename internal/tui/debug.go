package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mulino/flowstate/internal/diag"
)

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "flowstate-debug.log"

var (
	debugLog  *diag.Logger
	debugFile *os.File
)

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = nil
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugFile = f
	debugLog = diag.New(f)
	debugLog.Event("DEBUG_START", map[string]any{"log_file": DebugLogPath})
	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugFile != nil {
		debugLog.Event("DEBUG_END", nil)
		_ = debugFile.Close()
		debugFile = nil
		debugLog = nil
	}
}

// LogKeyPress records a keystroke. A nil logger is a no-op.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.Event("KEY", map[string]any{"key": msg.String()})
}

// LogEvent records an arbitrary TUI event.
func LogEvent(event string, data map[string]any) {
	debugLog.Event(event, data)
}
