// Package timegrid provides stateless conversion between pixel offsets on
// the calendar grid and wall-clock times. All functions are pure; the only
// date they know about is the reference day passed in.
package timegrid

import (
	"math"
	"time"
)

// Default grid geometry.
const (
	DefaultStartHour     = 6
	DefaultEndHour       = 23
	DefaultSnapMinutes   = 30
	DefaultPixelsPerHour = 60.0
	DefaultColumnWidth   = 140.0
)

// Config holds the grid geometry: the visible window, the snap granularity
// and the pixel scale.
type Config struct {
	StartHour     int     // first visible hour, e.g. 6
	EndHour       int     // last visible hour, e.g. 23
	SnapMinutes   int     // snap granularity, e.g. 30
	PixelsPerHour float64 // vertical scale
	ColumnWidth   float64 // day column width in pixels
}

// DefaultConfig returns the standard 06:00-23:00 window with 30-minute
// snapping at 60 pixels per hour.
func DefaultConfig() Config {
	return Config{
		StartHour:     DefaultStartHour,
		EndHour:       DefaultEndHour,
		SnapMinutes:   DefaultSnapMinutes,
		PixelsPerHour: DefaultPixelsPerHour,
		ColumnWidth:   DefaultColumnWidth,
	}
}

// Slot is a snapped wall-clock position within a day.
type Slot struct {
	Hour   int
	Minute int
}

// Minutes returns the slot as minutes since midnight.
func (s Slot) Minutes() int {
	return s.Hour*60 + s.Minute
}

// windowMinutes returns the length of the visible window in minutes.
func (c Config) windowMinutes() int {
	return (c.EndHour - c.StartHour) * 60
}

// snap rounds raw minutes to the nearest multiple of the snap granularity.
func (c Config) snap(rawMinutes float64) int {
	grain := float64(c.SnapMinutes)
	return int(math.Round(rawMinutes/grain) * grain)
}

// SlotFromOffset converts a vertical pixel offset within a day column to a
// snapped time slot. Offsets outside the visible window clamp to its
// boundaries, so the result always lies in [StartHour:00, EndHour:00].
func (c Config) SlotFromOffset(pixelY float64) Slot {
	raw := pixelY * 60.0 / c.PixelsPerHour
	snapped := c.snap(raw)

	if snapped < 0 {
		snapped = 0
	}
	if snapped > c.windowMinutes() {
		snapped = c.windowMinutes()
	}

	total := snapped + c.StartHour*60
	return Slot{Hour: total / 60, Minute: total % 60}
}

// TimeFromOffset resolves a pixel offset to an absolute time on the given
// reference day, in that day's location.
func (c Config) TimeFromOffset(day time.Time, pixelY float64) time.Time {
	slot := c.SlotFromOffset(pixelY)
	return time.Date(day.Year(), day.Month(), day.Day(), slot.Hour, slot.Minute, 0, 0, day.Location())
}

// OffsetFromTime is the inverse mapping: the vertical pixel offset of a
// wall-clock time relative to the window start.
func (c Config) OffsetFromTime(t time.Time) float64 {
	minutes := float64(t.Hour()*60+t.Minute()) - float64(c.StartHour*60)
	return minutes / 60.0 * c.PixelsPerHour
}

// ColumnFromX converts a horizontal pixel offset to a day column index,
// rounding to the nearest column. Negative offsets resolve to column 0.
func (c Config) ColumnFromX(pixelX float64) int {
	col := int(math.Round(pixelX / c.ColumnWidth))
	if col < 0 {
		return 0
	}
	return col
}

// SnapTime rounds an absolute time to the nearest snap boundary on the same
// day, clamped to the visible window.
func (c Config) SnapTime(t time.Time) time.Time {
	raw := float64(t.Hour()*60+t.Minute()) - float64(c.StartHour*60)
	snapped := c.snap(raw)
	if snapped < 0 {
		snapped = 0
	}
	if snapped > c.windowMinutes() {
		snapped = c.windowMinutes()
	}
	total := snapped + c.StartHour*60
	return time.Date(t.Year(), t.Month(), t.Day(), total/60, total%60, 0, 0, t.Location())
}

// VisibleSlots returns every snap boundary in the window, first to last.
// Used by renderers to lay out grid rows.
func (c Config) VisibleSlots() []Slot {
	var slots []Slot
	for m := c.StartHour * 60; m <= c.EndHour*60; m += c.SnapMinutes {
		slots = append(slots, Slot{Hour: m / 60, Minute: m % 60})
	}
	return slots
}
