package timegrid

import (
	"testing"
	"time"
)

func TestSlotFromOffset(t *testing.T) {
	cfg := DefaultConfig() // 6-23, snap 30, 60 px/h

	tests := []struct {
		name   string
		pixelY float64
		want   Slot
	}{
		{name: "zero is window start", pixelY: 0, want: Slot{Hour: 6, Minute: 0}},
		{name: "one hour down", pixelY: 60, want: Slot{Hour: 7, Minute: 0}},
		{name: "half hour down", pixelY: 30, want: Slot{Hour: 6, Minute: 30}},
		{name: "rounds down to nearest snap", pixelY: 40, want: Slot{Hour: 6, Minute: 30}},
		{name: "rounds up to nearest snap", pixelY: 50, want: Slot{Hour: 7, Minute: 0}},
		{name: "midpoint rounds up", pixelY: 15, want: Slot{Hour: 6, Minute: 30}},
		{name: "negative clamps to window start", pixelY: -100, want: Slot{Hour: 6, Minute: 0}},
		{name: "beyond window clamps to end", pixelY: 5000, want: Slot{Hour: 23, Minute: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.SlotFromOffset(tt.pixelY)
			if got != tt.want {
				t.Errorf("SlotFromOffset(%v) = %v, want %v", tt.pixelY, got, tt.want)
			}
		})
	}
}

func TestSlotFromOffsetAlwaysOnSnapBoundary(t *testing.T) {
	cfg := DefaultConfig()
	for y := -50.0; y <= 1200.0; y += 7.3 {
		slot := cfg.SlotFromOffset(y)
		if slot.Minute%cfg.SnapMinutes != 0 {
			t.Fatalf("SlotFromOffset(%v) = %v, minute not a multiple of %d", y, slot, cfg.SnapMinutes)
		}
		if slot.Hour < cfg.StartHour || slot.Minutes() > cfg.EndHour*60 {
			t.Fatalf("SlotFromOffset(%v) = %v, outside visible window", y, slot)
		}
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	// Every snap boundary in the window must survive the round trip exactly.
	for _, slot := range cfg.VisibleSlots() {
		at := time.Date(day.Year(), day.Month(), day.Day(), slot.Hour, slot.Minute, 0, 0, day.Location())
		y := cfg.OffsetFromTime(at)
		back := cfg.TimeFromOffset(day, y)
		if !back.Equal(at) {
			t.Errorf("round trip for %v: offset %v mapped back to %v", at, y, back)
		}
	}
}

func TestOffsetFromTime(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{name: "window start", at: time.Date(2025, 3, 10, 6, 0, 0, 0, time.Local), want: 0},
		{name: "9am", at: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local), want: 180},
		{name: "9:30am", at: time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local), want: 210},
		{name: "before window is negative", at: time.Date(2025, 3, 10, 5, 0, 0, 0, time.Local), want: -60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.OffsetFromTime(tt.at); got != tt.want {
				t.Errorf("OffsetFromTime(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestColumnFromX(t *testing.T) {
	cfg := DefaultConfig() // column width 140

	tests := []struct {
		pixelX float64
		want   int
	}{
		{pixelX: 0, want: 0},
		{pixelX: 69, want: 0},
		{pixelX: 71, want: 1},
		{pixelX: 140, want: 1},
		{pixelX: 420, want: 3},
		{pixelX: -30, want: 0},
	}

	for _, tt := range tests {
		if got := cfg.ColumnFromX(tt.pixelX); got != tt.want {
			t.Errorf("ColumnFromX(%v) = %d, want %d", tt.pixelX, got, tt.want)
		}
	}
}

func TestSnapTime(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{
			name: "already on boundary",
			at:   time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local),
			want: time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local),
		},
		{
			name: "rounds to nearest half hour",
			at:   time.Date(2025, 3, 10, 14, 10, 0, 0, time.Local),
			want: time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local),
		},
		{
			name: "rounds up past midpoint",
			at:   time.Date(2025, 3, 10, 14, 20, 0, 0, time.Local),
			want: time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local),
		},
		{
			name: "clamps below window",
			at:   time.Date(2025, 3, 10, 4, 0, 0, 0, time.Local),
			want: time.Date(2025, 3, 10, 6, 0, 0, 0, time.Local),
		},
		{
			name: "clamps above window",
			at:   time.Date(2025, 3, 10, 23, 45, 0, 0, time.Local),
			want: time.Date(2025, 3, 10, 23, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.SnapTime(tt.at); !got.Equal(tt.want) {
				t.Errorf("SnapTime(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestVisibleSlots(t *testing.T) {
	cfg := DefaultConfig()
	slots := cfg.VisibleSlots()

	wantLen := (cfg.EndHour-cfg.StartHour)*60/cfg.SnapMinutes + 1
	if len(slots) != wantLen {
		t.Fatalf("VisibleSlots() len = %d, want %d", len(slots), wantLen)
	}
	if slots[0] != (Slot{Hour: 6, Minute: 0}) {
		t.Errorf("VisibleSlots()[0] = %v, want 06:00", slots[0])
	}
	if last := slots[len(slots)-1]; last != (Slot{Hour: 23, Minute: 0}) {
		t.Errorf("VisibleSlots() last = %v, want 23:00", last)
	}
}
