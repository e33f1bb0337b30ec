package timeline

import (
	"testing"
	"time"
)

func TestTimeToPixel(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name   string
		hour   int
		minute int
		want   float64
	}{
		{"midnight", 0, 0, 0},
		{"nine am", 9, 0, 1080},
		{"quarter past nine", 9, 15, 1110},
		{"last minute of day", 23, 59, 2878},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.TimeToPixel(tt.hour, tt.minute); got != tt.want {
				t.Errorf("TimeToPixel(%d, %d) = %v, want %v", tt.hour, tt.minute, got, tt.want)
			}
		})
	}
}

func TestPixelToTimeRoundTrip(t *testing.T) {
	cfg := DefaultConfig()

	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			px := cfg.TimeToPixel(hour, minute)
			gotHour, gotMinute := cfg.PixelToTime(px)
			if gotHour != hour || gotMinute != minute {
				t.Fatalf("round trip %02d:%02d -> %v px -> %02d:%02d", hour, minute, px, gotHour, gotMinute)
			}
		}
	}
}

func TestPixelToTimeNormalizesMinute60(t *testing.T) {
	cfg := DefaultConfig()

	// 119.9 px at 2 px/min is 59.95 minutes; the minute rounds to 60
	// and must carry into the hour.
	hour, minute := cfg.PixelToTime(119.9)
	if hour != 1 || minute != 0 {
		t.Errorf("PixelToTime(119.9) = %02d:%02d, want 01:00", hour, minute)
	}
}

func TestPixelToTimeBottomOfColumn(t *testing.T) {
	cfg := DefaultConfig()

	hour, minute := cfg.PixelToTime(cfg.DayHeight())
	if hour != 23 || minute != 59 {
		t.Errorf("PixelToTime(day height) = %02d:%02d, want 23:59", hour, minute)
	}
}

func TestDayHeight(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.DayHeight(); got != 2880 {
		t.Errorf("DayHeight() = %v, want 2880", got)
	}
}

func TestSnapMinutes(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		raw  float64
		want int
	}{
		{0, 15},   // never below one step
		{7, 15},   // rounds up to nearest step
		{22, 15},  // rounds down
		{23, 30},  // rounds up
		{60, 60},  // exact
		{97, 90},  // nearest multiple
		{98, 105}, // nearest multiple
	}

	for _, tt := range tests {
		if got := cfg.SnapMinutes(tt.raw); got != tt.want {
			t.Errorf("SnapMinutes(%v) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestDayBoundaries(t *testing.T) {
	noon := time.Date(2024, 3, 15, 12, 34, 56, 0, time.Local)

	if got := StartOfDay(noon); got.Hour() != 0 || got.Minute() != 0 || got.Day() != 15 {
		t.Errorf("StartOfDay = %v", got)
	}
	if got := EndOfDay(noon); got.Day() != 16 || got.Hour() != 0 {
		t.Errorf("EndOfDay = %v", got)
	}
	if !SameDay(noon, StartOfDay(noon)) {
		t.Error("SameDay should hold for a time and its own midnight")
	}
	if SameDay(noon, noon.AddDate(0, 0, 1)) {
		t.Error("SameDay should not hold across days")
	}
}
