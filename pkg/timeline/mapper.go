package timeline

import (
	"math"
	"time"
)

// TimeToPixel converts a wall-clock time of day to a vertical offset in
// the day column.
func (c Config) TimeToPixel(hour, minute int) float64 {
	return float64(hour*60+minute) * c.PixelsPerMinute
}

// PixelToTime converts a vertical offset back to a wall-clock time of
// day. Rounding the minute component can produce minute=60, which is
// carried into the hour here so callers always get a valid clock value.
// An offset at the very bottom of the column would carry into hour 24;
// that is clamped to 23:59 so the result stays inside the day.
func (c Config) PixelToTime(pixels float64) (hour, minute int) {
	totalMinutes := pixels / c.PixelsPerMinute
	hour = int(math.Floor(totalMinutes / 60))
	minute = int(math.Round(math.Mod(totalMinutes, 60)))
	if minute == 60 {
		hour++
		minute = 0
	}
	if hour >= 24 {
		hour, minute = 23, 59
	}
	return hour, minute
}

// ClampToColumn limits a pixel offset to the day column bounds
func (c Config) ClampToColumn(pixels float64) float64 {
	return math.Max(0, math.Min(c.DayHeight(), pixels))
}

// SnapMinutes rounds a raw minute count to the nearest multiple of the
// snap step, never below one step.
func (c Config) SnapMinutes(rawMinutes float64) int {
	snapped := int(math.Round(rawMinutes/float64(c.StepMinutes))) * c.StepMinutes
	if snapped < c.StepMinutes {
		snapped = c.StepMinutes
	}
	return snapped
}

// AtClock returns the given day with its time-of-day set to hour:minute
func AtClock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// StartOfDay truncates a time to midnight in its location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the next midnight after t's day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// SameDay reports whether two times fall on the same calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
