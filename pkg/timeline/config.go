package timeline

import "time"

// Defaults matching the rendered grid: 2 px per minute, 15 minute snap
// step, 6 px horizontal shift per overlap lane.
const (
	DefaultPixelsPerMinute = 2.0
	DefaultStepMinutes     = 15
	DefaultLaneOffsetPx    = 6.0

	MinutesPerDay = 24 * 60
)

// Config holds the fixed layout constants for a day column. It is
// supplied once at initialization and never changes at runtime.
type Config struct {
	PixelsPerMinute float64 // vertical density
	StepMinutes     int     // minimum time granularity for snapping
	LaneOffsetPx    float64 // horizontal shift per overlap lane
}

// DefaultConfig returns the standard grid configuration
func DefaultConfig() Config {
	return Config{
		PixelsPerMinute: DefaultPixelsPerMinute,
		StepMinutes:     DefaultStepMinutes,
		LaneOffsetPx:    DefaultLaneOffsetPx,
	}
}

// DayHeight is the pixel height of a full day column. Constant for all
// days; DST anomalies are not modeled.
func (c Config) DayHeight() float64 {
	return MinutesPerDay * c.PixelsPerMinute
}

// Step returns the snap step as a duration
func (c Config) Step() time.Duration {
	return time.Duration(c.StepMinutes) * time.Minute
}

// StepHeight is the pixel height of one snap step, the minimum visual
// height of any item.
func (c Config) StepHeight() float64 {
	return float64(c.StepMinutes) * c.PixelsPerMinute
}
