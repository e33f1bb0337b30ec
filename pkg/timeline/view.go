package timeline

import "time"

// ViewMode selects how many day columns the timeline renders
type ViewMode string

const (
	ViewDay        ViewMode = "day"
	ViewWeek       ViewMode = "week"
	ViewNext4Days  ViewMode = "next_4_days"
	ViewAround5Day ViewMode = "around_5_days"
)

// ViewModes lists all modes in display order
var ViewModes = []ViewMode{ViewDay, ViewWeek, ViewNext4Days, ViewAround5Day}

// ViewDates returns the ordered calendar days rendered as columns, left
// to right, for the given mode and anchor date. Pure function of its
// inputs; every returned day is normalized to midnight.
func ViewDates(mode ViewMode, anchor time.Time) []time.Time {
	anchor = StartOfDay(anchor)

	switch mode {
	case ViewWeek:
		// Monday-starting week containing the anchor
		offset := (int(anchor.Weekday()) + 6) % 7
		monday := anchor.AddDate(0, 0, -offset)
		days := make([]time.Time, 7)
		for i := range days {
			days[i] = monday.AddDate(0, 0, i)
		}
		return days
	case ViewNext4Days:
		days := make([]time.Time, 4)
		for i := range days {
			days[i] = anchor.AddDate(0, 0, i)
		}
		return days
	case ViewAround5Day:
		days := make([]time.Time, 5)
		for i := range days {
			days[i] = anchor.AddDate(0, 0, i-2)
		}
		return days
	default:
		return []time.Time{anchor}
	}
}
