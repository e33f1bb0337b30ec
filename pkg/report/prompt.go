package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/borgmon/timestack/pkg/models"
	"github.com/borgmon/timestack/pkg/timeline"
)

// Period selects a report range and its matching template
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Periods lists all report periods in display order
var Periods = []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly}

// Range returns the half-open [from, to) date range the period covers
// around the anchor date. Weeks start on Monday, matching the timeline.
func (p Period) Range(anchor time.Time) (from, to time.Time) {
	day := timeline.StartOfDay(anchor)
	switch p {
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		from = day.AddDate(0, 0, -offset)
		return from, from.AddDate(0, 0, 7)
	case PeriodMonthly:
		from = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return from, from.AddDate(0, 1, 0)
	case PeriodYearly:
		from = time.Date(day.Year(), 1, 1, 0, 0, 0, 0, day.Location())
		return from, from.AddDate(1, 0, 0)
	default:
		return day, day.AddDate(0, 0, 1)
	}
}

// BuildUserPrompt formats the items of a date range into the work-item
// list handed to the model as the user message.
func BuildUserPrompt(items []models.CalendarItem, from, to time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Work items from %s to %s:\n\n",
		from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"))

	if len(items) == 0 {
		b.WriteString("(no items recorded in this range)\n")
		return b.String()
	}

	for _, item := range items {
		start := item.Start()
		switch v := item.(type) {
		case *models.Event:
			fmt.Fprintf(&b, "- [event] %s (%s %s-%s)",
				v.Title, start.Format("2006-01-02"),
				start.Format("15:04"), v.EndTime.Format("15:04"))
		case *models.Task:
			status := "open"
			if v.IsCompleted {
				status = "completed"
			}
			fmt.Fprintf(&b, "- [task, %s] %s (%s, due %s)",
				status, v.Title, start.Format("2006-01-02"), v.DueDate.Format("2006-01-02 15:04"))
		case *models.Appointment:
			fmt.Fprintf(&b, "- [appointment] %s (%s %s-%s)",
				v.Title, start.Format("2006-01-02"),
				start.Format("15:04"), v.EndTime.Format("15:04"))
		}
		if desc := itemDescription(item); desc != "" {
			fmt.Fprintf(&b, ": %s", desc)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func itemDescription(item models.CalendarItem) string {
	switch v := item.(type) {
	case *models.Event:
		return strings.TrimSpace(v.Description)
	case *models.Task:
		return strings.TrimSpace(v.Description)
	case *models.Appointment:
		return strings.TrimSpace(v.Description)
	}
	return ""
}
