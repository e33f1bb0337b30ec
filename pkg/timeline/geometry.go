package timeline

import (
	"math"
	"time"

	"github.com/borgmon/timestack/pkg/models"
)

// Z-index bands: cards stack at baseZIndex+lane, and the most recently
// interacted-with card is raised to activeZIndex so it renders above
// its neighbours.
const (
	baseZIndex   = 10
	activeZIndex = 50
)

// Placement is the computed geometry for one item inside its day
// column. LeftOffset and WidthInset are the per-lane horizontal shift:
// a card spans [LeftOffset, columnWidth-WidthInset] so staggered cards
// stay clickable instead of dividing the column proportionally.
// LeftOffset always equals WidthInset under the stagger scheme.
type Placement struct {
	Item       models.CalendarItem
	Lane       int
	Top        float64
	Height     float64
	LeftOffset float64
	WidthInset float64
	ZIndex     int
}

// ItemsForDay filters items to those belonging to the given calendar
// day. Membership is decided by the date portion of the start time
// only; spans that would cross midnight are clipped visually to the
// day's end, never re-homed.
func ItemsForDay(items []models.CalendarItem, day time.Time) []models.CalendarItem {
	var out []models.CalendarItem
	for _, item := range items {
		if SameDay(item.Start(), day) {
			out = append(out, item)
		}
	}
	return out
}

// ItemHeight returns the rendered pixel height of an item. Tasks are
// fixed at one step; event and appointment spans are floored at one
// step so short or degenerate durations never collapse to zero.
func (c Config) ItemHeight(item models.CalendarItem) float64 {
	var end time.Time
	switch v := item.(type) {
	case *models.Event:
		end = v.EndTime
	case *models.Appointment:
		end = v.EndTime
	default:
		return c.StepHeight()
	}
	minutes := end.Sub(item.Start()).Minutes()
	return math.Max(float64(c.StepMinutes), minutes) * c.PixelsPerMinute
}

// Layout computes the placement of every item on the given day.
// activeItemID names the most recently interacted-with item, if any.
// The result is a pure function of the inputs: recomputing on an
// unchanged snapshot yields identical placements.
func (c Config) Layout(items []models.CalendarItem, day time.Time, activeItemID string) []Placement {
	dayItems := ItemsForDay(items, day)
	lanes := c.Lanes(dayItems)

	placements := make([]Placement, 0, len(dayItems))
	for _, item := range dayItems {
		lane := lanes[item.ItemID()]
		shift := float64(lane) * c.LaneOffsetPx

		z := baseZIndex + lane
		if item.ItemID() == activeItemID {
			z = activeZIndex
		}

		start := item.Start()
		placements = append(placements, Placement{
			Item:       item,
			Lane:       lane,
			Top:        c.TimeToPixel(start.Hour(), start.Minute()),
			Height:     c.ItemHeight(item),
			LeftOffset: shift,
			WidthInset: shift,
			ZIndex:     z,
		})
	}
	return placements
}
