package timeline

import (
	"time"

	"github.com/borgmon/timestack/pkg/models"
)

// effectiveSpan returns the half-open [start, end) interval an item
// occupies for overlap purposes. Tasks are point-in-time markers, so
// they get a synthetic one-step span; their visual height never changes
// because of overlap.
func (c Config) effectiveSpan(item models.CalendarItem) (start, end time.Time) {
	start = item.Start()
	switch v := item.(type) {
	case *models.Event:
		end = v.EndTime
	case *models.Appointment:
		end = v.EndTime
	default:
		end = start.Add(c.Step())
	}
	if !end.After(start) {
		end = start.Add(c.Step())
	}
	return start, end
}

// Overlaps reports whether two items' effective spans intersect with
// non-zero measure.
func (c Config) Overlaps(a, b models.CalendarItem) bool {
	aStart, aEnd := c.effectiveSpan(a)
	bStart, bEnd := c.effectiveSpan(b)
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// LaneIndex returns the overlap lane of item among items: the number of
// overlapping neighbours that start earlier, with equal starts broken by
// lexicographically smaller id. Items with no overlap get lane 0. The
// ordering is total within a cluster, so the assignment is stable and
// deterministic for a fixed input set.
func (c Config) LaneIndex(item models.CalendarItem, items []models.CalendarItem) int {
	lane := 0
	for _, other := range items {
		if other.ItemID() == item.ItemID() {
			continue
		}
		if !c.Overlaps(item, other) {
			continue
		}
		if other.Start().Before(item.Start()) ||
			(other.Start().Equal(item.Start()) && other.ItemID() < item.ItemID()) {
			lane++
		}
	}
	return lane
}

// Lanes computes the lane index for every item in the set.
//
// Lanes are a staggering scheme, not a column-packing scheme: N mutually
// overlapping items get lanes 0..N-1 even when an earlier span ends
// partway through the cluster. Staggered cards stay legible and
// clickable, which is worth more here than dense packing.
func (c Config) Lanes(items []models.CalendarItem) map[string]int {
	lanes := make(map[string]int, len(items))
	for _, item := range items {
		lanes[item.ItemID()] = c.LaneIndex(item, items)
	}
	return lanes
}
