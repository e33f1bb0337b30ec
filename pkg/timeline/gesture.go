package timeline

import (
	"errors"
	"math"
	"time"

	"github.com/borgmon/timestack/pkg/models"
)

// ErrNotResizable is returned when a resize is started on a task
var ErrNotResizable = errors.New("item kind is not resizable")

// Move is the outcome of a committed drag: the new time fields for the
// dragged item. Which end field is meaningful depends on Kind: events
// and appointments carry NewEnd, tasks carry NewDue. Nothing else about
// the item changes.
type Move struct {
	ItemID   string
	Kind     models.Kind
	NewStart time.Time
	NewEnd   time.Time
	NewDue   time.Time
}

// DragGesture tracks one drag-to-move interaction from grab to drop.
// The grab offset keeps the card from jumping so its top edge aligns
// with the pointer mid-flight. No time is committed until Drop.
type DragGesture struct {
	cfg         Config
	item        models.CalendarItem
	grabOffsetY float64
	done        bool
}

// BeginDrag starts a drag-move of item. pointerY and cardTopY are in
// the same coordinate space (the visible grid).
func (c Config) BeginDrag(item models.CalendarItem, pointerY, cardTopY float64) *DragGesture {
	return &DragGesture{
		cfg:         c,
		item:        item,
		grabOffsetY: pointerY - cardTopY,
	}
}

// Drop resolves the drop position against the rendered day columns and
// returns the resulting move. pointerX/pointerY are relative to the
// visible grid, scrollTop is the grid's current vertical scroll offset,
// gridWidth is the total width shared evenly by days. Returns false
// when the pointer cannot be resolved to a day column; the gesture then
// ends with no mutation.
func (g *DragGesture) Drop(pointerX, pointerY, scrollTop, gridWidth float64, days []time.Time) (Move, bool) {
	if g.done {
		return Move{}, false
	}
	g.done = true

	if len(days) == 0 || gridWidth <= 0 {
		return Move{}, false
	}
	dayIndex := int(math.Floor(pointerX / (gridWidth / float64(len(days)))))
	if dayIndex < 0 || dayIndex >= len(days) {
		return Move{}, false
	}

	pixels := g.cfg.ClampToColumn(pointerY + scrollTop - g.grabOffsetY)
	hour, minute := g.cfg.PixelToTime(pixels)
	newStart := AtClock(days[dayIndex], hour, minute)

	move := Move{
		ItemID:   g.item.ItemID(),
		Kind:     g.item.Kind(),
		NewStart: newStart,
	}
	switch v := g.item.(type) {
	case *models.Event:
		move.NewEnd = newStart.Add(v.Duration())
	case *models.Appointment:
		move.NewEnd = newStart.Add(v.Duration())
	case *models.Task:
		move.NewDue = newStart.Add(v.DueDate.Sub(v.StartTime))
	}
	return move, true
}

// Cancel ends the gesture with no mutation
func (g *DragGesture) Cancel() { g.done = true }

// ResizeGesture tracks one drag-resize of an item's end boundary.
// Update produces a live preview height only; the snapped and clamped
// end time is computed at Commit.
type ResizeGesture struct {
	cfg           Config
	itemID        string
	kind          models.Kind
	startTime     time.Time
	startPointerY float64
	startHeight   float64
	previewHeight float64
	done          bool
}

// BeginResize starts resizing the end boundary of an event or
// appointment. Tasks have no resizable span.
func (c Config) BeginResize(item models.CalendarItem, pointerY float64) (*ResizeGesture, error) {
	var end time.Time
	switch v := item.(type) {
	case *models.Event:
		end = v.EndTime
	case *models.Appointment:
		end = v.EndTime
	default:
		return nil, ErrNotResizable
	}

	minutes := end.Sub(item.Start()).Minutes()
	height := math.Max(c.StepHeight(), minutes*c.PixelsPerMinute)

	return &ResizeGesture{
		cfg:           c,
		itemID:        item.ItemID(),
		kind:          item.Kind(),
		startTime:     item.Start(),
		startPointerY: pointerY,
		startHeight:   height,
		previewHeight: height,
	}, nil
}

// Update recomputes the live preview height for the current pointer
// position. The preview never shrinks below one snap step.
func (g *ResizeGesture) Update(pointerY float64) float64 {
	if g.done {
		return g.previewHeight
	}
	g.previewHeight = math.Max(g.cfg.StepHeight(), g.startHeight+(pointerY-g.startPointerY))
	return g.previewHeight
}

// Commit converts the final preview height to an end time, snapped to
// the step grid and clamped so it never crosses the midnight ending the
// start time's day. A release without movement still yields the
// (unchanged) end time; dispatching it is an idempotent no-op.
func (g *ResizeGesture) Commit() (Move, bool) {
	if g.done {
		return Move{}, false
	}
	g.done = true

	rawMinutes := g.previewHeight / g.cfg.PixelsPerMinute
	snapped := g.cfg.SnapMinutes(rawMinutes)

	maxMinutes := int(math.Max(0, EndOfDay(g.startTime).Sub(g.startTime).Minutes()))
	if snapped > maxMinutes {
		snapped = maxMinutes
	}

	return Move{
		ItemID:   g.itemID,
		Kind:     g.kind,
		NewStart: g.startTime,
		NewEnd:   g.startTime.Add(time.Duration(snapped) * time.Minute),
	}, true
}

// Cancel ends the gesture with no mutation
func (g *ResizeGesture) Cancel() { g.done = true }
