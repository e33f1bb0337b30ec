package components

import (
	"image/color"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/timestack/pkg/models"
	"github.com/borgmon/timestack/pkg/timeline"
)

const minDayColumnWidth = 120

// TimelineGrid renders the visible day columns as one continuous pixel
// grid and owns the drag interactions on the cards inside it. Committed
// moves are reported through OnItemMoved; the grid never writes to the
// store itself.
type TimelineGrid struct {
	widget.BaseWidget

	OnItemMoved  func(move timeline.Move)
	OnItemTapped func(item models.CalendarItem)

	cfg          timeline.Config
	days         []time.Time
	items        []models.CalendarItem
	activeItemID string

	cards      []*ItemCard
	placements map[string]timeline.Placement

	drag        *timeline.DragGesture
	resize      *timeline.ResizeGesture
	dragCard    *ItemCard
	grabOffsetY float32
}

// NewTimelineGrid creates an empty grid with the given layout config
func NewTimelineGrid(cfg timeline.Config) *TimelineGrid {
	g := &TimelineGrid{
		cfg:        cfg,
		placements: map[string]timeline.Placement{},
	}
	g.ExtendBaseWidget(g)
	return g
}

// SetData replaces the visible days and items and recomputes every card
// placement. The active item keeps its raised stacking position.
func (g *TimelineGrid) SetData(days []time.Time, items []models.CalendarItem) {
	g.days = days
	g.items = items
	g.rebuild()
	g.Refresh()
}

// SetActiveItem raises the card with the given id above its neighbours
func (g *TimelineGrid) SetActiveItem(id string) {
	g.activeItemID = id
	g.rebuild()
	g.Refresh()
}

// Days returns the currently visible day columns
func (g *TimelineGrid) Days() []time.Time { return g.days }

func (g *TimelineGrid) rebuild() {
	g.placements = map[string]timeline.Placement{}
	var all []timeline.Placement
	for _, day := range g.days {
		all = append(all, g.cfg.Layout(g.items, day, g.activeItemID)...)
	}

	// Draw order follows the z bands so raised cards paint last
	sort.SliceStable(all, func(i, j int) bool { return all[i].ZIndex < all[j].ZIndex })

	g.cards = g.cards[:0]
	for _, p := range all {
		g.placements[p.Item.ItemID()] = p

		card := NewItemCard(p.Item)
		card.Active = p.Item.ItemID() == g.activeItemID
		card.OnTapped = func(item models.CalendarItem) {
			if g.OnItemTapped != nil {
				g.OnItemTapped(item)
			}
		}
		card.OnDragStart = g.beginGesture
		card.OnDragged = g.updateGesture
		card.OnDragEnd = g.endGesture
		g.cards = append(g.cards, card)
	}
}

func (g *TimelineGrid) beginGesture(card *ItemCard, pointer fyne.Position, resize bool) {
	g.cancelGesture()
	g.dragCard = card
	g.activeItemID = card.Item.ItemID()

	if resize {
		gesture, err := g.cfg.BeginResize(card.Item, float64(pointer.Y))
		if err == nil {
			g.resize = gesture
		}
		return
	}

	g.grabOffsetY = pointer.Y - card.Position().Y
	g.drag = g.cfg.BeginDrag(card.Item, float64(pointer.Y), float64(card.Position().Y))
}

func (g *TimelineGrid) updateGesture(card *ItemCard, pointer fyne.Position) {
	switch {
	case g.resize != nil:
		height := g.resize.Update(float64(pointer.Y))
		card.Resize(fyne.NewSize(card.Size().Width, float32(height)))
	case g.drag != nil:
		// Follow the pointer as a live preview; nothing is committed
		// until the drop resolves.
		x := card.Position().X
		if w := g.dayWidth(); w > 0 {
			day := int(pointer.X / w)
			if day >= 0 && day < len(g.days) {
				p := g.placements[card.Item.ItemID()]
				x = float32(day)*w + float32(p.LeftOffset)
			}
		}
		card.Move(fyne.NewPos(x, pointer.Y-g.grabOffsetY))
	}
}

func (g *TimelineGrid) endGesture(card *ItemCard, pointer fyne.Position) {
	defer func() {
		g.drag = nil
		g.resize = nil
		g.dragCard = nil
	}()

	var move timeline.Move
	var ok bool
	switch {
	case g.resize != nil:
		move, ok = g.resize.Commit()
	case g.drag != nil:
		// Card positions are already in content coordinates, so the
		// scroll offset term is zero here.
		move, ok = g.drag.Drop(float64(pointer.X), float64(pointer.Y), 0, float64(g.Size().Width), g.days)
	default:
		return
	}

	if ok && g.OnItemMoved != nil {
		g.OnItemMoved(move)
		return
	}
	// Unresolved drop: snap the preview back to the stored position
	g.Refresh()
}

func (g *TimelineGrid) cancelGesture() {
	if g.drag != nil {
		g.drag.Cancel()
		g.drag = nil
	}
	if g.resize != nil {
		g.resize.Cancel()
		g.resize = nil
	}
	g.dragCard = nil
}

func (g *TimelineGrid) dayWidth() float32 {
	if len(g.days) == 0 {
		return 0
	}
	return g.Size().Width / float32(len(g.days))
}

// CreateRenderer implements fyne.Widget
func (g *TimelineGrid) CreateRenderer() fyne.WidgetRenderer {
	r := &timelineGridRenderer{grid: g}

	r.background = canvas.NewRectangle(theme.BackgroundColor())
	for i := 0; i < timeline.MinutesPerDay/60; i++ {
		line := canvas.NewLine(color.NRGBA{R: 128, G: 128, B: 128, A: 40})
		line.StrokeWidth = 1
		r.hourLines = append(r.hourLines, line)
	}
	r.nowLine = canvas.NewLine(color.NRGBA{R: 239, G: 68, B: 68, A: 220})
	r.nowLine.StrokeWidth = 2

	return r
}

type timelineGridRenderer struct {
	grid       *TimelineGrid
	background *canvas.Rectangle
	hourLines  []*canvas.Line
	dayLines   []*canvas.Line
	nowLine    *canvas.Line
}

func (r *timelineGridRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	for hour, line := range r.hourLines {
		y := float32(r.grid.cfg.TimeToPixel(hour, 0))
		line.Position1 = fyne.NewPos(0, y)
		line.Position2 = fyne.NewPos(size.Width, y)
	}

	r.syncDayLines()
	dayWidth := r.grid.dayWidth()
	for i, line := range r.dayLines {
		x := float32(i+1) * dayWidth
		line.Position1 = fyne.NewPos(x, 0)
		line.Position2 = fyne.NewPos(x, size.Height)
	}

	r.layoutNowLine(size)

	for _, card := range r.grid.cards {
		if card == r.grid.dragCard {
			continue
		}
		p := r.grid.placements[card.Item.ItemID()]
		dayIndex := r.dayIndexOf(p.Item.Start())
		if dayIndex < 0 {
			card.Hide()
			continue
		}
		card.Show()
		x := float32(dayIndex)*dayWidth + float32(p.LeftOffset)
		w := dayWidth - float32(p.LeftOffset) - float32(p.WidthInset)
		card.Move(fyne.NewPos(x, float32(p.Top)))
		card.Resize(fyne.NewSize(w, float32(p.Height)))
	}
}

func (r *timelineGridRenderer) layoutNowLine(size fyne.Size) {
	now := time.Now()
	dayIndex := r.dayIndexOf(now)
	if dayIndex < 0 {
		r.nowLine.Hide()
		return
	}
	r.nowLine.Show()
	dayWidth := r.grid.dayWidth()
	y := float32(r.grid.cfg.TimeToPixel(now.Hour(), now.Minute()))
	r.nowLine.Position1 = fyne.NewPos(float32(dayIndex)*dayWidth, y)
	r.nowLine.Position2 = fyne.NewPos(float32(dayIndex+1)*dayWidth, y)
}

func (r *timelineGridRenderer) dayIndexOf(t time.Time) int {
	for i, day := range r.grid.days {
		if timeline.SameDay(t, day) {
			return i
		}
	}
	return -1
}

// syncDayLines keeps one separator per column boundary as the day count
// changes with the view mode
func (r *timelineGridRenderer) syncDayLines() {
	want := len(r.grid.days) - 1
	if want < 0 {
		want = 0
	}
	for len(r.dayLines) < want {
		line := canvas.NewLine(color.NRGBA{R: 128, G: 128, B: 128, A: 70})
		line.StrokeWidth = 1
		r.dayLines = append(r.dayLines, line)
	}
	r.dayLines = r.dayLines[:want]
}

func (r *timelineGridRenderer) MinSize() fyne.Size {
	days := len(r.grid.days)
	if days == 0 {
		days = 1
	}
	return fyne.NewSize(float32(days*minDayColumnWidth), float32(r.grid.cfg.DayHeight()))
}

func (r *timelineGridRenderer) Refresh() {
	r.background.FillColor = theme.BackgroundColor()
	r.background.Refresh()
	r.Layout(r.grid.Size())
	canvas.Refresh(r.grid)
}

func (r *timelineGridRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background}
	for _, line := range r.hourLines {
		objects = append(objects, line)
	}
	for _, line := range r.dayLines {
		objects = append(objects, line)
	}
	objects = append(objects, r.nowLine)
	for _, card := range r.grid.cards {
		objects = append(objects, card)
	}
	return objects
}

func (r *timelineGridRenderer) Destroy() {}

// TimeGutter is the fixed hour-label column rendered beside the grid
type TimeGutter struct {
	widget.BaseWidget
	cfg timeline.Config
}

// NewTimeGutter creates the hour labels for the given layout config
func NewTimeGutter(cfg timeline.Config) *TimeGutter {
	g := &TimeGutter{cfg: cfg}
	g.ExtendBaseWidget(g)
	return g
}

// CreateRenderer implements fyne.Widget
func (g *TimeGutter) CreateRenderer() fyne.WidgetRenderer {
	r := &timeGutterRenderer{gutter: g}
	for hour := 0; hour < timeline.MinutesPerDay/60; hour++ {
		label := canvas.NewText(time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC).Format("15:04"), theme.ForegroundColor())
		label.TextSize = theme.TextSize() - 4
		r.labels = append(r.labels, label)
	}
	return r
}

type timeGutterRenderer struct {
	gutter *TimeGutter
	labels []*canvas.Text
}

func (r *timeGutterRenderer) Layout(size fyne.Size) {
	for hour, label := range r.labels {
		y := float32(r.gutter.cfg.TimeToPixel(hour, 0))
		label.Move(fyne.NewPos(4, y))
	}
}

func (r *timeGutterRenderer) MinSize() fyne.Size {
	return fyne.NewSize(44, float32(r.gutter.cfg.DayHeight()))
}

func (r *timeGutterRenderer) Refresh() {
	for _, label := range r.labels {
		label.Color = theme.ForegroundColor()
		label.Refresh()
	}
}

func (r *timeGutterRenderer) Objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(r.labels))
	for _, label := range r.labels {
		objects = append(objects, label)
	}
	return objects
}

func (r *timeGutterRenderer) Destroy() {}
