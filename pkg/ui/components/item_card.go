package components

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/timestack/pkg/models"
)

// resizeZoneHeight is the strip along the bottom edge of a card that
// starts a resize instead of a move
const resizeZoneHeight = 8

// ItemCard renders one calendar item inside its day column. Drags are
// reported to the owning grid in grid coordinates; the card itself never
// mutates any item.
type ItemCard struct {
	widget.BaseWidget
	Item   models.CalendarItem
	Active bool

	OnTapped    func(item models.CalendarItem)
	OnDragStart func(card *ItemCard, pointer fyne.Position, resize bool)
	OnDragged   func(card *ItemCard, pointer fyne.Position)
	OnDragEnd   func(card *ItemCard, pointer fyne.Position)

	dragging    bool
	lastPointer fyne.Position
	hovered     bool
}

// NewItemCard creates a card for the given item
func NewItemCard(item models.CalendarItem) *ItemCard {
	c := &ItemCard{Item: item}
	c.ExtendBaseWidget(c)
	return c
}

// Tapped implements fyne.Tappable
func (c *ItemCard) Tapped(*fyne.PointEvent) {
	if c.OnTapped != nil {
		c.OnTapped(c.Item)
	}
}

// TappedSecondary implements fyne.SecondaryTappable
func (c *ItemCard) TappedSecondary(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable
func (c *ItemCard) MouseIn(*desktop.MouseEvent) {
	c.hovered = true
	c.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (c *ItemCard) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (c *ItemCard) MouseOut() {
	c.hovered = false
	c.Refresh()
}

// Dragged implements fyne.Draggable. Event positions are local to the
// card, so they are translated into the parent grid's coordinate space
// before being reported.
func (c *ItemCard) Dragged(e *fyne.DragEvent) {
	pointer := c.Position().Add(e.Position)
	c.lastPointer = pointer

	if !c.dragging {
		c.dragging = true
		resize := c.resizable() && e.Position.Y > c.Size().Height-resizeZoneHeight
		if c.OnDragStart != nil {
			c.OnDragStart(c, pointer, resize)
		}
		return
	}
	if c.OnDragged != nil {
		c.OnDragged(c, pointer)
	}
}

// DragEnd implements fyne.Draggable
func (c *ItemCard) DragEnd() {
	if !c.dragging {
		return
	}
	c.dragging = false
	if c.OnDragEnd != nil {
		c.OnDragEnd(c, c.lastPointer)
	}
}

func (c *ItemCard) resizable() bool {
	return c.Item.Kind() != models.KindTask
}

// CreateRenderer implements fyne.Widget
func (c *ItemCard) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(cardFillColor(c.Item, false))
	bg.CornerRadius = 4

	accent := canvas.NewRectangle(priorityColor(itemPriority(c.Item)))
	accent.CornerRadius = 2

	title := canvas.NewText(c.Item.ItemTitle(), theme.ForegroundColor())
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = theme.TextSize() - 2

	timeLabel := canvas.NewText(itemTimeLabel(c.Item), theme.ForegroundColor())
	timeLabel.TextSize = theme.TextSize() - 4

	grip := canvas.NewRectangle(color.NRGBA{R: 255, G: 255, B: 255, A: 60})
	if !c.resizable() {
		grip.Hide()
	}

	return &itemCardRenderer{
		card:      c,
		bg:        bg,
		accent:    accent,
		title:     title,
		timeLabel: timeLabel,
		grip:      grip,
	}
}

type itemCardRenderer struct {
	card      *ItemCard
	bg        *canvas.Rectangle
	accent    *canvas.Rectangle
	title     *canvas.Text
	timeLabel *canvas.Text
	grip      *canvas.Rectangle
}

func (r *itemCardRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)

	r.accent.Move(fyne.NewPos(2, 2))
	r.accent.Resize(fyne.NewSize(3, size.Height-4))

	r.title.Move(fyne.NewPos(9, 2))
	r.title.Resize(fyne.NewSize(size.Width-11, r.title.MinSize().Height))

	r.timeLabel.Move(fyne.NewPos(9, 2+r.title.MinSize().Height))
	r.timeLabel.Resize(fyne.NewSize(size.Width-11, r.timeLabel.MinSize().Height))

	r.grip.Move(fyne.NewPos(size.Width/2-8, size.Height-4))
	r.grip.Resize(fyne.NewSize(16, 2))
}

func (r *itemCardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(40, 16)
}

func (r *itemCardRenderer) Refresh() {
	r.bg.FillColor = cardFillColor(r.card.Item, r.card.hovered || r.card.Active)
	r.accent.FillColor = priorityColor(itemPriority(r.card.Item))
	r.title.Text = r.card.Item.ItemTitle()
	r.title.Color = theme.ForegroundColor()
	r.timeLabel.Text = itemTimeLabel(r.card.Item)
	r.timeLabel.Color = theme.ForegroundColor()

	if task, ok := r.card.Item.(*models.Task); ok {
		r.title.TextStyle.Italic = task.IsCompleted
	}

	r.bg.Refresh()
	r.accent.Refresh()
	r.title.Refresh()
	r.timeLabel.Refresh()
	r.grip.Refresh()
}

func (r *itemCardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.accent, r.title, r.timeLabel, r.grip}
}

func (r *itemCardRenderer) Destroy() {}

func itemPriority(item models.CalendarItem) models.Priority {
	switch v := item.(type) {
	case *models.Event:
		return v.Priority
	case *models.Task:
		return v.Priority
	case *models.Appointment:
		return v.Priority
	}
	return models.PriorityMedium
}

func priorityColor(p models.Priority) color.Color {
	switch p {
	case models.PriorityHigh:
		return color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	case models.PriorityLow:
		return color.NRGBA{R: 96, G: 165, B: 250, A: 255}
	default:
		return color.NRGBA{R: 245, G: 158, B: 11, A: 255}
	}
}

func cardFillColor(item models.CalendarItem, highlighted bool) color.Color {
	var base color.NRGBA
	switch item.Kind() {
	case models.KindTask:
		base = color.NRGBA{R: 34, G: 139, B: 94, A: 200}
	case models.KindAppointment:
		base = color.NRGBA{R: 124, G: 58, B: 237, A: 200}
	default:
		base = color.NRGBA{R: 37, G: 99, B: 235, A: 200}
	}
	if task, ok := item.(*models.Task); ok && task.IsCompleted {
		base.A = 110
	}
	if highlighted {
		base.A = 255
	}
	return base
}

func itemTimeLabel(item models.CalendarItem) string {
	switch v := item.(type) {
	case *models.Event:
		return v.StartTime.Format("15:04") + " - " + v.EndTime.Format("15:04")
	case *models.Appointment:
		return v.StartTime.Format("15:04") + " - " + v.EndTime.Format("15:04")
	case *models.Task:
		return "due " + v.DueDate.Format("Jan 2 15:04")
	}
	return item.Start().Format(time.Kitchen)
}
