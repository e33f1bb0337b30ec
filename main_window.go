package main

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/timestack/pkg/ical"
	"github.com/borgmon/timestack/pkg/models"
	"github.com/borgmon/timestack/pkg/timeline"
	"github.com/borgmon/timestack/pkg/ui/components"
)

var viewModeOptions = []struct {
	label string
	mode  timeline.ViewMode
}{
	{"Day", timeline.ViewDay},
	{"Next 4 Days", timeline.ViewNext4Days},
	{"Around 5 Days", timeline.ViewAround5Day},
	{"Week", timeline.ViewWeek},
}

type MainWindow struct {
	ts     *TimeStack
	window fyne.Window

	cfg    timeline.Config
	mode   timeline.ViewMode
	anchor time.Time

	grid       *components.TimelineGrid
	scroll     *container.Scroll
	headerRow  *fyne.Container
	rangeLabel *widget.Label
}

func NewMainWindow(ts *TimeStack) *MainWindow {
	mw := &MainWindow{
		ts:     ts,
		cfg:    timeline.DefaultConfig(),
		mode:   timeline.ViewAround5Day,
		anchor: time.Now(),
	}
	mw.window = ts.app.NewWindow("TimeStack")
	mw.window.SetMaster()
	mw.buildUI()
	mw.refresh()
	return mw
}

func (mw *MainWindow) buildUI() {
	mw.grid = components.NewTimelineGrid(mw.cfg)
	mw.grid.OnItemMoved = mw.applyMove
	mw.grid.OnItemTapped = func(item models.CalendarItem) {
		mw.showEditItemDialog(item)
	}

	gutter := components.NewTimeGutter(mw.cfg)
	mw.scroll = container.NewScroll(container.NewBorder(nil, nil, gutter, nil, mw.grid))

	labels := make([]string, len(viewModeOptions))
	for i, opt := range viewModeOptions {
		labels[i] = opt.label
	}
	modeSelect := widget.NewSelect(labels, func(selected string) {
		for _, opt := range viewModeOptions {
			if opt.label == selected {
				mw.mode = opt.mode
				break
			}
		}
		mw.refresh()
	})
	modeSelect.SetSelected("Around 5 Days")

	mw.rangeLabel = widget.NewLabel("")
	mw.rangeLabel.TextStyle = fyne.TextStyle{Bold: true}

	prevButton := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		mw.shiftAnchor(-1)
	})
	todayButton := widget.NewButton("Today", func() {
		mw.GoToToday()
	})
	nextButton := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		mw.shiftAnchor(1)
	})

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {
			mw.showCreateItemDialog()
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			mw.exportICal()
		}),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
			mw.importICal()
		}),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.DocumentIcon(), func() {
			mw.ts.showReportWindow()
		}),
		widget.NewToolbarAction(theme.SettingsIcon(), func() {
			mw.ts.showSettingsWindow()
		}),
	)

	navRow := container.NewHBox(
		prevButton, todayButton, nextButton,
		widget.NewSeparator(),
		modeSelect,
		mw.rangeLabel,
	)

	mw.headerRow = container.NewGridWithColumns(1)
	header := container.NewBorder(nil, nil, newGutterSpacer(), nil, mw.headerRow)

	top := container.NewVBox(toolbar, navRow, header)
	mw.window.SetContent(container.NewBorder(top, nil, nil, nil, mw.scroll))
	mw.window.Resize(fyne.NewSize(1000, 760))
	mw.window.CenterOnScreen()

	// Closing the main window hides it; the app stays in the tray
	mw.window.SetCloseIntercept(func() {
		mw.window.Hide()
	})
}

// newGutterSpacer reserves the hour-gutter width so day headers line up
// with their columns
func newGutterSpacer() fyne.CanvasObject {
	spacer := widget.NewLabel("")
	// Matches the gutter MinSize width
	return container.NewGridWrap(fyne.NewSize(44, 1), spacer)
}

func (mw *MainWindow) Show() {
	mw.window.Show()
	mw.scrollToMorning()
}

// GoToToday re-anchors the visible window on the current day
func (mw *MainWindow) GoToToday() {
	mw.anchor = time.Now()
	mw.refresh()
}

func (mw *MainWindow) shiftAnchor(direction int) {
	days := len(timeline.ViewDates(mw.mode, mw.anchor))
	mw.anchor = mw.anchor.AddDate(0, 0, direction*days)
	mw.refresh()
}

func (mw *MainWindow) scrollToMorning() {
	mw.scroll.Offset = fyne.NewPos(0, float32(mw.cfg.TimeToPixel(8, 0)))
	mw.scroll.Refresh()
}

// refresh reloads the visible range from the store and lays the grid
// out again
func (mw *MainWindow) refresh() {
	ctx := context.Background()
	days := timeline.ViewDates(mw.mode, mw.anchor)
	from := days[0]
	to := days[len(days)-1].AddDate(0, 0, 1)

	items, err := mw.ts.store.ListItemsInRange(ctx, from, to)
	if err != nil {
		mw.ts.log.Error().Err(err).Msg("failed to load items")
		dialog.ShowError(err, mw.window)
		return
	}

	mw.grid.SetData(days, items)
	mw.updateHeader(days)
	mw.ts.updateSystemTrayMenu()
}

func (mw *MainWindow) updateHeader(days []time.Time) {
	mw.rangeLabel.SetText(days[0].Format("Jan 2") + " - " + days[len(days)-1].Format("Jan 2, 2006"))

	headers := make([]fyne.CanvasObject, len(days))
	for i, day := range days {
		label := widget.NewLabelWithStyle(day.Format("Mon 2"), fyne.TextAlignCenter, fyne.TextStyle{})
		if timeline.SameDay(day, time.Now()) {
			label.TextStyle = fyne.TextStyle{Bold: true}
		}
		headers[i] = label
	}
	mw.headerRow.Layout = nil
	mw.headerRow.Objects = headers
	mw.headerRow.Layout = newHeaderLayout(len(days))
	mw.headerRow.Refresh()
}

// newHeaderLayout lays day headers out as equal columns
func newHeaderLayout(columns int) fyne.Layout {
	return &headerLayout{columns: columns}
}

type headerLayout struct {
	columns int
}

func (l *headerLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if l.columns == 0 {
		return
	}
	width := size.Width / float32(l.columns)
	for i, o := range objects {
		o.Move(fyne.NewPos(float32(i)*width, 0))
		o.Resize(fyne.NewSize(width, size.Height))
	}
}

func (l *headerLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var h float32
	for _, o := range objects {
		if m := o.MinSize().Height; m > h {
			h = m
		}
	}
	return fyne.NewSize(0, h)
}

// applyMove persists a committed drag or resize and reloads the grid
func (mw *MainWindow) applyMove(move timeline.Move) {
	ctx := context.Background()

	var err error
	switch move.Kind {
	case models.KindEvent:
		err = mw.ts.store.UpdateEvent(ctx, move.ItemID, models.EventUpdate{
			StartTime: &move.NewStart,
			EndTime:   &move.NewEnd,
		})
	case models.KindTask:
		err = mw.ts.store.UpdateTask(ctx, move.ItemID, models.TaskUpdate{
			StartTime: &move.NewStart,
			DueDate:   &move.NewDue,
		})
	case models.KindAppointment:
		err = mw.ts.store.UpdateAppointment(ctx, move.ItemID, models.AppointmentUpdate{
			StartTime: &move.NewStart,
			EndTime:   &move.NewEnd,
		})
	}
	if err != nil {
		mw.ts.log.Error().Err(err).Str("item", move.ItemID).Msg("failed to apply move")
		dialog.ShowError(err, mw.window)
	}
	mw.refresh()
}

func (mw *MainWindow) exportICal() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		items, err := mw.ts.store.ListItems(context.Background())
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if err := ical.Export(writer, items); err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		mw.ts.log.Info().Int("items", len(items)).Msg("calendar exported")
	}, mw.window)
}

func (mw *MainWindow) importICal() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		events, err := ical.ImportEvents(reader)
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}

		ctx := context.Background()
		created := 0
		for _, event := range events {
			if event.Priority == "" {
				event.Priority = models.PriorityMedium
			}
			if err := mw.ts.store.CreateEvent(ctx, event); err != nil {
				mw.ts.log.Error().Err(err).Str("title", event.Title).Msg("failed to import event")
				continue
			}
			created++
		}
		mw.ts.log.Info().Int("created", created).Msg("calendar imported")
		mw.refresh()
	}, mw.window)
}
