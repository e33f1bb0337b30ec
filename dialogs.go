package main

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/timestack/pkg/models"
	"github.com/borgmon/timestack/pkg/ui/components"
)

const dateTimeFormat = "2006-01-02 15:04"

var priorityOptions = []string{
	string(models.PriorityHigh),
	string(models.PriorityMedium),
	string(models.PriorityLow),
}

var reminderOptions = []string{"5", "10", "15", "30", "60"}

// itemForm collects the widgets shared by the create and edit dialogs
type itemForm struct {
	title       *widget.Entry
	description *widget.Entry
	priority    *widget.Select
	start       *widget.Entry
	end         *widget.Entry
	due         *widget.Entry
	completed   *widget.Check
	reminderOn  *widget.Check
	reminderMin *widget.Select
}

func newItemForm(kind models.Kind) *itemForm {
	f := &itemForm{
		title:       widget.NewEntry(),
		description: widget.NewMultiLineEntry(),
		priority:    widget.NewSelect(priorityOptions, nil),
		start:       widget.NewEntry(),
	}
	f.title.SetPlaceHolder("Title")
	f.description.SetPlaceHolder("Description (optional)")
	f.description.SetMinRowsVisible(3)
	f.priority.SetSelected(string(models.PriorityMedium))
	f.start.SetPlaceHolder(dateTimeFormat)

	switch kind {
	case models.KindTask:
		f.due = widget.NewEntry()
		f.due.SetPlaceHolder(dateTimeFormat)
		f.completed = widget.NewCheck("Completed", nil)
	case models.KindAppointment:
		f.end = widget.NewEntry()
		f.end.SetPlaceHolder(dateTimeFormat)
		f.reminderMin = widget.NewSelect(reminderOptions, nil)
		f.reminderMin.SetSelected("15")
		f.reminderMin.Disable()
		f.reminderOn = widget.NewCheck("Remind me", func(on bool) {
			if on {
				f.reminderMin.Enable()
			} else {
				f.reminderMin.Disable()
			}
		})
	default:
		f.end = widget.NewEntry()
		f.end.SetPlaceHolder(dateTimeFormat)
	}
	return f
}

func (f *itemForm) items(kind models.Kind) []*widget.FormItem {
	items := []*widget.FormItem{
		widget.NewFormItem("Title", f.title),
		widget.NewFormItem("Description", f.description),
		widget.NewFormItem("Priority", f.priority),
		widget.NewFormItem("Start", f.start),
	}
	switch kind {
	case models.KindTask:
		items = append(items,
			widget.NewFormItem("Due", f.due),
			widget.NewFormItem("", f.completed),
		)
	case models.KindAppointment:
		items = append(items,
			widget.NewFormItem("End", f.end),
			widget.NewFormItem("", f.reminderOn),
			widget.NewFormItem("Minutes before", f.reminderMin),
		)
	default:
		items = append(items, widget.NewFormItem("End", f.end))
	}
	return items
}

func (f *itemForm) validate(kind models.Kind) error {
	if f.title.Text == "" {
		return fmt.Errorf("title is required")
	}
	start, err := time.ParseInLocation(dateTimeFormat, f.start.Text, time.Local)
	if err != nil {
		return fmt.Errorf("start must look like %s", dateTimeFormat)
	}
	switch kind {
	case models.KindTask:
		if _, err := time.ParseInLocation(dateTimeFormat, f.due.Text, time.Local); err != nil {
			return fmt.Errorf("due must look like %s", dateTimeFormat)
		}
	default:
		end, err := time.ParseInLocation(dateTimeFormat, f.end.Text, time.Local)
		if err != nil {
			return fmt.Errorf("end must look like %s", dateTimeFormat)
		}
		if end.Before(start) {
			return fmt.Errorf("end must not be before start")
		}
	}
	return nil
}

func (f *itemForm) parseTime(entry *widget.Entry) time.Time {
	t, _ := time.ParseInLocation(dateTimeFormat, entry.Text, time.Local)
	return t
}

func (f *itemForm) reminderMinutes() int {
	var minutes int
	fmt.Sscanf(f.reminderMin.Selected, "%d", &minutes)
	if minutes == 0 {
		minutes = 15
	}
	return minutes
}

func (mw *MainWindow) showCreateItemDialog() {
	kindSelect := widget.NewSelect([]string{
		string(models.KindEvent),
		string(models.KindTask),
		string(models.KindAppointment),
	}, nil)
	kindSelect.SetSelected(string(models.KindEvent))

	dialog.ShowForm("New Item", "Next", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Type", kindSelect)},
		func(confirmed bool) {
			if !confirmed {
				return
			}
			mw.showItemFieldsDialog(models.Kind(kindSelect.Selected))
		}, mw.window)
}

func (mw *MainWindow) showItemFieldsDialog(kind models.Kind) {
	form := newItemForm(kind)

	// Prefill a sensible slot on the anchor day
	start := time.Date(mw.anchor.Year(), mw.anchor.Month(), mw.anchor.Day(), 9, 0, 0, 0, time.Local)
	form.start.SetText(start.Format(dateTimeFormat))
	if form.end != nil {
		form.end.SetText(start.Add(time.Hour).Format(dateTimeFormat))
	}
	if form.due != nil {
		form.due.SetText(start.Add(24 * time.Hour).Format(dateTimeFormat))
	}

	dialog.ShowForm("New "+string(kind), "Create", "Cancel", form.items(kind), func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := form.validate(kind); err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if err := mw.createItem(kind, form); err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		mw.refresh()
	}, mw.window)
}

func (mw *MainWindow) createItem(kind models.Kind, form *itemForm) error {
	ctx := context.Background()
	base := models.ItemBase{
		Title:       form.title.Text,
		Description: form.description.Text,
		Priority:    models.Priority(form.priority.Selected),
	}

	switch kind {
	case models.KindTask:
		return mw.ts.store.CreateTask(ctx, &models.Task{
			ItemBase:    base,
			StartTime:   form.parseTime(form.start),
			DueDate:     form.parseTime(form.due),
			IsCompleted: form.completed.Checked,
		})
	case models.KindAppointment:
		return mw.ts.store.CreateAppointment(ctx, &models.Appointment{
			ItemBase:              base,
			StartTime:             form.parseTime(form.start),
			EndTime:               form.parseTime(form.end),
			ReminderEnabled:       form.reminderOn.Checked,
			ReminderMinutesBefore: form.reminderMinutes(),
		})
	default:
		return mw.ts.store.CreateEvent(ctx, &models.Event{
			ItemBase:  base,
			StartTime: form.parseTime(form.start),
			EndTime:   form.parseTime(form.end),
		})
	}
}

func (mw *MainWindow) showEditItemDialog(item models.CalendarItem) {
	kind := item.Kind()
	form := newItemForm(kind)

	switch v := item.(type) {
	case *models.Event:
		form.title.SetText(v.Title)
		form.description.SetText(v.Description)
		form.priority.SetSelected(string(v.Priority))
		form.start.SetText(v.StartTime.Format(dateTimeFormat))
		form.end.SetText(v.EndTime.Format(dateTimeFormat))
	case *models.Task:
		form.title.SetText(v.Title)
		form.description.SetText(v.Description)
		form.priority.SetSelected(string(v.Priority))
		form.start.SetText(v.StartTime.Format(dateTimeFormat))
		form.due.SetText(v.DueDate.Format(dateTimeFormat))
		form.completed.SetChecked(v.IsCompleted)
	case *models.Appointment:
		form.title.SetText(v.Title)
		form.description.SetText(v.Description)
		form.priority.SetSelected(string(v.Priority))
		form.start.SetText(v.StartTime.Format(dateTimeFormat))
		form.end.SetText(v.EndTime.Format(dateTimeFormat))
		form.reminderOn.SetChecked(v.ReminderEnabled)
		form.reminderMin.SetSelected(fmt.Sprintf("%d", v.ReminderMinutesBefore))
	}

	var d dialog.Dialog

	extras := container.NewVBox()
	if kind == models.KindAppointment {
		extras.Add(widget.NewButton("Convert to Event", func() {
			if _, err := mw.ts.store.ConvertAppointmentToEvent(context.Background(), item.ItemID()); err != nil {
				dialog.ShowError(err, mw.window)
				return
			}
			d.Hide()
			mw.refresh()
		}))
	}
	extras.Add(components.NewHoldButton("Hold to Delete", time.Second, func() {
		if err := mw.deleteItem(item); err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		d.Hide()
		mw.refresh()
	}))

	formWidget := widget.NewForm(form.items(kind)...)
	content := container.NewVBox(formWidget, widget.NewSeparator(), extras)

	d = dialog.NewCustomConfirm("Edit "+string(kind), "Save", "Cancel", content, func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := form.validate(kind); err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if err := mw.updateItem(item, form); err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		mw.refresh()
	}, mw.window)
	d.Resize(fyne.NewSize(460, 0))
	d.Show()
}

func (mw *MainWindow) updateItem(item models.CalendarItem, form *itemForm) error {
	ctx := context.Background()
	title := form.title.Text
	description := form.description.Text
	priority := models.Priority(form.priority.Selected)
	start := form.parseTime(form.start)

	switch item.Kind() {
	case models.KindTask:
		due := form.parseTime(form.due)
		return mw.ts.store.UpdateTask(ctx, item.ItemID(), models.TaskUpdate{
			Title:       &title,
			Description: &description,
			Priority:    &priority,
			StartTime:   &start,
			DueDate:     &due,
			IsCompleted: &form.completed.Checked,
		})
	case models.KindAppointment:
		end := form.parseTime(form.end)
		minutes := form.reminderMinutes()
		return mw.ts.store.UpdateAppointment(ctx, item.ItemID(), models.AppointmentUpdate{
			Title:                 &title,
			Description:           &description,
			Priority:              &priority,
			StartTime:             &start,
			EndTime:               &end,
			ReminderEnabled:       &form.reminderOn.Checked,
			ReminderMinutesBefore: &minutes,
		})
	default:
		end := form.parseTime(form.end)
		return mw.ts.store.UpdateEvent(ctx, item.ItemID(), models.EventUpdate{
			Title:       &title,
			Description: &description,
			Priority:    &priority,
			StartTime:   &start,
			EndTime:     &end,
		})
	}
}

func (mw *MainWindow) deleteItem(item models.CalendarItem) error {
	ctx := context.Background()
	switch item.Kind() {
	case models.KindTask:
		return mw.ts.store.DeleteTask(ctx, item.ItemID())
	case models.KindAppointment:
		return mw.ts.store.DeleteAppointment(ctx, item.ItemID())
	default:
		return mw.ts.store.DeleteEvent(ctx, item.ItemID())
	}
}
