package ical

import (
	"fmt"
	"io"
	"time"

	goical "github.com/emersion/go-ical"

	"github.com/borgmon/timestack/pkg/models"
)

const productID = "-//timestack//TimeStack//EN"

// Export writes the given items as an iCalendar stream. Events and
// appointments become VEVENTs; tasks become VTODOs with their due date.
// Reminder configuration is not exported.
func Export(w io.Writer, items []models.CalendarItem) error {
	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, productID)

	for _, item := range items {
		switch v := item.(type) {
		case *models.Event:
			cal.Children = append(cal.Children, eventComponent(v.ID, v.Title, v.Description, v.StartTime, v.EndTime))
		case *models.Appointment:
			cal.Children = append(cal.Children, eventComponent(v.ID, v.Title, v.Description, v.StartTime, v.EndTime))
		case *models.Task:
			cal.Children = append(cal.Children, todoComponent(v))
		}
	}

	if err := goical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func eventComponent(id, title, description string, start, end time.Time) *goical.Component {
	event := goical.NewEvent()
	event.Props.SetText(goical.PropUID, id)
	event.Props.SetText(goical.PropSummary, title)
	if description != "" {
		event.Props.SetText(goical.PropDescription, description)
	}
	event.Props.SetDateTime(goical.PropDateTimeStart, start)
	event.Props.SetDateTime(goical.PropDateTimeEnd, end)
	event.Props.SetDateTime(goical.PropDateTimeStamp, time.Now())
	return event.Component
}

func todoComponent(t *models.Task) *goical.Component {
	comp := goical.NewComponent(goical.CompToDo)
	comp.Props.SetText(goical.PropUID, t.ID)
	comp.Props.SetText(goical.PropSummary, t.Title)
	if t.Description != "" {
		comp.Props.SetText(goical.PropDescription, t.Description)
	}
	comp.Props.SetDateTime(goical.PropDateTimeStart, t.StartTime)
	comp.Props.SetDateTime(goical.PropDue, t.DueDate)
	comp.Props.SetDateTime(goical.PropDateTimeStamp, time.Now())
	if t.IsCompleted {
		comp.Props.SetText(goical.PropStatus, "COMPLETED")
	}
	return comp
}

// ImportEvents parses VEVENT components from an iCalendar stream into
// events. Components without both start and end times are skipped;
// nothing else is filtered.
func ImportEvents(r io.Reader) ([]*models.Event, error) {
	decoder := goical.NewDecoder(r)

	var events []*models.Event
	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != goical.CompEvent {
				continue
			}

			event := &models.Event{
				ItemBase: models.ItemBase{Priority: models.PriorityMedium},
			}
			if prop := comp.Props.Get(goical.PropUID); prop != nil {
				event.ID = prop.Value
			}
			if prop := comp.Props.Get(goical.PropSummary); prop != nil {
				event.Title = prop.Value
			}
			if prop := comp.Props.Get(goical.PropDescription); prop != nil {
				event.Description = prop.Value
			}
			if prop := comp.Props.Get(goical.PropDateTimeStart); prop != nil {
				if t, err := prop.DateTime(time.Local); err == nil {
					event.StartTime = t.In(time.Local)
				}
			}
			if prop := comp.Props.Get(goical.PropDateTimeEnd); prop != nil {
				if t, err := prop.DateTime(time.Local); err == nil {
					event.EndTime = t.In(time.Local)
				}
			}

			if event.StartTime.IsZero() || event.EndTime.IsZero() {
				continue
			}
			events = append(events, event)
		}
	}
	return events, nil
}
