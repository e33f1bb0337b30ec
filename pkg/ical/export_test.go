package ical

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/borgmon/timestack/pkg/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

	items := []models.CalendarItem{
		&models.Event{
			ItemBase:  models.ItemBase{ID: "ev-1", Title: "Design review", Description: "bring mockups", Priority: models.PriorityHigh},
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		},
		&models.Appointment{
			ItemBase:              models.ItemBase{ID: "ap-1", Title: "Dentist", Priority: models.PriorityMedium},
			StartTime:             start.Add(5 * time.Hour),
			EndTime:               start.Add(6 * time.Hour),
			ReminderEnabled:       true,
			ReminderMinutesBefore: 30,
		},
	}

	var buf bytes.Buffer
	if err := Export(&buf, items); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	events, err := ImportEvents(&buf)
	if err != nil {
		t.Fatalf("ImportEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("imported %d events, want 2", len(events))
	}

	byID := make(map[string]*models.Event)
	for _, e := range events {
		byID[e.ID] = e
	}

	ev := byID["ev-1"]
	if ev == nil {
		t.Fatal("event ev-1 missing from import")
	}
	if ev.Title != "Design review" || ev.Description != "bring mockups" {
		t.Errorf("event fields lost: %+v", ev)
	}
	if !ev.StartTime.Equal(start) || !ev.EndTime.Equal(start.Add(time.Hour)) {
		t.Errorf("event times drifted: %v - %v", ev.StartTime, ev.EndTime)
	}

	// The appointment comes back as a plain event; reminder fields are
	// not part of the export.
	if byID["ap-1"] == nil {
		t.Error("appointment ap-1 missing from import")
	}
}

func TestExportTasksAsTodos(t *testing.T) {
	start := time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local)

	items := []models.CalendarItem{
		&models.Task{
			ItemBase:    models.ItemBase{ID: "tk-1", Title: "File expenses", Priority: models.PriorityLow},
			StartTime:   start,
			DueDate:     start.AddDate(0, 0, 1),
			IsCompleted: true,
		},
	}

	var buf bytes.Buffer
	if err := Export(&buf, items); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "BEGIN:VTODO") {
		t.Error("task was not exported as VTODO")
	}
	if !strings.Contains(out, "SUMMARY:File expenses") {
		t.Error("task summary missing")
	}
	if !strings.Contains(out, "STATUS:COMPLETED") {
		t.Error("completed status missing")
	}

	// VTODOs are not events and must not come back from ImportEvents.
	events, err := ImportEvents(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ImportEvents failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("imported %d events from a todo-only calendar, want 0", len(events))
	}
}
