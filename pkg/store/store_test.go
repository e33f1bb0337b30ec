package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/borgmon/timestack/pkg/models"
	"github.com/borgmon/timestack/pkg/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func ptr[T any](v T) *T { return &v }

func TestEventCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	event := &models.Event{
		ItemBase:  models.ItemBase{Title: "Standup", Description: "daily sync", Priority: models.PriorityMedium},
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}

	if err := s.CreateEvent(ctx, event); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.ID == "" {
		t.Fatal("create did not assign an id")
	}

	got, err := s.GetEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.Title != "Standup" || !got.StartTime.Equal(start) {
		t.Errorf("got %+v", got)
	}

	// Partial update: only the title changes, times survive.
	if err := s.UpdateEvent(ctx, event.ID, models.EventUpdate{Title: ptr("Standup (moved)")}); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	got, _ = s.GetEvent(ctx, event.ID)
	if got.Title != "Standup (moved)" {
		t.Errorf("title = %q", got.Title)
	}
	if !got.StartTime.Equal(start) || !got.EndTime.Equal(start.Add(30*time.Minute)) {
		t.Errorf("times changed by unrelated update: %v - %v", got.StartTime, got.EndTime)
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Errorf("updated_at not refreshed: %v < %v", got.UpdatedAt, got.CreatedAt)
	}

	if err := s.DeleteEvent(ctx, event.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if _, err := s.GetEvent(ctx, event.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete err = %v, want ErrNotFound", err)
	}
}

func TestUpdateClampsInvertedRange(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	event := &models.Event{
		ItemBase:  models.ItemBase{Title: "Block", Priority: models.PriorityLow},
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}
	if err := s.CreateEvent(ctx, event); err != nil {
		t.Fatal(err)
	}

	// Push end_time before start_time: the store corrects it to a
	// zero-length range instead of rejecting the write.
	bad := start.Add(-time.Hour)
	if err := s.UpdateEvent(ctx, event.ID, models.EventUpdate{EndTime: &bad}); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	got, _ := s.GetEvent(ctx, event.ID)
	if !got.EndTime.Equal(got.StartTime) {
		t.Errorf("end = %v, want clamped to start %v", got.EndTime, got.StartTime)
	}
}

func TestUpdateMissingRow(t *testing.T) {
	s := openTestStore(t)

	err := s.UpdateEvent(context.Background(), "nope", models.EventUpdate{Title: ptr("x")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTaskToggleComplete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local)
	task := &models.Task{
		ItemBase:  models.ItemBase{Title: "File expenses", Priority: models.PriorityLow},
		StartTime: start,
		DueDate:   start.AddDate(0, 0, 1),
	}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	if err := s.ToggleTaskComplete(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTask(ctx, task.ID)
	if !got.IsCompleted {
		t.Error("task should be completed after toggle")
	}

	if err := s.ToggleTaskComplete(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetTask(ctx, task.ID)
	if got.IsCompleted {
		t.Error("task should be open after second toggle")
	}
}

func TestAppointmentReminderLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 3, 15, 14, 0, 0, 0, time.Local)
	appt := &models.Appointment{
		ItemBase:              models.ItemBase{Title: "Dentist", Priority: models.PriorityHigh},
		StartTime:             start,
		EndTime:               start.Add(time.Hour),
		ReminderEnabled:       true,
		ReminderMinutesBefore: 30,
	}
	if err := s.CreateAppointment(ctx, appt); err != nil {
		t.Fatal(err)
	}

	pending, err := s.ListPendingReminders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != appt.ID {
		t.Fatalf("pending = %v", pending)
	}

	if err := s.MarkReminderSent(ctx, appt.ID); err != nil {
		t.Fatal(err)
	}
	pending, _ = s.ListPendingReminders(ctx)
	if len(pending) != 0 {
		t.Errorf("pending after send = %d, want 0", len(pending))
	}

	// Moving the appointment re-arms its reminder.
	newStart := start.AddDate(0, 0, 1)
	if err := s.UpdateAppointment(ctx, appt.ID, models.AppointmentUpdate{StartTime: &newStart}); err != nil {
		t.Fatal(err)
	}
	pending, _ = s.ListPendingReminders(ctx)
	if len(pending) != 1 {
		t.Errorf("pending after move = %d, want 1", len(pending))
	}
}

func TestConvertAppointmentToEvent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 3, 15, 14, 0, 0, 0, time.Local)
	appt := &models.Appointment{
		ItemBase:              models.ItemBase{Title: "Contract signing", Description: "room 4", Priority: models.PriorityHigh},
		StartTime:             start,
		EndTime:               start.Add(time.Hour),
		ReminderEnabled:       true,
		ReminderMinutesBefore: 15,
	}
	if err := s.CreateAppointment(ctx, appt); err != nil {
		t.Fatal(err)
	}

	eventID, err := s.ConvertAppointmentToEvent(ctx, appt.ID)
	if err != nil {
		t.Fatalf("ConvertAppointmentToEvent: %v", err)
	}

	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("converted event missing: %v", err)
	}
	if event.Title != appt.Title || event.Description != appt.Description || event.Priority != appt.Priority {
		t.Errorf("shared fields not copied: %+v", event)
	}
	if !event.StartTime.Equal(appt.StartTime) || !event.EndTime.Equal(appt.EndTime) {
		t.Errorf("times not copied: %v - %v", event.StartTime, event.EndTime)
	}

	if _, err := s.GetAppointment(ctx, appt.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("appointment should be gone after conversion, err = %v", err)
	}

	// One-way: converting again fails.
	if _, err := s.ConvertAppointmentToEvent(ctx, appt.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second conversion err = %v, want ErrNotFound", err)
	}
}

func TestListItemsInRange(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	mk := func(title string, start time.Time) {
		e := &models.Event{
			ItemBase:  models.ItemBase{Title: title, Priority: models.PriorityMedium},
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		}
		if err := s.CreateEvent(ctx, e); err != nil {
			t.Fatal(err)
		}
	}
	mk("inside", day.Add(9*time.Hour))
	mk("before", day.Add(-2*time.Hour))
	mk("after", day.AddDate(0, 0, 1).Add(time.Hour))

	items, err := s.ListItemsInRange(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ItemTitle() != "inside" {
		t.Errorf("items = %v", items)
	}
}

func TestSettingsSeededAndSaved(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st, err := s.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if st.Theme != "system" {
		t.Errorf("default theme = %q", st.Theme)
	}
	if st.ReportDaily != report.TemplateDaily {
		t.Error("daily template not seeded")
	}

	st.Theme = "dark"
	st.LLMAPIKey = "sk-test"
	st.LLMModelName = "gpt-4o-mini"
	if err := s.SaveSettings(ctx, st); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	again, _ := s.LoadSettings(ctx)
	if again.Theme != "dark" || again.LLMAPIKey != "sk-test" {
		t.Errorf("settings not persisted: %+v", again)
	}
}

func TestReports(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	r := &Report{
		Type:      "daily",
		Content:   "# Daily report\n- did things",
		StartDate: day,
		EndDate:   day.AddDate(0, 0, 1),
	}
	if err := s.SaveReport(ctx, r); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	reports, err := s.ListReports(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 || reports[0].Content != r.Content {
		t.Errorf("reports = %v", reports)
	}

	if err := s.DeleteReport(ctx, r.ID); err != nil {
		t.Fatal(err)
	}
	reports, _ = s.ListReports(ctx)
	if len(reports) != 0 {
		t.Errorf("reports after delete = %d, want 0", len(reports))
	}
}
