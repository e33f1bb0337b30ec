package report

import (
	"strings"
	"testing"
	"time"

	"github.com/borgmon/timestack/pkg/models"
)

func TestBuildUserPrompt(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	items := []models.CalendarItem{
		&models.Event{
			ItemBase:  models.ItemBase{ID: "e1", Title: "Design review", Description: "bring mockups"},
			StartTime: day.Add(9 * time.Hour),
			EndTime:   day.Add(10 * time.Hour),
		},
		&models.Task{
			ItemBase:    models.ItemBase{ID: "t1", Title: "File expenses"},
			StartTime:   day.Add(8 * time.Hour),
			DueDate:     day.AddDate(0, 0, 1).Add(17 * time.Hour),
			IsCompleted: true,
		},
		&models.Appointment{
			ItemBase:  models.ItemBase{ID: "a1", Title: "Dentist"},
			StartTime: day.Add(14 * time.Hour),
			EndTime:   day.Add(15 * time.Hour),
		},
	}

	got := BuildUserPrompt(items, day, day.AddDate(0, 0, 1))

	wantLines := []string{
		"Work items from 2024-03-15 to 2024-03-15:",
		"- [event] Design review (2024-03-15 09:00-10:00): bring mockups",
		"- [task, completed] File expenses (2024-03-15, due 2024-03-16 17:00)",
		"- [appointment] Dentist (2024-03-15 14:00-15:00)",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line) {
			t.Errorf("prompt missing %q\ngot:\n%s", line, got)
		}
	}
}

func TestBuildUserPromptEmpty(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	got := BuildUserPrompt(nil, day, day.AddDate(0, 0, 1))
	if !strings.Contains(got, "(no items recorded in this range)") {
		t.Errorf("empty prompt = %q", got)
	}
}
