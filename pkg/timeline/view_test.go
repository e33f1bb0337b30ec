package timeline

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestViewDates(t *testing.T) {
	friday := date(2024, 3, 15) // a Friday

	tests := []struct {
		name   string
		mode   ViewMode
		anchor time.Time
		want   []time.Time
	}{
		{
			name:   "day view is just the anchor",
			mode:   ViewDay,
			anchor: friday,
			want:   []time.Time{date(2024, 3, 15)},
		},
		{
			name:   "week view starts on Monday",
			mode:   ViewWeek,
			anchor: friday,
			want: []time.Time{
				date(2024, 3, 11), date(2024, 3, 12), date(2024, 3, 13),
				date(2024, 3, 14), date(2024, 3, 15), date(2024, 3, 16),
				date(2024, 3, 17),
			},
		},
		{
			name:   "week view on a Sunday stays in the same week",
			mode:   ViewWeek,
			anchor: date(2024, 3, 17),
			want: []time.Time{
				date(2024, 3, 11), date(2024, 3, 12), date(2024, 3, 13),
				date(2024, 3, 14), date(2024, 3, 15), date(2024, 3, 16),
				date(2024, 3, 17),
			},
		},
		{
			name:   "week view on a Monday starts at the anchor",
			mode:   ViewWeek,
			anchor: date(2024, 3, 11),
			want: []time.Time{
				date(2024, 3, 11), date(2024, 3, 12), date(2024, 3, 13),
				date(2024, 3, 14), date(2024, 3, 15), date(2024, 3, 16),
				date(2024, 3, 17),
			},
		},
		{
			name:   "next 4 days",
			mode:   ViewNext4Days,
			anchor: friday,
			want: []time.Time{
				date(2024, 3, 15), date(2024, 3, 16),
				date(2024, 3, 17), date(2024, 3, 18),
			},
		},
		{
			name:   "around 5 days centers the anchor",
			mode:   ViewAround5Day,
			anchor: friday,
			want: []time.Time{
				date(2024, 3, 13), date(2024, 3, 14), date(2024, 3, 15),
				date(2024, 3, 16), date(2024, 3, 17),
			},
		},
		{
			name:   "around 5 days crosses month boundary",
			mode:   ViewAround5Day,
			anchor: date(2024, 3, 1),
			want: []time.Time{
				date(2024, 2, 28), date(2024, 2, 29), date(2024, 3, 1),
				date(2024, 3, 2), date(2024, 3, 3),
			},
		},
		{
			name:   "unknown mode falls back to day",
			mode:   ViewMode("bogus"),
			anchor: friday,
			want:   []time.Time{date(2024, 3, 15)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ViewDates(tt.mode, tt.anchor)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d days, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !got[i].Equal(tt.want[i]) {
					t.Errorf("day[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestViewDatesNormalizesAnchor(t *testing.T) {
	noon := time.Date(2024, 3, 15, 12, 30, 0, 0, time.Local)

	got := ViewDates(ViewDay, noon)
	if got[0].Hour() != 0 || got[0].Minute() != 0 {
		t.Errorf("anchor not normalized to midnight: %v", got[0])
	}
}

func TestViewDatesDeterministic(t *testing.T) {
	anchor := date(2024, 3, 15)

	for _, mode := range ViewModes {
		first := ViewDates(mode, anchor)
		second := ViewDates(mode, anchor)
		for i := range first {
			if !first[i].Equal(second[i]) {
				t.Errorf("%s: call history changed the output", mode)
			}
		}
	}
}
