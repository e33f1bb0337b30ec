package models

import "time"

// Kind discriminates the three calendar item variants
type Kind string

const (
	KindEvent       Kind = "event"
	KindTask        Kind = "task"
	KindAppointment Kind = "appointment"
)

// Priority levels shared by all item kinds
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ItemBase holds the fields shared by all calendar item variants
type ItemBase struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Event is a fixed-duration block on the timeline
type Event struct {
	ItemBase
	StartTime time.Time
	EndTime   time.Time // always >= StartTime
}

// Task is a point-in-time marker with an informational due date.
// DueDate does not affect layout; tasks render at a fixed height.
type Task struct {
	ItemBase
	StartTime   time.Time
	DueDate     time.Time
	IsCompleted bool
}

// Appointment is an event with a reminder attached
type Appointment struct {
	ItemBase
	StartTime             time.Time
	EndTime               time.Time // always >= StartTime
	ReminderEnabled       bool
	ReminderMinutesBefore int
	ReminderSent          bool
}

// CalendarItem is the tagged union over Event, Task and Appointment.
// Consumers switch on Kind (or the concrete type) exactly once.
type CalendarItem interface {
	ItemID() string
	Kind() Kind
	Start() time.Time
	ItemTitle() string
}

func (e *Event) ItemID() string        { return e.ID }
func (e *Event) Kind() Kind            { return KindEvent }
func (e *Event) Start() time.Time      { return e.StartTime }
func (e *Event) ItemTitle() string     { return e.Title }
func (e *Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

func (t *Task) ItemID() string    { return t.ID }
func (t *Task) Kind() Kind        { return KindTask }
func (t *Task) Start() time.Time  { return t.StartTime }
func (t *Task) ItemTitle() string { return t.Title }

func (a *Appointment) ItemID() string    { return a.ID }
func (a *Appointment) Kind() Kind        { return KindAppointment }
func (a *Appointment) Start() time.Time  { return a.StartTime }
func (a *Appointment) ItemTitle() string { return a.Title }
func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// ReminderTime returns when the appointment's reminder should fire
func (a *Appointment) ReminderTime() time.Time {
	return a.StartTime.Add(-time.Duration(a.ReminderMinutesBefore) * time.Minute)
}

// EventUpdate is a partial update; only non-nil fields are applied
type EventUpdate struct {
	Title       *string
	Description *string
	Priority    *Priority
	StartTime   *time.Time
	EndTime     *time.Time
}

// TaskUpdate is a partial update; only non-nil fields are applied
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *Priority
	StartTime   *time.Time
	DueDate     *time.Time
	IsCompleted *bool
}

// AppointmentUpdate is a partial update; only non-nil fields are applied
type AppointmentUpdate struct {
	Title                 *string
	Description           *string
	Priority              *Priority
	StartTime             *time.Time
	EndTime               *time.Time
	ReminderEnabled       *bool
	ReminderMinutesBefore *int
	ReminderSent          *bool
}
