package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/borgmon/timestack/pkg/models"
	"github.com/google/uuid"
)

func toMillis(t time.Time) int64    { return t.UnixMilli() }
func fromMillis(ms int64) time.Time { return time.UnixMilli(ms) }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// CreateEvent inserts a new event, assigning its identity and
// timestamps. An inverted range is clamped to a zero-length one.
func (s *Store) CreateEvent(ctx context.Context, e *models.Event) error {
	e.ID = uuid.New().String()
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.EndTime.Before(e.StartTime) {
		e.EndTime = e.StartTime
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, title, description, priority, start_time, end_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Description, e.Priority,
		toMillis(e.StartTime), toMillis(e.EndTime), toMillis(now), toMillis(now))
	if err != nil {
		s.log.Error().Err(err).Str("event_id", e.ID).Msg("failed to create event")
		return err
	}
	return nil
}

// GetEvent retrieves an event by id
func (s *Store) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, COALESCE(description, ''), priority, start_time, end_time, created_at, updated_at
		FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

// ListEvents returns all events ordered by start time
func (s *Store) ListEvents(ctx context.Context) ([]*models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, COALESCE(description, ''), priority, start_time, end_time, created_at, updated_at
		FROM events ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanEvent(row scannable) (*models.Event, error) {
	var e models.Event
	var start, end, created, updated int64
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Priority, &start, &end, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	e.StartTime = fromMillis(start)
	e.EndTime = fromMillis(end)
	e.CreatedAt = fromMillis(created)
	e.UpdatedAt = fromMillis(updated)
	return &e, nil
}

// UpdateEvent applies the non-nil fields of the partial update and
// refreshes updated_at. Inverted time ranges are corrected by clamping
// end_time to start_time rather than rejected.
func (s *Store) UpdateEvent(ctx context.Context, id string, u models.EventUpdate) error {
	set := []string{}
	args := []any{}

	if u.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Priority != nil {
		set = append(set, "priority = ?")
		args = append(args, *u.Priority)
	}
	if u.StartTime != nil {
		set = append(set, "start_time = ?")
		args = append(args, toMillis(*u.StartTime))
	}
	if u.EndTime != nil {
		set = append(set, "end_time = ?")
		args = append(args, toMillis(*u.EndTime))
	}

	return s.applyUpdate(ctx, "events", id, set, args, true)
}

// DeleteEvent removes an event permanently
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "events", id)
}

// CreateTask inserts a new task, assigning its identity and timestamps
func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	t.ID = uuid.New().String()
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, priority, start_time, due_date, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Priority,
		toMillis(t.StartTime), toMillis(t.DueDate), boolToInt(t.IsCompleted),
		toMillis(now), toMillis(now))
	if err != nil {
		s.log.Error().Err(err).Str("task_id", t.ID).Msg("failed to create task")
		return err
	}
	return nil
}

// GetTask retrieves a task by id
func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, COALESCE(description, ''), priority, start_time, due_date, is_completed, created_at, updated_at
		FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

// ListTasks returns all tasks ordered by due date
func (s *Store) ListTasks(ctx context.Context) ([]*models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, COALESCE(description, ''), priority, start_time, due_date, is_completed, created_at, updated_at
		FROM tasks ORDER BY due_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row scannable) (*models.Task, error) {
	var t models.Task
	var start, due, created, updated int64
	var completed int
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &start, &due, &completed, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.StartTime = fromMillis(start)
	t.DueDate = fromMillis(due)
	t.IsCompleted = completed != 0
	t.CreatedAt = fromMillis(created)
	t.UpdatedAt = fromMillis(updated)
	return &t, nil
}

// UpdateTask applies the non-nil fields of the partial update
func (s *Store) UpdateTask(ctx context.Context, id string, u models.TaskUpdate) error {
	set := []string{}
	args := []any{}

	if u.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Priority != nil {
		set = append(set, "priority = ?")
		args = append(args, *u.Priority)
	}
	if u.StartTime != nil {
		set = append(set, "start_time = ?")
		args = append(args, toMillis(*u.StartTime))
	}
	if u.DueDate != nil {
		set = append(set, "due_date = ?")
		args = append(args, toMillis(*u.DueDate))
	}
	if u.IsCompleted != nil {
		set = append(set, "is_completed = ?")
		args = append(args, boolToInt(*u.IsCompleted))
	}

	return s.applyUpdate(ctx, "tasks", id, set, args, false)
}

// ToggleTaskComplete flips the completion flag of a task
func (s *Store) ToggleTaskComplete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET is_completed = 1 - is_completed, updated_at = ? WHERE id = ?`,
		toMillis(time.Now()), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteTask removes a task permanently
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "tasks", id)
}

// CreateAppointment inserts a new appointment, assigning its identity
// and timestamps. ReminderSent always starts false.
func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	a.ID = uuid.New().String()
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.ReminderSent = false
	if a.EndTime.Before(a.StartTime) {
		a.EndTime = a.StartTime
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments (id, title, description, priority, start_time, end_time,
			reminder_enabled, reminder_minutes_before, reminder_sent, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		a.ID, a.Title, a.Description, a.Priority,
		toMillis(a.StartTime), toMillis(a.EndTime),
		boolToInt(a.ReminderEnabled), a.ReminderMinutesBefore,
		toMillis(now), toMillis(now))
	if err != nil {
		s.log.Error().Err(err).Str("appointment_id", a.ID).Msg("failed to create appointment")
		return err
	}
	return nil
}

// GetAppointment retrieves an appointment by id
func (s *Store) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	row := s.db.QueryRowContext(ctx, appointmentSelect+` WHERE id = ?`, id)
	return scanAppointment(row)
}

const appointmentSelect = `
	SELECT id, title, COALESCE(description, ''), priority, start_time, end_time,
		reminder_enabled, reminder_minutes_before, reminder_sent, created_at, updated_at
	FROM appointments`

// ListAppointments returns all appointments ordered by start time
func (s *Store) ListAppointments(ctx context.Context) ([]*models.Appointment, error) {
	return s.queryAppointments(ctx, appointmentSelect+` ORDER BY start_time`)
}

// ListPendingReminders returns appointments whose reminder is enabled
// and has not fired yet.
func (s *Store) ListPendingReminders(ctx context.Context) ([]*models.Appointment, error) {
	return s.queryAppointments(ctx,
		appointmentSelect+` WHERE reminder_enabled = 1 AND reminder_sent = 0 ORDER BY start_time`)
}

func (s *Store) queryAppointments(ctx context.Context, query string, args ...any) ([]*models.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func scanAppointment(row scannable) (*models.Appointment, error) {
	var a models.Appointment
	var start, end, created, updated int64
	var enabled, sent int
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Priority, &start, &end,
		&enabled, &a.ReminderMinutesBefore, &sent, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.StartTime = fromMillis(start)
	a.EndTime = fromMillis(end)
	a.ReminderEnabled = enabled != 0
	a.ReminderSent = sent != 0
	a.CreatedAt = fromMillis(created)
	a.UpdatedAt = fromMillis(updated)
	return &a, nil
}

// UpdateAppointment applies the non-nil fields of the partial update.
// Moving an appointment re-arms its reminder.
func (s *Store) UpdateAppointment(ctx context.Context, id string, u models.AppointmentUpdate) error {
	set := []string{}
	args := []any{}

	if u.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Priority != nil {
		set = append(set, "priority = ?")
		args = append(args, *u.Priority)
	}
	if u.StartTime != nil {
		set = append(set, "start_time = ?", "reminder_sent = 0")
		args = append(args, toMillis(*u.StartTime))
	}
	if u.EndTime != nil {
		set = append(set, "end_time = ?")
		args = append(args, toMillis(*u.EndTime))
	}
	if u.ReminderEnabled != nil {
		set = append(set, "reminder_enabled = ?")
		args = append(args, boolToInt(*u.ReminderEnabled))
	}
	if u.ReminderMinutesBefore != nil {
		set = append(set, "reminder_minutes_before = ?")
		args = append(args, *u.ReminderMinutesBefore)
	}
	if u.ReminderSent != nil {
		set = append(set, "reminder_sent = ?")
		args = append(args, boolToInt(*u.ReminderSent))
	}

	return s.applyUpdate(ctx, "appointments", id, set, args, true)
}

// MarkReminderSent records that the appointment's reminder has fired
func (s *Store) MarkReminderSent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE appointments SET reminder_sent = 1, updated_at = ? WHERE id = ?`,
		toMillis(time.Now()), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteAppointment removes an appointment permanently
func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "appointments", id)
}

// ConvertAppointmentToEvent copies the shared fields of an appointment
// into a new event and deletes the appointment, atomically. The
// reminder fields are dropped; the conversion is one-way.
func (s *Store) ConvertAppointmentToEvent(ctx context.Context, id string) (string, error) {
	appt, err := s.GetAppointment(ctx, id)
	if err != nil {
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	eventID := uuid.New().String()
	now := toMillis(time.Now())
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO events (id, title, description, priority, start_time, end_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		eventID, appt.Title, appt.Description, appt.Priority,
		toMillis(appt.StartTime), toMillis(appt.EndTime), now, now); err != nil {
		return "", fmt.Errorf("failed to create event from appointment: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id); err != nil {
		return "", fmt.Errorf("failed to delete converted appointment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	s.log.Info().Str("appointment_id", id).Str("event_id", eventID).Msg("appointment converted to event")
	return eventID, nil
}

// ListItems returns a snapshot of every calendar item for layout
func (s *Store) ListItems(ctx context.Context) ([]models.CalendarItem, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := s.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.CalendarItem, 0, len(events)+len(tasks)+len(appointments))
	for _, e := range events {
		items = append(items, e)
	}
	for _, t := range tasks {
		items = append(items, t)
	}
	for _, a := range appointments {
		items = append(items, a)
	}
	return items, nil
}

// ListItemsInRange returns all items starting within [from, to)
func (s *Store) ListItemsInRange(ctx context.Context, from, to time.Time) ([]models.CalendarItem, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.CalendarItem
	for _, item := range items {
		start := item.Start()
		if !start.Before(from) && start.Before(to) {
			out = append(out, item)
		}
	}
	return out, nil
}

// applyUpdate runs a partial UPDATE built from set clauses, always
// refreshing updated_at. When clampEnd is set, an end_time that lands
// before start_time is corrected to start_time afterwards so the store
// never holds an inverted range.
func (s *Store) applyUpdate(ctx context.Context, table, id string, set []string, args []any, clampEnd bool) error {
	set = append(set, "updated_at = ?")
	args = append(args, toMillis(time.Now()), id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(set, ", "))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.log.Error().Err(err).Str("table", table).Str("id", id).Msg("failed to update item")
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}

	if clampEnd {
		query := fmt.Sprintf("UPDATE %s SET end_time = start_time WHERE id = ? AND end_time < start_time", table)
		if _, err := s.db.ExecContext(ctx, query, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) deleteRow(ctx context.Context, table, id string) error {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
