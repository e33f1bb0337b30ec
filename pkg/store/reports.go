package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Report is a persisted LLM-generated activity summary
type Report struct {
	ID        string
	Type      string // daily, weekly, monthly, yearly
	Content   string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// SaveReport persists a finished report
func (s *Store) SaveReport(ctx context.Context, r *Report) error {
	r.ID = uuid.New().String()
	r.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, type, content, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Type, r.Content,
		toMillis(r.StartDate), toMillis(r.EndDate), toMillis(r.CreatedAt))
	if err != nil {
		s.log.Error().Err(err).Str("type", r.Type).Msg("failed to save report")
	}
	return err
}

// ListReports returns all saved reports, newest first
func (s *Store) ListReports(ctx context.Context) ([]*Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, content, start_date, end_date, created_at
		FROM reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		var r Report
		var start, end, created int64
		if err := rows.Scan(&r.ID, &r.Type, &r.Content, &start, &end, &created); err != nil {
			return nil, err
		}
		r.StartDate = fromMillis(start)
		r.EndDate = fromMillis(end)
		r.CreatedAt = fromMillis(created)
		reports = append(reports, &r)
	}
	return reports, rows.Err()
}

// DeleteReport removes a saved report
func (s *Store) DeleteReport(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "reports", id)
}
