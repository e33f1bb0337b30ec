package store

import (
	"context"
	"time"

	"github.com/borgmon/timestack/pkg/report"
)

// Settings is the singleton application configuration row
type Settings struct {
	Theme         string
	LLMAPIKey     string
	LLMBaseURL    string
	LLMModelName  string
	ReportDaily   string
	ReportWeekly  string
	ReportMonthly string
	ReportYearly  string
	UpdatedAt     time.Time
}

// ensureSettings seeds the settings row on first run
func (s *Store) ensureSettings() error {
	var id int
	err := s.db.QueryRow(`SELECT id FROM settings WHERE id = 1`).Scan(&id)
	if err == nil {
		return nil
	}

	_, err = s.db.Exec(`
		INSERT INTO settings (id, theme, llm_api_key, llm_base_url, llm_model_name,
			report_daily, report_weekly, report_monthly, report_yearly, updated_at)
		VALUES (1, 'system', '', '', '', ?, ?, ?, ?, ?)`,
		report.TemplateDaily, report.TemplateWeekly, report.TemplateMonthly, report.TemplateYearly,
		toMillis(time.Now()))
	if err != nil {
		s.log.Error().Err(err).Msg("failed to seed settings")
	}
	return err
}

// LoadSettings reads the settings row
func (s *Store) LoadSettings(ctx context.Context) (*Settings, error) {
	var st Settings
	var updated int64
	err := s.db.QueryRowContext(ctx, `
		SELECT theme, llm_api_key, llm_base_url, llm_model_name,
			report_daily, report_weekly, report_monthly, report_yearly, updated_at
		FROM settings WHERE id = 1`).Scan(
		&st.Theme, &st.LLMAPIKey, &st.LLMBaseURL, &st.LLMModelName,
		&st.ReportDaily, &st.ReportWeekly, &st.ReportMonthly, &st.ReportYearly, &updated)
	if err != nil {
		return nil, err
	}
	st.UpdatedAt = fromMillis(updated)
	return &st, nil
}

// SaveSettings overwrites the settings row
func (s *Store) SaveSettings(ctx context.Context, st *Settings) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE settings SET theme = ?, llm_api_key = ?, llm_base_url = ?, llm_model_name = ?,
			report_daily = ?, report_weekly = ?, report_monthly = ?, report_yearly = ?, updated_at = ?
		WHERE id = 1`,
		st.Theme, st.LLMAPIKey, st.LLMBaseURL, st.LLMModelName,
		st.ReportDaily, st.ReportWeekly, st.ReportMonthly, st.ReportYearly,
		toMillis(time.Now()))
	if err != nil {
		s.log.Error().Err(err).Msg("failed to save settings")
	}
	return err
}
