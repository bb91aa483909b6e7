package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fdg312/meal-hub/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSettingsStorage — Postgres хранилище настроек напоминаний.
// Single-tenant: таблица держит одну строку с фиксированным id.
type PostgresSettingsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresSettingsStorage(pool *pgxpool.Pool) *PostgresSettingsStorage {
	return &PostgresSettingsStorage{pool: pool}
}

func (s *PostgresSettingsStorage) GetSettings(ctx context.Context) (storage.Settings, bool, error) {
	query := `
		SELECT interval_minutes, quiet_start, quiet_end, meals, updated_at
		FROM reminder_settings
		WHERE id = 1
	`

	var (
		st        storage.Settings
		mealsJSON []byte
	)

	err := s.pool.QueryRow(ctx, query).Scan(
		&st.IntervalMinutes,
		&st.QuietHours.Start,
		&st.QuietHours.End,
		&mealsJSON,
		&st.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return storage.Settings{}, false, nil
	}
	if err != nil {
		return storage.Settings{}, false, err
	}

	if err := json.Unmarshal(mealsJSON, &st.Meals); err != nil {
		return storage.Settings{}, false, err
	}

	return st, true, nil
}

func (s *PostgresSettingsStorage) UpsertSettings(ctx context.Context, st storage.Settings) (storage.Settings, error) {
	if st.Meals == nil {
		st.Meals = []storage.MealSlot{}
	}
	mealsJSON, err := json.Marshal(st.Meals)
	if err != nil {
		return storage.Settings{}, err
	}

	st.UpdatedAt = time.Now()

	query := `
		INSERT INTO reminder_settings (id, interval_minutes, quiet_start, quiet_end, meals, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			interval_minutes = EXCLUDED.interval_minutes,
			quiet_start = EXCLUDED.quiet_start,
			quiet_end = EXCLUDED.quiet_end,
			meals = EXCLUDED.meals,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.pool.Exec(ctx, query,
		st.IntervalMinutes,
		st.QuietHours.Start,
		st.QuietHours.End,
		mealsJSON,
		st.UpdatedAt,
	)
	if err != nil {
		return storage.Settings{}, err
	}

	return st, nil
}
