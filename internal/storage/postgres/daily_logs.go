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

// PostgresDailyLogStorage — Postgres хранилище дневных журналов.
// Чек-ины, накопленное потребление и записи о приёмах пищи хранятся
// JSONB-колонками, строка на дату.
type PostgresDailyLogStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresDailyLogStorage(pool *pgxpool.Pool) *PostgresDailyLogStorage {
	return &PostgresDailyLogStorage{pool: pool}
}

func (s *PostgresDailyLogStorage) GetDailyLog(ctx context.Context, date string) (storage.DailyLog, bool, error) {
	query := `
		SELECT date, checkins, consumed, entries, created_at, updated_at
		FROM daily_logs
		WHERE date = $1
	`

	var (
		dl           storage.DailyLog
		checkinsJSON []byte
		consumedJSON []byte
		entriesJSON  []byte
	)

	err := s.pool.QueryRow(ctx, query, date).Scan(
		&dl.Date,
		&checkinsJSON,
		&consumedJSON,
		&entriesJSON,
		&dl.CreatedAt,
		&dl.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return storage.DailyLog{}, false, nil
	}
	if err != nil {
		return storage.DailyLog{}, false, err
	}

	if err := json.Unmarshal(checkinsJSON, &dl.Checkins); err != nil {
		return storage.DailyLog{}, false, err
	}
	if err := json.Unmarshal(consumedJSON, &dl.Consumed); err != nil {
		return storage.DailyLog{}, false, err
	}
	if err := json.Unmarshal(entriesJSON, &dl.Entries); err != nil {
		return storage.DailyLog{}, false, err
	}

	return dl, true, nil
}

func (s *PostgresDailyLogStorage) PutDailyLog(ctx context.Context, dl storage.DailyLog) error {
	if dl.Checkins == nil {
		dl.Checkins = map[string]bool{}
	}
	if dl.Entries == nil {
		dl.Entries = []storage.LogEntry{}
	}

	checkinsJSON, err := json.Marshal(dl.Checkins)
	if err != nil {
		return err
	}
	consumedJSON, err := json.Marshal(dl.Consumed)
	if err != nil {
		return err
	}
	entriesJSON, err := json.Marshal(dl.Entries)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO daily_logs (date, checkins, consumed, entries, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (date) DO UPDATE SET
			checkins = EXCLUDED.checkins,
			consumed = EXCLUDED.consumed,
			entries = EXCLUDED.entries,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.pool.Exec(ctx, query,
		dl.Date,
		checkinsJSON,
		consumedJSON,
		entriesJSON,
		time.Now(),
	)

	return err
}
