package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresNagStateStorage — Postgres хранилище дебаунс-состояния
// напоминаний: время последней отправки по паре (дата, слот).
type PostgresNagStateStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresNagStateStorage(pool *pgxpool.Pool) *PostgresNagStateStorage {
	return &PostgresNagStateStorage{pool: pool}
}

func (s *PostgresNagStateStorage) GetLastSent(ctx context.Context, date, slotID string) (time.Time, bool, error) {
	query := `
		SELECT last_sent_at
		FROM nag_state
		WHERE date = $1 AND slot_id = $2
	`

	var lastSent time.Time
	err := s.pool.QueryRow(ctx, query, date, slotID).Scan(&lastSent)

	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	return lastSent, true, nil
}

func (s *PostgresNagStateStorage) SetLastSent(ctx context.Context, date, slotID string, sentAt time.Time) error {
	query := `
		INSERT INTO nag_state (date, slot_id, last_sent_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (date, slot_id) DO UPDATE SET
			last_sent_at = EXCLUDED.last_sent_at
	`

	_, err := s.pool.Exec(ctx, query, date, slotID, sentAt)
	return err
}
