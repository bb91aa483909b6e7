package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/fdg312/meal-hub/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTargetsStorage — Postgres хранилище дневных целей.
// Single-tenant: таблица держит одну строку с фиксированным id.
type PostgresTargetsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresTargetsStorage(pool *pgxpool.Pool) *PostgresTargetsStorage {
	return &PostgresTargetsStorage{pool: pool}
}

func (s *PostgresTargetsStorage) GetTargets(ctx context.Context) (storage.Targets, bool, error) {
	query := `
		SELECT protein_servings, veg_servings, carb_servings, snack_servings, water_ml, updated_at
		FROM daily_targets
		WHERE id = 1
	`

	var t storage.Targets
	err := s.pool.QueryRow(ctx, query).Scan(
		&t.ProteinServings,
		&t.VegServings,
		&t.CarbServings,
		&t.SnackServings,
		&t.WaterMl,
		&t.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return storage.Targets{}, false, nil
	}
	if err != nil {
		return storage.Targets{}, false, err
	}

	return t, true, nil
}

func (s *PostgresTargetsStorage) UpsertTargets(ctx context.Context, t storage.Targets) (storage.Targets, error) {
	t.UpdatedAt = time.Now()

	query := `
		INSERT INTO daily_targets (id, protein_servings, veg_servings, carb_servings, snack_servings, water_ml, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			protein_servings = EXCLUDED.protein_servings,
			veg_servings = EXCLUDED.veg_servings,
			carb_servings = EXCLUDED.carb_servings,
			snack_servings = EXCLUDED.snack_servings,
			water_ml = EXCLUDED.water_ml,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.pool.Exec(ctx, query,
		t.ProteinServings,
		t.VegServings,
		t.CarbServings,
		t.SnackServings,
		t.WaterMl,
		t.UpdatedAt,
	)
	if err != nil {
		return storage.Targets{}, err
	}

	return t, nil
}
