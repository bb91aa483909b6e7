package postgres

import (
	"context"

	"github.com/fdg312/meal-hub/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSubscriptionsStorage — Postgres хранилище push-подписок.
type PostgresSubscriptionsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresSubscriptionsStorage(pool *pgxpool.Pool) *PostgresSubscriptionsStorage {
	return &PostgresSubscriptionsStorage{pool: pool}
}

func (s *PostgresSubscriptionsStorage) ListSubscriptions(ctx context.Context) ([]storage.Subscription, error) {
	query := `
		SELECT id, endpoint, p256dh, auth, created_at
		FROM push_subscriptions
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []storage.Subscription{}
	for rows.Next() {
		var sub storage.Subscription
		err := rows.Scan(
			&sub.ID,
			&sub.Endpoint,
			&sub.P256dh,
			&sub.Auth,
			&sub.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

func (s *PostgresSubscriptionsStorage) UpsertSubscription(ctx context.Context, sub storage.Subscription) error {
	query := `
		INSERT INTO push_subscriptions (id, endpoint, p256dh, auth, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			endpoint = EXCLUDED.endpoint,
			p256dh = EXCLUDED.p256dh,
			auth = EXCLUDED.auth
	`

	_, err := s.pool.Exec(ctx, query,
		sub.ID,
		sub.Endpoint,
		sub.P256dh,
		sub.Auth,
		sub.CreatedAt,
	)

	return err
}

func (s *PostgresSubscriptionsStorage) DeleteSubscription(ctx context.Context, id string) error {
	query := `DELETE FROM push_subscriptions WHERE id = $1`

	_, err := s.pool.Exec(ctx, query, id)
	return err
}
