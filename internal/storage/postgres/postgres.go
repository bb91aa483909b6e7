// Package postgres реализует хранилище поверх PostgreSQL (pgx).
package postgres

import (
	"context"

	"github.com/fdg312/meal-hub/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage — Postgres реализация всех саб-хранилищ.
type PostgresStorage struct {
	pool          *pgxpool.Pool
	dailyLogs     *PostgresDailyLogStorage
	settings      *PostgresSettingsStorage
	targets       *PostgresTargetsStorage
	subscriptions *PostgresSubscriptionsStorage
	nagState      *PostgresNagStateStorage
}

// New создаёт PostgresStorage и проверяет соединение
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &PostgresStorage{
		pool:          pool,
		dailyLogs:     NewPostgresDailyLogStorage(pool),
		settings:      NewPostgresSettingsStorage(pool),
		targets:       NewPostgresTargetsStorage(pool),
		subscriptions: NewPostgresSubscriptionsStorage(pool),
		nagState:      NewPostgresNagStateStorage(pool),
	}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// GetDailyLogStorage returns the daily log storage
func (p *PostgresStorage) GetDailyLogStorage() storage.DailyLogStorage {
	return p.dailyLogs
}

// GetSettingsStorage returns the reminder settings storage
func (p *PostgresStorage) GetSettingsStorage() storage.SettingsStorage {
	return p.settings
}

// GetTargetsStorage returns the daily targets storage
func (p *PostgresStorage) GetTargetsStorage() storage.TargetsStorage {
	return p.targets
}

// GetSubscriptionsStorage returns the push subscriptions storage
func (p *PostgresStorage) GetSubscriptionsStorage() storage.SubscriptionsStorage {
	return p.subscriptions
}

// GetNagStateStorage returns the reminder debounce state storage
func (p *PostgresStorage) GetNagStateStorage() storage.NagStateStorage {
	return p.nagState
}
