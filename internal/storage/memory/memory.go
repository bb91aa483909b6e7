// Package memory реализует in-memory хранилище для локальной разработки и тестов.
package memory

import (
	"github.com/fdg312/meal-hub/internal/storage"
)

// MemoryStorage — корневое in-memory хранилище.
// Содержит все предметные саб-хранилища; данные живут до рестарта процесса.
type MemoryStorage struct {
	dailyLogs     *DailyLogMemoryStorage
	settings      *SettingsMemoryStorage
	targets       *TargetsMemoryStorage
	subscriptions *SubscriptionsMemoryStorage
	nagState      *NagStateMemoryStorage
}

// NewMemoryStorage создает новое in-memory хранилище
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		dailyLogs:     NewDailyLogMemoryStorage(),
		settings:      NewSettingsMemoryStorage(),
		targets:       NewTargetsMemoryStorage(),
		subscriptions: NewSubscriptionsMemoryStorage(),
		nagState:      NewNagStateMemoryStorage(),
	}
}

// Close закрывает хранилище (no-op для memory)
func (s *MemoryStorage) Close() error {
	return nil
}

// GetDailyLogStorage возвращает хранилище дневных журналов
func (s *MemoryStorage) GetDailyLogStorage() storage.DailyLogStorage {
	return s.dailyLogs
}

// GetSettingsStorage возвращает хранилище настроек напоминаний
func (s *MemoryStorage) GetSettingsStorage() storage.SettingsStorage {
	return s.settings
}

// GetTargetsStorage возвращает хранилище дневных целей
func (s *MemoryStorage) GetTargetsStorage() storage.TargetsStorage {
	return s.targets
}

// GetSubscriptionsStorage возвращает хранилище push-подписок
func (s *MemoryStorage) GetSubscriptionsStorage() storage.SubscriptionsStorage {
	return s.subscriptions
}

// GetNagStateStorage возвращает хранилище состояния напоминаний
func (s *MemoryStorage) GetNagStateStorage() storage.NagStateStorage {
	return s.nagState
}
