package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fdg312/meal-hub/internal/storage"
)

// SettingsMemoryStorage — in-memory хранилище настроек напоминаний.
// Настройки single-tenant: хранится одна запись.
type SettingsMemoryStorage struct {
	mu       sync.RWMutex
	settings storage.Settings
	present  bool
}

func NewSettingsMemoryStorage() *SettingsMemoryStorage {
	return &SettingsMemoryStorage{}
}

// GetSettings возвращает сохраненные настройки; found=false до первого Upsert.
func (s *SettingsMemoryStorage) GetSettings(_ context.Context) (storage.Settings, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.present {
		return storage.Settings{}, false, nil
	}
	return copySettings(s.settings), true, nil
}

// UpsertSettings сохраняет настройки и возвращает актуальное состояние.
func (s *SettingsMemoryStorage) UpsertSettings(_ context.Context, st storage.Settings) (storage.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.UpdatedAt = time.Now()
	s.settings = copySettings(st)
	s.present = true
	return copySettings(s.settings), nil
}

func copySettings(st storage.Settings) storage.Settings {
	out := st
	if st.Meals != nil {
		out.Meals = append([]storage.MealSlot(nil), st.Meals...)
	}
	return out
}
