package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fdg312/meal-hub/internal/storage"
)

// TargetsMemoryStorage — in-memory хранилище дневных целей (single-tenant).
type TargetsMemoryStorage struct {
	mu      sync.RWMutex
	targets storage.Targets
	present bool
}

func NewTargetsMemoryStorage() *TargetsMemoryStorage {
	return &TargetsMemoryStorage{}
}

// GetTargets возвращает сохраненные цели; found=false до первого Upsert.
func (s *TargetsMemoryStorage) GetTargets(_ context.Context) (storage.Targets, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.present {
		return storage.Targets{}, false, nil
	}
	return s.targets, true, nil
}

// UpsertTargets сохраняет цели и возвращает актуальное состояние.
func (s *TargetsMemoryStorage) UpsertTargets(_ context.Context, t storage.Targets) (storage.Targets, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.UpdatedAt = time.Now()
	s.targets = t
	s.present = true
	return s.targets, nil
}
