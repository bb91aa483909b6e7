package memory

import (
	"context"
	"sync"
	"time"
)

type nagKey struct {
	date   string
	slotID string
}

// NagStateMemoryStorage — in-memory хранилище времени последнего
// напоминания по паре (дата, слот). Используется для дебаунса.
type NagStateMemoryStorage struct {
	mu    sync.RWMutex
	state map[nagKey]time.Time
}

func NewNagStateMemoryStorage() *NagStateMemoryStorage {
	return &NagStateMemoryStorage{
		state: make(map[nagKey]time.Time),
	}
}

// GetLastSent возвращает время последнего напоминания для слота на дату.
func (s *NagStateMemoryStorage) GetLastSent(_ context.Context, date, slotID string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.state[nagKey{date: date, slotID: slotID}]
	return t, ok, nil
}

// SetLastSent фиксирует время последнего напоминания для слота на дату.
func (s *NagStateMemoryStorage) SetLastSent(_ context.Context, date, slotID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state[nagKey{date: date, slotID: slotID}] = sentAt
	return nil
}
