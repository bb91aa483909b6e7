package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fdg312/meal-hub/internal/storage"
)

// SubscriptionsMemoryStorage — in-memory хранилище push-подписок.
// Ключ — детерминированный ID, производный от endpoint.
type SubscriptionsMemoryStorage struct {
	mu   sync.RWMutex
	subs map[string]storage.Subscription
}

func NewSubscriptionsMemoryStorage() *SubscriptionsMemoryStorage {
	return &SubscriptionsMemoryStorage{
		subs: make(map[string]storage.Subscription),
	}
}

// ListSubscriptions возвращает все подписки, отсортированные по ID.
func (s *SubscriptionsMemoryStorage) ListSubscriptions(_ context.Context) ([]storage.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpsertSubscription сохраняет подписку (повторная подписка того же
// endpoint перезаписывает ключи, дубликат не создается).
func (s *SubscriptionsMemoryStorage) UpsertSubscription(_ context.Context, sub storage.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs[sub.ID] = sub
	return nil
}

// DeleteSubscription удаляет подписку по ID. Отсутствующий ID не ошибка.
func (s *SubscriptionsMemoryStorage) DeleteSubscription(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subs, id)
	return nil
}
