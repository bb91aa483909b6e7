package memory

import (
	"context"
	"sync"

	"github.com/fdg312/meal-hub/internal/storage"
)

// DailyLogMemoryStorage — in-memory хранилище дневных журналов.
// Ключ — дата в формате YYYY-MM-DD.
type DailyLogMemoryStorage struct {
	mu   sync.RWMutex
	logs map[string]storage.DailyLog
}

func NewDailyLogMemoryStorage() *DailyLogMemoryStorage {
	return &DailyLogMemoryStorage{
		logs: make(map[string]storage.DailyLog),
	}
}

// GetDailyLog возвращает журнал на дату date; found=false, если записи нет.
func (s *DailyLogMemoryStorage) GetDailyLog(_ context.Context, date string) (storage.DailyLog, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dl, ok := s.logs[date]
	if !ok {
		return storage.DailyLog{}, false, nil
	}
	return copyDailyLog(dl), true, nil
}

// PutDailyLog сохраняет журнал целиком (перезапись по дате).
func (s *DailyLogMemoryStorage) PutDailyLog(_ context.Context, dl storage.DailyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs[dl.Date] = copyDailyLog(dl)
	return nil
}

// copyDailyLog делает глубокую копию, чтобы вызывающий код
// не мог изменить внутреннее состояние хранилища.
func copyDailyLog(dl storage.DailyLog) storage.DailyLog {
	out := dl
	if dl.Checkins != nil {
		out.Checkins = make(map[string]bool, len(dl.Checkins))
		for k, v := range dl.Checkins {
			out.Checkins[k] = v
		}
	}
	if dl.Entries != nil {
		out.Entries = make([]storage.LogEntry, len(dl.Entries))
		for i, e := range dl.Entries {
			ec := e
			if e.Items != nil {
				ec.Items = append([]string(nil), e.Items...)
			}
			out.Entries[i] = ec
		}
	}
	return out
}
