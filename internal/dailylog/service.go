// Package dailylog накапливает дневной журнал: чек-ины по слотам,
// суммарное потребление и записи о приёмах пищи.
package dailylog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/fdg312/meal-hub/internal/storage"
	"github.com/fdg312/meal-hub/internal/targets"
	"github.com/fdg312/meal-hub/internal/timeutil"
	"github.com/google/uuid"
)

var (
	ErrInvalidSlot = errors.New("slot_id is required")
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

type Service struct {
	storage storage.DailyLogStorage
	targets *targets.Service

	// mu защищает dates; каждый элемент dates сериализует
	// read-modify-write цикл по одной дате.
	mu    sync.Mutex
	dates map[string]*sync.Mutex
}

func NewService(logStorage storage.DailyLogStorage, targetsService *targets.Service) *Service {
	return &Service{
		storage: logStorage,
		targets: targetsService,
		dates:   make(map[string]*sync.Mutex),
	}
}

func (s *Service) dateLock(date string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.dates[date]
	if !ok {
		l = &sync.Mutex{}
		s.dates[date] = l
	}
	return l
}

// NormalizeDate проверяет date и подставляет сегодняшнюю дату, если пусто.
func NormalizeDate(date string, now time.Time) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return timeutil.DateKey(now), nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", ErrInvalidDate
	}
	return date, nil
}

// EnsureLog возвращает журнал на дату, создавая пустой при отсутствии.
func (s *Service) EnsureLog(ctx context.Context, date string) (storage.DailyLog, error) {
	lock := s.dateLock(date)
	lock.Lock()
	defer lock.Unlock()

	return s.ensureLocked(ctx, date)
}

func (s *Service) ensureLocked(ctx context.Context, date string) (storage.DailyLog, error) {
	dl, found, err := s.storage.GetDailyLog(ctx, date)
	if err != nil {
		return storage.DailyLog{}, err
	}
	if found {
		if dl.Checkins == nil {
			dl.Checkins = map[string]bool{}
		}
		if dl.Entries == nil {
			dl.Entries = []storage.LogEntry{}
		}
		return dl, nil
	}

	dl = storage.DailyLog{
		Date:      date,
		Checkins:  map[string]bool{},
		Entries:   []storage.LogEntry{},
		CreatedAt: time.Now(),
	}
	if err := s.storage.PutDailyLog(ctx, dl); err != nil {
		return storage.DailyLog{}, err
	}
	return dl, nil
}

// RecordCheckin отмечает слот выполненным. Повторный чек-ин того же
// слота — no-op, не ошибка.
func (s *Service) RecordCheckin(ctx context.Context, date, slotID string) (storage.DailyLog, error) {
	slotID = strings.TrimSpace(slotID)
	if slotID == "" {
		return storage.DailyLog{}, ErrInvalidSlot
	}

	lock := s.dateLock(date)
	lock.Lock()
	defer lock.Unlock()

	dl, err := s.ensureLocked(ctx, date)
	if err != nil {
		return storage.DailyLog{}, err
	}

	if dl.Checkins[slotID] {
		return dl, nil
	}

	dl.Checkins[slotID] = true
	if err := s.storage.PutDailyLog(ctx, dl); err != nil {
		return storage.DailyLog{}, err
	}
	return dl, nil
}

// RecordConsumption добавляет дельту к суммарному потреблению и
// дописывает запись о приёме пищи. Дельта записи равна дельте,
// прибавленной к Consumed, note — необязательная подпись.
// Возвращает обновленный журнал.
func (s *Service) RecordConsumption(ctx context.Context, date string, delta storage.NutritionSummary, note string, items []string, photoKey string) (storage.DailyLog, error) {
	lock := s.dateLock(date)
	lock.Lock()
	defer lock.Unlock()

	dl, err := s.ensureLocked(ctx, date)
	if err != nil {
		return storage.DailyLog{}, err
	}

	dl.Consumed.Add(delta)
	dl.Entries = append(dl.Entries, storage.LogEntry{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Items:     items,
		Summary:   delta,
		Note:      note,
		PhotoKey:  photoKey,
	})

	if err := s.storage.PutDailyLog(ctx, dl); err != nil {
		return storage.DailyLog{}, err
	}
	return dl, nil
}

// Status собирает сводку дня: журнал, действующие цели и остаток.
func (s *Service) Status(ctx context.Context, date string) (StatusResponse, error) {
	dl, err := s.EnsureLog(ctx, date)
	if err != nil {
		return StatusResponse{}, err
	}

	current, err := s.targets.Current(ctx)
	if err != nil {
		return StatusResponse{}, err
	}

	return StatusResponse{
		OK:        true,
		Date:      dl.Date,
		Checkins:  dl.Checkins,
		Consumed:  dl.Consumed,
		Remaining: targets.Remaining(current, dl.Consumed),
		Entries:   dl.Entries,
	}, nil
}
