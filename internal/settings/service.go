package settings

import (
	"context"

	"github.com/fdg312/meal-hub/internal/config"
	"github.com/fdg312/meal-hub/internal/storage"
)

const (
	defaultQuietStart = "22:00"
	defaultQuietEnd   = "08:00"
	defaultWindowMin  = 90
)

type Service struct {
	storage storage.SettingsStorage
	config  *config.Config
}

func NewService(settingsStorage storage.SettingsStorage, cfg *config.Config) *Service {
	return &Service{
		storage: settingsStorage,
		config:  cfg,
	}
}

// GetOrDefault возвращает сохраненные настройки либо дефолтные,
// если пользователь еще ничего не сохранял.
func (s *Service) GetOrDefault(ctx context.Context) (SettingsResponse, error) {
	row, found, err := s.storage.GetSettings(ctx)
	if err != nil {
		return SettingsResponse{}, err
	}

	if !found {
		return SettingsResponse{
			OK:        true,
			Settings:  dtoFromStorage(s.Defaults()),
			IsDefault: true,
		}, nil
	}

	return SettingsResponse{
		OK:        true,
		Settings:  dtoFromStorage(row),
		IsDefault: false,
	}, nil
}

// Upsert валидирует и заменяет документ настроек целиком.
func (s *Service) Upsert(ctx context.Context, dto SettingsDTO) (SettingsResponse, error) {
	if err := dto.Validate(); err != nil {
		return SettingsResponse{}, err
	}

	row, err := s.storage.UpsertSettings(ctx, dtoToStorage(dto))
	if err != nil {
		return SettingsResponse{}, err
	}
	return SettingsResponse{OK: true, Settings: dtoFromStorage(row)}, nil
}

// Current возвращает действующие настройки в виде storage-структуры
// (для nag-движка).
func (s *Service) Current(ctx context.Context) (storage.Settings, error) {
	row, found, err := s.storage.GetSettings(ctx)
	if err != nil {
		return storage.Settings{}, err
	}
	if !found {
		return s.Defaults(), nil
	}
	return row, nil
}

// Defaults возвращает настройки по умолчанию.
// Интервал дебаунса берется из конфигурации.
func (s *Service) Defaults() storage.Settings {
	interval := 20
	if s.config != nil && s.config.NagIntervalMinutes > 0 {
		interval = s.config.NagIntervalMinutes
	}
	return storage.Settings{
		IntervalMinutes: interval,
		QuietHours: storage.QuietHours{
			Start: defaultQuietStart,
			End:   defaultQuietEnd,
		},
		Meals: []storage.MealSlot{
			{ID: "breakfast", Label: "Завтрак", Time: "08:30", WindowMinutes: defaultWindowMin},
			{ID: "lunch", Label: "Обед", Time: "13:00", WindowMinutes: defaultWindowMin},
			{ID: "snack", Label: "Перекус", Time: "16:30", WindowMinutes: defaultWindowMin},
			{ID: "dinner", Label: "Ужин", Time: "19:00", WindowMinutes: defaultWindowMin},
		},
	}
}
