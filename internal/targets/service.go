package targets

import (
	"context"

	"github.com/fdg312/meal-hub/internal/storage"
)

type Service struct {
	storage storage.TargetsStorage
}

func NewService(targetsStorage storage.TargetsStorage) *Service {
	return &Service{storage: targetsStorage}
}

// GetOrDefault возвращает сохраненные цели либо дефолтные.
func (s *Service) GetOrDefault(ctx context.Context) (TargetsResponse, error) {
	row, found, err := s.storage.GetTargets(ctx)
	if err != nil {
		return TargetsResponse{}, err
	}

	if !found {
		return TargetsResponse{
			OK:        true,
			Targets:   dtoFromStorage(Defaults()),
			IsDefault: true,
		}, nil
	}

	return TargetsResponse{
		OK:        true,
		Targets:   dtoFromStorage(row),
		IsDefault: false,
	}, nil
}

// Upsert валидирует и заменяет цели целиком.
func (s *Service) Upsert(ctx context.Context, dto TargetsDTO) (TargetsResponse, error) {
	if err := dto.Validate(); err != nil {
		return TargetsResponse{}, err
	}

	row, err := s.storage.UpsertTargets(ctx, dtoToStorage(dto))
	if err != nil {
		return TargetsResponse{}, err
	}
	return TargetsResponse{OK: true, Targets: dtoFromStorage(row)}, nil
}

// Current возвращает действующие цели в виде storage-структуры
// (для nag-движка и отчетов).
func (s *Service) Current(ctx context.Context) (storage.Targets, error) {
	row, found, err := s.storage.GetTargets(ctx)
	if err != nil {
		return storage.Targets{}, err
	}
	if !found {
		return Defaults(), nil
	}
	return row, nil
}

// Defaults — дневные цели по умолчанию.
func Defaults() storage.Targets {
	return storage.Targets{
		ProteinServings: 3,
		VegServings:     3,
		CarbServings:    2,
		SnackServings:   1,
		WaterMl:         2000,
	}
}

// Remaining возвращает остаток до целей: цель минус потреблено,
// отрицательные значения срезаются в ноль.
func Remaining(targets storage.Targets, consumed storage.NutritionSummary) storage.NutritionSummary {
	return storage.NutritionSummary{
		ProteinServings: clampZero(targets.ProteinServings - consumed.ProteinServings),
		VegServings:     clampZero(targets.VegServings - consumed.VegServings),
		CarbServings:    clampZero(targets.CarbServings - consumed.CarbServings),
		SnackServings:   clampZero(targets.SnackServings - consumed.SnackServings),
		WaterMl:         clampZero(targets.WaterMl - consumed.WaterMl),
	}
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
