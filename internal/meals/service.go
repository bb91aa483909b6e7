// Package meals записывает приёмы пищи: вручную и по фото через AI-анализ.
package meals

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fdg312/meal-hub/internal/ai"
	"github.com/fdg312/meal-hub/internal/blob"
	"github.com/fdg312/meal-hub/internal/dailylog"
	"github.com/fdg312/meal-hub/internal/targets"
	"github.com/google/uuid"
)

var (
	ErrAINotConfigured = errors.New("AI provider is not configured")
	ErrAnalysisFailed  = errors.New("meal analysis failed")
)

type Service struct {
	dailyLog *dailylog.Service
	targets  *targets.Service
	provider ai.Provider
	photos   blob.Store // nil when BLOB_MODE=local
	now      func() time.Time
}

func NewService(dailyLogService *dailylog.Service, targetsService *targets.Service, provider ai.Provider, photos blob.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		dailyLog: dailyLogService,
		targets:  targetsService,
		provider: provider,
		photos:   photos,
		now:      now,
	}
}

// LogMeal записывает приём пищи вручную.
func (s *Service) LogMeal(ctx context.Context, req LogMealRequest) (LogMealResponse, error) {
	date, err := dailylog.NormalizeDate(req.Date, s.now())
	if err != nil {
		return LogMealResponse{}, err
	}

	dl, err := s.dailyLog.RecordConsumption(ctx, date, req.Delta, strings.TrimSpace(req.Summary), req.Items, "")
	if err != nil {
		return LogMealResponse{}, err
	}

	current, err := s.targets.Current(ctx)
	if err != nil {
		return LogMealResponse{}, err
	}

	return LogMealResponse{
		OK:        true,
		Date:      dl.Date,
		Consumed:  dl.Consumed,
		Remaining: targets.Remaining(current, dl.Consumed),
	}, nil
}

// AnalyzeMeal отправляет фото на анализ и записывает результат в журнал.
// Журнал меняется только после успешно разобранного ответа.
func (s *Service) AnalyzeMeal(ctx context.Context, date string, image []byte, mimeType, comment string) (AnalyzeMealResponse, error) {
	if s.provider == nil {
		return AnalyzeMealResponse{}, ErrAINotConfigured
	}
	if len(image) == 0 {
		return AnalyzeMealResponse{}, fmt.Errorf("image is required")
	}

	date, err := dailylog.NormalizeDate(date, s.now())
	if err != nil {
		return AnalyzeMealResponse{}, err
	}

	result, err := s.provider.Analyze(ctx, ai.AnalyzeRequest{
		Image:    image,
		MimeType: mimeType,
		Comment:  comment,
	})
	if err != nil {
		return AnalyzeMealResponse{}, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	photoKey := s.storePhoto(ctx, date, image, mimeType)

	dl, err := s.dailyLog.RecordConsumption(ctx, date, result.Delta, result.Summary, result.Items, photoKey)
	if err != nil {
		return AnalyzeMealResponse{}, err
	}

	current, err := s.targets.Current(ctx)
	if err != nil {
		return AnalyzeMealResponse{}, err
	}

	return AnalyzeMealResponse{
		OK:        true,
		Date:      dl.Date,
		Items:     result.Items,
		Summary:   result.Summary,
		Delta:     result.Delta,
		Note:      result.Note,
		PhotoKey:  photoKey,
		Consumed:  dl.Consumed,
		Remaining: targets.Remaining(current, dl.Consumed),
	}, nil
}

// storePhoto сохраняет фото в blob-хранилище. Сбой сохранения не
// блокирует запись в журнал, фото считается необязательным.
func (s *Service) storePhoto(ctx context.Context, date string, image []byte, mimeType string) string {
	if s.photos == nil {
		return ""
	}

	key := fmt.Sprintf("meals/%s/%s", date, uuid.New().String())
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	if _, err := s.photos.PutObject(ctx, key, image, mimeType); err != nil {
		log.Printf("WARN meals: store photo failed: %v", err)
		return ""
	}
	return key
}
