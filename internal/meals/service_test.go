package meals

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fdg312/meal-hub/internal/ai"
	"github.com/fdg312/meal-hub/internal/dailylog"
	"github.com/fdg312/meal-hub/internal/storage"
	"github.com/fdg312/meal-hub/internal/storage/memory"
	"github.com/fdg312/meal-hub/internal/targets"
)

type failingProvider struct{}

func (failingProvider) Analyze(context.Context, ai.AnalyzeRequest) (ai.AnalysisResult, error) {
	return ai.AnalysisResult{}, errors.New("model unavailable")
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 30, 13, 0, 0, 0, time.UTC)
}

func newTestService(provider ai.Provider) (*Service, *dailylog.Service) {
	store := memory.NewMemoryStorage()
	targetsSvc := targets.NewService(store.GetTargetsStorage())
	logSvc := dailylog.NewService(store.GetDailyLogStorage(), targetsSvc)
	return NewService(logSvc, targetsSvc, provider, nil, fixedNow), logSvc
}

func TestLogMealAccumulatesAndReportsRemaining(t *testing.T) {
	svc, _ := newTestService(ai.NewMockProvider())

	resp, err := svc.LogMeal(context.Background(), LogMealRequest{
		Summary: "омлет с овощами",
		Items:   []string{"омлет", "овощи"},
		Delta:   storage.NutritionSummary{ProteinServings: 1, VegServings: 1},
	})
	if err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if resp.Date != "2026-08-30" {
		t.Errorf("expected today, got %s", resp.Date)
	}
	// default targets: protein 3, veg 3
	if resp.Remaining.ProteinServings != 2 || resp.Remaining.VegServings != 2 {
		t.Errorf("unexpected remaining: %+v", resp.Remaining)
	}
}

func TestLogMealWithoutSummary(t *testing.T) {
	svc, logSvc := newTestService(ai.NewMockProvider())

	resp, err := svc.LogMeal(context.Background(), LogMealRequest{
		Delta: storage.NutritionSummary{WaterMl: 250},
	})
	if err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if !resp.OK || resp.Consumed.WaterMl != 250 {
		t.Errorf("unexpected response: %+v", resp)
	}

	dl, err := logSvc.EnsureLog(context.Background(), "2026-08-30")
	if err != nil {
		t.Fatalf("ensure log: %v", err)
	}
	if len(dl.Entries) != 1 || dl.Entries[0].Note != "" {
		t.Errorf("expected one entry without note, got %+v", dl.Entries)
	}
}

func TestLogMealNegativeCorrection(t *testing.T) {
	svc, _ := newTestService(ai.NewMockProvider())
	ctx := context.Background()

	if _, err := svc.LogMeal(ctx, LogMealRequest{
		Summary: "обед",
		Delta:   storage.NutritionSummary{ProteinServings: 2, WaterMl: 500},
	}); err != nil {
		t.Fatalf("log meal: %v", err)
	}

	// Коррекция: порция записана по ошибке.
	resp, err := svc.LogMeal(ctx, LogMealRequest{
		Summary: "коррекция",
		Delta:   storage.NutritionSummary{ProteinServings: -1},
	})
	if err != nil {
		t.Fatalf("correction: %v", err)
	}
	if resp.Consumed.ProteinServings != 1 {
		t.Errorf("expected consumed protein 1 after correction, got %v", resp.Consumed.ProteinServings)
	}
	// default target 3 - 1 consumed
	if resp.Remaining.ProteinServings != 2 {
		t.Errorf("expected remaining protein 2, got %v", resp.Remaining.ProteinServings)
	}
}

func TestAnalyzeMealLogsParsedResult(t *testing.T) {
	svc, logSvc := newTestService(ai.NewMockProvider())

	resp, err := svc.AnalyzeMeal(context.Background(), "", []byte{0xFF, 0xD8}, "image/jpeg", "")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !resp.OK || resp.Summary == "" {
		t.Errorf("unexpected response: %+v", resp)
	}

	dl, err := logSvc.EnsureLog(context.Background(), "2026-08-30")
	if err != nil {
		t.Fatalf("ensure log: %v", err)
	}
	if len(dl.Entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(dl.Entries))
	}
	if dl.Consumed.ProteinServings != 1 {
		t.Errorf("expected mock delta applied, got %+v", dl.Consumed)
	}
}

func TestAnalyzeMealFailureDoesNotMutateLog(t *testing.T) {
	svc, logSvc := newTestService(failingProvider{})

	_, err := svc.AnalyzeMeal(context.Background(), "", []byte{0xFF}, "image/jpeg", "")
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed, got %v", err)
	}

	dl, err := logSvc.EnsureLog(context.Background(), "2026-08-30")
	if err != nil {
		t.Fatalf("ensure log: %v", err)
	}
	if len(dl.Entries) != 0 {
		t.Errorf("expected no entries after failed analysis, got %d", len(dl.Entries))
	}
	if dl.Consumed.ProteinServings != 0 {
		t.Errorf("expected no consumption after failed analysis, got %+v", dl.Consumed)
	}
}

func TestHandleLogMeal(t *testing.T) {
	svc, _ := newTestService(ai.NewMockProvider())
	h := NewHandler(svc, 10, "image/jpeg,image/png")

	body := `{"summary": "обед", "delta": {"protein_servings": 1}}`
	rec := httptest.NewRecorder()
	h.HandleLogMeal(rec, httptest.NewRequest(http.MethodPost, "/v1/log-meal", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp LogMealResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK || resp.Consumed.ProteinServings != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleAnalyzeMealJSON(t *testing.T) {
	svc, _ := newTestService(ai.NewMockProvider())
	h := NewHandler(svc, 10, "image/jpeg,image/png")

	img := base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF})
	body := `{"image_base64": "` + img + `", "mime_type": "image/jpeg"}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze-meal", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.HandleAnalyzeMeal(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AnalyzeMealResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK || len(resp.Items) == 0 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleAnalyzeMealRawImage(t *testing.T) {
	svc, _ := newTestService(ai.NewMockProvider())
	h := NewHandler(svc, 10, "image/jpeg,image/png")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze-meal", strings.NewReader("\xFF\xD8\xFF"))
	req.Header.Set("Content-Type", "image/jpeg")
	h.HandleAnalyzeMeal(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleAnalyzeMealRejectsUnsupportedMime(t *testing.T) {
	svc, _ := newTestService(ai.NewMockProvider())
	h := NewHandler(svc, 10, "image/jpeg")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze-meal", strings.NewReader("GIF89a"))
	req.Header.Set("Content-Type", "image/gif")
	h.HandleAnalyzeMeal(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}

func TestHandleAnalyzeMealFailureIsAnalysisError(t *testing.T) {
	svc, _ := newTestService(failingProvider{})
	h := NewHandler(svc, 10, "image/jpeg")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze-meal", strings.NewReader("\xFF\xD8"))
	req.Header.Set("Content-Type", "image/jpeg")
	h.HandleAnalyzeMeal(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error != "analysis_error" {
		t.Errorf("expected analysis_error, got %q", resp.Error)
	}
}
