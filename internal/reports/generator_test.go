package reports

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fdg312/meal-hub/internal/config"
	"github.com/fdg312/meal-hub/internal/dailylog"
	"github.com/fdg312/meal-hub/internal/settings"
	"github.com/fdg312/meal-hub/internal/storage"
	"github.com/fdg312/meal-hub/internal/storage/memory"
	"github.com/fdg312/meal-hub/internal/targets"
)

func newTestGenerator() (*Generator, *dailylog.Service) {
	store := memory.NewMemoryStorage()
	cfg := &config.Config{NagIntervalMinutes: 20}
	targetsSvc := targets.NewService(store.GetTargetsStorage())
	settingsSvc := settings.NewService(store.GetSettingsStorage(), cfg)
	logSvc := dailylog.NewService(store.GetDailyLogStorage(), targetsSvc)
	return NewGenerator(logSvc, targetsSvc, settingsSvc), logSvc
}

func TestGenerateDailyProducesPDF(t *testing.T) {
	gen, logSvc := newTestGenerator()
	ctx := context.Background()

	_, err := logSvc.RecordConsumption(ctx, "2026-08-30",
		storage.NutritionSummary{ProteinServings: 1, VegServings: 2}, "обед", []string{"курица"}, "")
	if err != nil {
		t.Fatalf("seed log: %v", err)
	}
	if _, err := logSvc.RecordCheckin(ctx, "2026-08-30", "lunch"); err != nil {
		t.Fatalf("seed checkin: %v", err)
	}

	pdf, err := gen.GenerateDaily(ctx, "2026-08-30")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("expected PDF magic bytes, got %q", pdf[:min(8, len(pdf))])
	}
}

func TestGenerateDailyEmptyLog(t *testing.T) {
	gen, _ := newTestGenerator()

	pdf, err := gen.GenerateDaily(context.Background(), "2026-01-01")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pdf) == 0 {
		t.Error("expected non-empty PDF for empty log")
	}
}

func TestHandleReport(t *testing.T) {
	gen, _ := newTestGenerator()
	now := func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	h := NewHandler(gen, now)

	rec := httptest.NewRecorder()
	h.HandleReport(rec, httptest.NewRequest(http.MethodGet, "/v1/report", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", ct)
	}
}

func TestHandleReportBadDate(t *testing.T) {
	gen, _ := newTestGenerator()
	h := NewHandler(gen, nil)

	rec := httptest.NewRecorder()
	h.HandleReport(rec, httptest.NewRequest(http.MethodGet, "/v1/report?date=30.08.2026", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
