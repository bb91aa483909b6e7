package targets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdg312/meal-hub/internal/storage"
	"github.com/fdg312/meal-hub/internal/storage/memory"
)

func TestGetOrDefaultBeforeFirstSave(t *testing.T) {
	store := memory.NewMemoryStorage()
	svc := NewService(store.GetTargetsStorage())

	resp, err := svc.GetOrDefault(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsDefault {
		t.Error("expected is_default=true")
	}
	if resp.Targets.ProteinServings != 3 || resp.Targets.WaterMl != 2000 {
		t.Errorf("unexpected defaults: %+v", resp.Targets)
	}
}

func TestUpsertThenCurrent(t *testing.T) {
	store := memory.NewMemoryStorage()
	svc := NewService(store.GetTargetsStorage())

	_, err := svc.Upsert(context.Background(), TargetsDTO{
		ProteinServings: 4,
		VegServings:     5,
		CarbServings:    2,
		SnackServings:   0,
		WaterMl:         2500,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	current, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.ProteinServings != 4 || current.VegServings != 5 || current.WaterMl != 2500 {
		t.Errorf("unexpected current targets: %+v", current)
	}
}

func TestUpsertRejectsNegative(t *testing.T) {
	store := memory.NewMemoryStorage()
	svc := NewService(store.GetTargetsStorage())

	_, err := svc.Upsert(context.Background(), TargetsDTO{ProteinServings: -1})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRemainingClampsAtZero(t *testing.T) {
	targets := storage.Targets{
		ProteinServings: 3,
		VegServings:     3,
		CarbServings:    2,
		SnackServings:   1,
		WaterMl:         2000,
	}
	consumed := storage.NutritionSummary{
		ProteinServings: 1.5,
		VegServings:     4, // more than the target
		CarbServings:    2,
		WaterMl:         500,
	}

	rem := Remaining(targets, consumed)

	if rem.ProteinServings != 1.5 {
		t.Errorf("protein: expected 1.5, got %v", rem.ProteinServings)
	}
	if rem.VegServings != 0 {
		t.Errorf("veg: expected 0 (clamped), got %v", rem.VegServings)
	}
	if rem.CarbServings != 0 {
		t.Errorf("carb: expected 0, got %v", rem.CarbServings)
	}
	if rem.SnackServings != 1 {
		t.Errorf("snack: expected 1, got %v", rem.SnackServings)
	}
	if rem.WaterMl != 1500 {
		t.Errorf("water: expected 1500, got %v", rem.WaterMl)
	}
}

func TestHandlersRoundTrip(t *testing.T) {
	store := memory.NewMemoryStorage()
	h := NewHandler(NewService(store.GetTargetsStorage()))

	body := `{"protein_servings": 4, "veg_servings": 3, "carb_servings": 2, "snack_servings": 1, "water_ml": 1800}`
	req := httptest.NewRequest(http.MethodPut, "/v1/targets", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandlePut(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	getRec := httptest.NewRecorder()
	h.HandleGet(getRec, httptest.NewRequest(http.MethodGet, "/v1/targets", nil))

	var resp TargetsResponse
	if err := json.Unmarshal(getRec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK || resp.IsDefault {
		t.Errorf("expected ok=true is_default=false, got %+v", resp)
	}
	if resp.Targets.WaterMl != 1800 {
		t.Errorf("expected water 1800, got %v", resp.Targets.WaterMl)
	}
}
