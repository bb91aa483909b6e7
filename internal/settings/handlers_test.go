package settings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdg312/meal-hub/internal/config"
	"github.com/fdg312/meal-hub/internal/storage"
	"github.com/fdg312/meal-hub/internal/storage/memory"
)

func newTestHandler() *Handler {
	store := memory.NewMemoryStorage()
	cfg := &config.Config{NagIntervalMinutes: 20}
	return NewHandler(NewService(store.GetSettingsStorage(), cfg))
}

func TestGetReturnsDefaultsBeforeFirstSave(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp SettingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.OK {
		t.Error("expected ok=true")
	}
	if !resp.IsDefault {
		t.Error("expected is_default=true before first save")
	}
	if resp.Settings.IntervalMinutes != 20 {
		t.Errorf("expected default interval 20, got %d", resp.Settings.IntervalMinutes)
	}
	if len(resp.Settings.Meals) != 4 {
		t.Errorf("expected 4 default meal slots, got %d", len(resp.Settings.Meals))
	}
}

func TestPutThenGetRoundTrip(t *testing.T) {
	h := newTestHandler()

	body := `{
		"interval_minutes": 30,
		"quiet_hours": {"start": "23:00", "end": "07:00"},
		"meals": [
			{"id": "lunch", "label": "Обед", "time": "13:00", "window_minutes": 60}
		]
	}`

	req := httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandlePut(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
	getRec := httptest.NewRecorder()
	h.HandleGet(getRec, getReq)

	var resp SettingsResponse
	if err := json.Unmarshal(getRec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.IsDefault {
		t.Error("expected is_default=false after save")
	}
	if resp.Settings.IntervalMinutes != 30 {
		t.Errorf("expected interval 30, got %d", resp.Settings.IntervalMinutes)
	}
	if resp.Settings.QuietHours.Start != "23:00" {
		t.Errorf("expected quiet start 23:00, got %s", resp.Settings.QuietHours.Start)
	}
	if len(resp.Settings.Meals) != 1 || resp.Settings.Meals[0].ID != "lunch" {
		t.Errorf("unexpected meals: %+v", resp.Settings.Meals)
	}
}

func TestPutRejectsInvalidJSON(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.HandlePut(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error response: %v", err)
	}
	if resp.Error != "invalid_json" {
		t.Errorf("expected invalid_json, got %q", resp.Error)
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		dto  SettingsDTO
	}{
		{
			name: "zero interval",
			dto: SettingsDTO{
				IntervalMinutes: 0,
				QuietHours:      storage.QuietHours{Start: "22:00", End: "08:00"},
				Meals:           []storage.MealSlot{{ID: "lunch", Time: "13:00"}},
			},
		},
		{
			name: "bad quiet start",
			dto: SettingsDTO{
				IntervalMinutes: 20,
				QuietHours:      storage.QuietHours{Start: "25:00", End: "08:00"},
				Meals:           []storage.MealSlot{{ID: "lunch", Time: "13:00"}},
			},
		},
		{
			name: "empty meals",
			dto: SettingsDTO{
				IntervalMinutes: 20,
				QuietHours:      storage.QuietHours{Start: "22:00", End: "08:00"},
				Meals:           []storage.MealSlot{},
			},
		},
		{
			name: "duplicate slot id",
			dto: SettingsDTO{
				IntervalMinutes: 20,
				QuietHours:      storage.QuietHours{Start: "22:00", End: "08:00"},
				Meals: []storage.MealSlot{
					{ID: "lunch", Time: "13:00"},
					{ID: "lunch", Time: "14:00"},
				},
			},
		},
		{
			name: "bad slot time",
			dto: SettingsDTO{
				IntervalMinutes: 20,
				QuietHours:      storage.QuietHours{Start: "22:00", End: "08:00"},
				Meals:           []storage.MealSlot{{ID: "lunch", Time: "13:60"}},
			},
		},
		{
			name: "negative window",
			dto: SettingsDTO{
				IntervalMinutes: 20,
				QuietHours:      storage.QuietHours{Start: "22:00", End: "08:00"},
				Meals:           []storage.MealSlot{{ID: "lunch", Time: "13:00", WindowMinutes: -5}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.dto.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
