package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdg312/meal-hub/internal/config"
)

func newTestServer() *Server {
	cfg := &config.Config{
		Env:                "local",
		Port:               8080,
		NagIntervalMinutes: 20,
		AIMode:             "mock",
		UploadMaxMB:        10,
		UploadAllowedMime:  "image/jpeg,image/png",
		Blob:               config.BlobConfig{Mode: config.BlobModeLocal},
	}
	return New(cfg)
}

func TestHealthz(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %+v", resp)
	}
}

func TestRoutesRegistered(t *testing.T) {
	s := newTestServer()
	handler := s.Handler()

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/v1/settings", ""},
		{http.MethodGet, "/v1/targets", ""},
		{http.MethodGet, "/v1/status", ""},
		{http.MethodPost, "/v1/checkin", `{"slot_id":"lunch"}`},
		{http.MethodPost, "/v1/subscribe", `{"endpoint":"https://push.example.com/s1"}`},
		{http.MethodPost, "/v1/unsubscribe", `{"endpoint":"https://push.example.com/s1"}`},
		{http.MethodPost, "/v1/log-meal", `{"summary":"обед","delta":{"protein_servings":1}}`},
		{http.MethodPost, "/v1/nag-check", ""},
		{http.MethodGet, "/v1/report", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
		if tt.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code == http.StatusNotFound || rec.Code == http.StatusMethodNotAllowed {
			t.Errorf("%s %s: route not wired, got %d", tt.method, tt.path, rec.Code)
		}
	}
}

func TestPushTestReportsNotConfigured(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/push-test", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without VAPID keys, got %d", rec.Code)
	}
}

func TestNagCheckSkipsWithoutPushConfig(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/nag-check", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		OK      bool   `json:"ok"`
		Skipped string `json:"skipped"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK || resp.Skipped != "not_configured" {
		t.Errorf("unexpected response: %+v", resp)
	}
}
