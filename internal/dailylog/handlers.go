package dailylog

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"
)

type Handler struct {
	service *Service
	now     func() time.Time
}

func NewHandler(service *Service, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{service: service, now: now}
}

// HandleStatus — GET /v1/status?date=YYYY-MM-DD (дата опциональна).
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	date, err := NormalizeDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error")
		return
	}

	resp, err := h.service.Status(r.Context(), date)
	if err != nil {
		log.Printf("WARN dailylog: status failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleCheckin — POST /v1/checkin {slot_id, date?}.
func (h *Handler) HandleCheckin(w http.ResponseWriter, r *http.Request) {
	var req CheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	date, err := NormalizeDate(req.Date, h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error")
		return
	}

	dl, err := h.service.RecordCheckin(r.Context(), date, req.SlotID)
	if err != nil {
		if errors.Is(err, ErrInvalidSlot) {
			writeError(w, http.StatusBadRequest, "validation_error")
			return
		}
		log.Printf("WARN dailylog: checkin failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(CheckinResponse{
		OK:       true,
		Date:     dl.Date,
		Checkins: dl.Checkins,
	})
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: code})
}
