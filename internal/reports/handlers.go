package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fdg312/meal-hub/internal/dailylog"
)

type Handler struct {
	generator *Generator
	now       func() time.Time
}

func NewHandler(generator *Generator, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{generator: generator, now: now}
}

// HandleReport — GET /v1/report?date=YYYY-MM-DD, отдаёт PDF.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	date, err := dailylog.NormalizeDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error")
		return
	}

	pdf, err := h.generator.GenerateDaily(r.Context(), date)
	if err != nil {
		if errors.Is(err, dailylog.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "validation_error")
			return
		}
		log.Printf("WARN reports: generate failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"meal-report-%s.pdf\"", date))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: code})
}
