package meals

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/fdg312/meal-hub/internal/dailylog"
)

type Handler struct {
	service     *Service
	maxBodyMB   int
	allowedMime map[string]bool
}

func NewHandler(service *Service, maxBodyMB int, allowedMime string) *Handler {
	if maxBodyMB <= 0 {
		maxBodyMB = 10
	}
	allowed := make(map[string]bool)
	for _, m := range strings.Split(allowedMime, ",") {
		m = strings.TrimSpace(strings.ToLower(m))
		if m != "" {
			allowed[m] = true
		}
	}
	return &Handler{
		service:     service,
		maxBodyMB:   maxBodyMB,
		allowedMime: allowed,
	}
}

// HandleLogMeal — POST /v1/log-meal {date?, summary, items?, delta}.
func (h *Handler) HandleLogMeal(w http.ResponseWriter, r *http.Request) {
	var req LogMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	resp, err := h.service.LogMeal(r.Context(), req)
	if err != nil {
		if errors.Is(err, dailylog.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "validation_error")
			return
		}
		log.Printf("WARN meals: log-meal failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleAnalyzeMeal — POST /v1/analyze-meal.
// Принимает либо JSON {image_base64, mime_type, date?, comment?},
// либо сырые байты изображения с Content-Type image/*.
func (h *Handler) HandleAnalyzeMeal(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(h.maxBodyMB)<<20)

	contentType := strings.ToLower(strings.TrimSpace(strings.Split(r.Header.Get("Content-Type"), ";")[0]))

	var (
		image   []byte
		mime    string
		date    string
		comment string
	)

	if strings.HasPrefix(contentType, "image/") {
		if !h.mimeAllowed(contentType) {
			writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type")
			return
		}
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_error")
			return
		}
		image = raw
		mime = contentType
		date = r.URL.Query().Get("date")
		comment = r.URL.Query().Get("comment")
	} else {
		var req AnalyzeMealRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		raw, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_error")
			return
		}
		mime = strings.ToLower(strings.TrimSpace(req.MimeType))
		if mime != "" && !h.mimeAllowed(mime) {
			writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type")
			return
		}
		image = raw
		date = req.Date
		comment = req.Comment
	}

	if len(image) == 0 {
		writeError(w, http.StatusBadRequest, "validation_error")
		return
	}

	resp, err := h.service.AnalyzeMeal(r.Context(), date, image, mime, comment)
	if err != nil {
		switch {
		case errors.Is(err, ErrAINotConfigured):
			writeError(w, http.StatusServiceUnavailable, "not_configured")
		case errors.Is(err, dailylog.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, "validation_error")
		case errors.Is(err, ErrAnalysisFailed):
			log.Printf("WARN meals: analyze failed: %v", err)
			writeError(w, http.StatusBadGateway, "analysis_error")
		default:
			log.Printf("WARN meals: analyze-meal failed: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) mimeAllowed(mime string) bool {
	if len(h.allowedMime) == 0 {
		return true
	}
	return h.allowedMime[mime]
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: code})
}
