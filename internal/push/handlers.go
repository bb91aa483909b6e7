package push

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleSubscribe — POST /v1/subscribe {endpoint, keys{p256dh, auth}}.
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	resp, err := h.service.Subscribe(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidSubscription) {
			writeError(w, http.StatusBadRequest, "validation_error")
			return
		}
		log.Printf("WARN push: subscribe failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleUnsubscribe — POST /v1/unsubscribe {endpoint}.
func (h *Handler) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req UnsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	resp, err := h.service.Unsubscribe(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidSubscription) {
			writeError(w, http.StatusBadRequest, "validation_error")
			return
		}
		log.Printf("WARN push: unsubscribe failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// HandlePushTest — POST /v1/push-test.
func (h *Handler) HandlePushTest(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.PushTest(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "not_configured")
			return
		}
		log.Printf("WARN push: push-test failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(struct {
		OK bool `json:"ok"`
		DispatchResult
	}{OK: true, DispatchResult: result})
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: code})
}
