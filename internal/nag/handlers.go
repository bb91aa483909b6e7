package nag

import (
	"encoding/json"
	"log"
	"net/http"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// HandleNagCheck — POST /v1/nag-check: выполняет один тик по запросу.
// Используется внешним cron, когда встроенный тикер выключен.
func (h *Handler) HandleNagCheck(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.Tick(r.Context())
	if err != nil {
		log.Printf("WARN nag: on-demand tick failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(struct {
		OK bool `json:"ok"`
		TickResult
	}{OK: true, TickResult: result})
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: code})
}
