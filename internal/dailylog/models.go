package dailylog

import (
	"github.com/fdg312/meal-hub/internal/storage"
)

type CheckinRequest struct {
	SlotID string `json:"slot_id"`
	Date   string `json:"date,omitempty"`
}

type CheckinResponse struct {
	OK       bool            `json:"ok"`
	Date     string          `json:"date"`
	Checkins map[string]bool `json:"checkins"`
}

type StatusResponse struct {
	OK        bool                     `json:"ok"`
	Date      string                   `json:"date"`
	Checkins  map[string]bool          `json:"checkins"`
	Consumed  storage.NutritionSummary `json:"consumed"`
	Remaining storage.NutritionSummary `json:"remaining"`
	Entries   []storage.LogEntry       `json:"entries"`
}
