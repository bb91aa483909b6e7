package meals

import (
	"github.com/fdg312/meal-hub/internal/storage"
)

// LogMealRequest — ручная запись приёма пищи. Дельта принимается как есть,
// без отсечения отрицательных значений: так вносятся коррекции.
// Подпись и список блюд необязательны.
type LogMealRequest struct {
	Date    string                   `json:"date,omitempty"`
	Summary string                   `json:"summary,omitempty"`
	Items   []string                 `json:"items,omitempty"`
	Delta   storage.NutritionSummary `json:"delta"`
}

type LogMealResponse struct {
	OK        bool                     `json:"ok"`
	Date      string                   `json:"date"`
	Consumed  storage.NutritionSummary `json:"consumed"`
	Remaining storage.NutritionSummary `json:"remaining"`
}

type AnalyzeMealRequest struct {
	Date        string `json:"date,omitempty"`
	Comment     string `json:"comment,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	ImageBase64 string `json:"image_base64"`
}

type AnalyzeMealResponse struct {
	OK        bool                     `json:"ok"`
	Date      string                   `json:"date"`
	Items     []string                 `json:"items"`
	Summary   string                   `json:"summary"`
	Delta     storage.NutritionSummary `json:"delta"`
	Note      string                   `json:"note,omitempty"`
	PhotoKey  string                   `json:"photo_key,omitempty"`
	Consumed  storage.NutritionSummary `json:"consumed"`
	Remaining storage.NutritionSummary `json:"remaining"`
}
