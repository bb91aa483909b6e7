package ai

import (
	"context"

	"github.com/fdg312/meal-hub/internal/storage"
)

// Provider анализирует фото еды и возвращает структурированную оценку
// в порциях (белок/овощи/углеводы/перекус) и воде.
type Provider interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (AnalysisResult, error)
}

type AnalyzeRequest struct {
	Image    []byte
	MimeType string
	Comment  string // optional free-form user hint
}

type AnalysisResult struct {
	Items   []string                 `json:"items"`
	Summary string                   `json:"summary"`
	Delta   storage.NutritionSummary `json:"delta"`
	Note    string                   `json:"note,omitempty"`
}
