package ai

import (
	"context"
	"strings"

	"github.com/fdg312/meal-hub/internal/storage"
)

// MockProvider возвращает детерминированную оценку без обращения к сети.
// Используется в локальной разработке и тестах.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Analyze(ctx context.Context, req AnalyzeRequest) (AnalysisResult, error) {
	_ = ctx

	result := AnalysisResult{
		Items:   []string{"курица", "гречка", "салат"},
		Summary: "Mock-оценка: курица с гречкой и салатом",
		Delta: storage.NutritionSummary{
			ProteinServings: 1,
			VegServings:     1,
			CarbServings:    1,
		},
		Note: "Это демо-режим, оценка не основана на фото.",
	}

	lowered := strings.ToLower(req.Comment)
	if strings.Contains(lowered, "перекус") || strings.Contains(lowered, "снек") {
		result.Items = []string{"яблоко", "орехи"}
		result.Summary = "Mock-оценка: перекус"
		result.Delta = storage.NutritionSummary{SnackServings: 1}
	}
	if strings.Contains(lowered, "вода") {
		result.Items = []string{"вода"}
		result.Summary = "Mock-оценка: стакан воды"
		result.Delta = storage.NutritionSummary{WaterMl: 250}
	}

	return result, nil
}
