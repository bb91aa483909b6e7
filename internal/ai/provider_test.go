package ai

import (
	"context"
	"testing"

	"github.com/fdg312/meal-hub/internal/config"
)

func TestFactorySelectsMockByDefault(t *testing.T) {
	cfg := &config.Config{AIMode: ""}
	if _, ok := NewProvider(cfg).(*MockProvider); !ok {
		t.Error("expected MockProvider for empty mode")
	}

	cfg = &config.Config{AIMode: "openai", OpenAIAPIKey: "sk-test"}
	if _, ok := NewProvider(cfg).(*OpenAIProvider); !ok {
		t.Error("expected OpenAIProvider for openai mode")
	}
}

func TestMockProviderAnalyze(t *testing.T) {
	p := NewMockProvider()

	result, err := p.Analyze(context.Background(), AnalyzeRequest{
		Image:    []byte{0xFF, 0xD8},
		MimeType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) == 0 || result.Summary == "" {
		t.Errorf("expected populated result, got %+v", result)
	}
	if result.Delta.ProteinServings != 1 {
		t.Errorf("expected 1 protein serving, got %v", result.Delta.ProteinServings)
	}
}

func TestParseAnalysisContent(t *testing.T) {
	raw := `{"items":["курица","рис"],"summary":"курица с рисом","delta":{"protein_servings":1,"carb_servings":1}}`

	result, err := parseAnalysisContent(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 2 || result.Delta.ProteinServings != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestParseAnalysisContentStripsMarkdownFence(t *testing.T) {
	raw := "```json\n{\"items\":[\"суп\"],\"summary\":\"суп\",\"delta\":{\"veg_servings\":1}}\n```"

	result, err := parseAnalysisContent(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "суп" || result.Delta.VegServings != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestParseAnalysisContentRejectsGarbage(t *testing.T) {
	if _, err := parseAnalysisContent("не json"); err == nil {
		t.Error("expected error for non-JSON content")
	}
	if _, err := parseAnalysisContent("{}"); err == nil {
		t.Error("expected error for empty result")
	}
}
