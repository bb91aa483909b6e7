package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fdg312/meal-hub/internal/config"
)

type OpenAIProvider struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

func NewOpenAIProvider(cfg *config.Config) *OpenAIProvider {
	timeoutSeconds := cfg.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	return &OpenAIProvider{
		apiKey:      cfg.OpenAIAPIKey,
		model:       cfg.OpenAIModel,
		maxTokens:   cfg.AIMaxOutputTokens,
		temperature: cfg.AITemperature,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

type chatMessageContent struct {
	Type     string         `json:"type"`
	Text     string         `json:"text,omitempty"`
	ImageURL *chatImagePart `json:"image_url,omitempty"`
}

type chatImagePart struct {
	URL string `json:"url"`
}

type chatMessageRequest struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatCompletionsRequest struct {
	Model       string               `json:"model"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
	Messages    []chatMessageRequest `json:"messages"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *OpenAIProvider) Analyze(ctx context.Context, req AnalyzeRequest) (AnalysisResult, error) {
	if len(req.Image) == 0 {
		return AnalysisResult{}, fmt.Errorf("image is empty")
	}

	mime := req.MimeType
	if mime == "" {
		mime = "image/jpeg"
	}
	dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(req.Image)

	userContent := []chatMessageContent{
		{Type: "text", Text: p.userPrompt(req)},
		{Type: "image_url", ImageURL: &chatImagePart{URL: dataURL}},
	}

	requestPayload := chatCompletionsRequest{
		Model:       p.model,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		Messages: []chatMessageRequest{
			{Role: "system", Content: p.systemPrompt()},
			{Role: "user", Content: userContent},
		},
	}

	body, err := json.Marshal(requestPayload)
	if err != nil {
		return AnalysisResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.openai.com/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return AnalysisResult{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return AnalysisResult{}, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return AnalysisResult{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return AnalysisResult{}, fmt.Errorf("openai request failed with status %d", resp.StatusCode)
	}

	var parsed chatCompletionsResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return AnalysisResult{}, err
	}
	if len(parsed.Choices) == 0 {
		return AnalysisResult{}, fmt.Errorf("openai response does not contain choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	return parseAnalysisContent(content)
}

func (p *OpenAIProvider) systemPrompt() string {
	return "Ты нутрициолог сервиса MealHub. Оцени блюдо на фото в порциях: " +
		"protein_servings (белок), veg_servings (овощи), carb_servings (гарнир/углеводы), " +
		"snack_servings (перекус), water_ml (вода в мл). " +
		"Порция — это примерно ладонь белка, кулак овощей, горсть гарнира. " +
		"Ответь строго одним JSON object без markdown: " +
		`{"items":["..."],"summary":"...","delta":{"protein_servings":0,"veg_servings":0,"carb_servings":0,"snack_servings":0,"water_ml":0},"note":"..."}. ` +
		"items — список распознанных продуктов по-русски; summary — короткое описание блюда; " +
		"note — необязательное замечание. Не добавляй текст вне JSON."
}

func (p *OpenAIProvider) userPrompt(req AnalyzeRequest) string {
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return "Оцени блюдо на фото."
	}
	return "Оцени блюдо на фото. Комментарий пользователя: " + comment
}

// parseAnalysisContent разбирает ответ модели. Модель иногда заворачивает
// JSON в markdown-ограждение, поэтому сначала вырезаем его.
func parseAnalysisContent(content string) (AnalysisResult, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var result AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return AnalysisResult{}, fmt.Errorf("parse analysis response: %w", err)
	}
	if result.Summary == "" && len(result.Items) == 0 {
		return AnalysisResult{}, fmt.Errorf("analysis response is empty")
	}
	return result, nil
}
