// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/moneybook/backend/internal/domain/entity"
)

// GeminiAdviceService implements adapter.AdviceService using Google Gemini.
type GeminiAdviceService struct {
	apiKey    string
	modelName string
}

// NewGeminiAdviceService creates a new Gemini advice service instance.
func NewGeminiAdviceService(apiKey string) *GeminiAdviceService {
	return &GeminiAdviceService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the service is configured with an API key.
func (s *GeminiAdviceService) IsAvailable() bool {
	return s.apiKey != ""
}

// GenerateSpendingAdvice produces a short natural-language analysis of a
// month of spending data.
func (s *GeminiAdviceService) GenerateSpendingAdvice(ctx context.Context, summary *entity.MonthlySummary, categories []entity.CategorySummary) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.4)

	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(summary, categories)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return strings.TrimSpace(textContent), nil
}

// buildPrompt creates the advice prompt from the month's aggregates.
func (s *GeminiAdviceService) buildPrompt(summary *entity.MonthlySummary, categories []entity.CategorySummary) string {
	var sb strings.Builder

	sb.WriteString("You are a personal finance assistant. Analyze the following month of spending and give 3 short, concrete pieces of advice. Keep the whole answer under 150 words, plain text.\n\n")
	sb.WriteString(fmt.Sprintf("Month: %04d-%02d\n", summary.Year, summary.Month))
	sb.WriteString(fmt.Sprintf("Total income: %s\n", summary.TotalIncome.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Total expense: %s\n", summary.TotalExpense.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Net amount: %s\n", summary.NetAmount.StringFixed(2)))

	sb.WriteString("\nTop expense categories:\n")
	if len(categories) == 0 {
		sb.WriteString("(no expenses recorded)\n")
	}
	for _, cat := range categories {
		sb.WriteString(fmt.Sprintf("- %s: %s across %d transactions\n",
			cat.Category, cat.TotalAmount.StringFixed(2), cat.TransactionCount))
	}

	return sb.String()
}
