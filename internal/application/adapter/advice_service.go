// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/moneybook/backend/internal/domain/entity"
)

// AdviceService defines the interface for AI-generated spending advice.
type AdviceService interface {
	// GenerateSpendingAdvice produces a short natural-language analysis of a
	// month of spending data.
	GenerateSpendingAdvice(ctx context.Context, summary *entity.MonthlySummary, categories []entity.CategorySummary) (string, error)
}
