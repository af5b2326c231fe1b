// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/moneybook/backend/internal/domain/entity"

// MonthlySummaryResponse represents one calendar month of aggregated activity.
type MonthlySummaryResponse struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	NetAmount    string `json:"net_amount"`
}

// MonthlyStatisticsResponse represents the response for per-month aggregation.
type MonthlyStatisticsResponse struct {
	Months []MonthlySummaryResponse `json:"months"`
}

// CategorySummaryResponse represents aggregated expense activity for one category.
type CategorySummaryResponse struct {
	Category         string `json:"category"`
	TotalAmount      string `json:"total_amount"`
	TransactionCount int64  `json:"transaction_count"`
	Percentage       string `json:"percentage"`
}

// CategoryStatisticsResponse represents the response for category aggregation.
type CategoryStatisticsResponse struct {
	Categories []CategorySummaryResponse `json:"categories"`
}

// PaymentMethodSummaryResponse represents aggregated activity for one payment method.
type PaymentMethodSummaryResponse struct {
	PaymentMethod    string `json:"payment_method"`
	TotalAmount      string `json:"total_amount"`
	TransactionCount int64  `json:"transaction_count"`
}

// PaymentMethodStatisticsResponse represents the response for payment method aggregation.
type PaymentMethodStatisticsResponse struct {
	PaymentMethods []PaymentMethodSummaryResponse `json:"payment_methods"`
}

// TrendResponse represents a month compared against the month before it.
type TrendResponse struct {
	CurrentMonth      MonthlySummaryResponse `json:"current_month"`
	PreviousMonth     MonthlySummaryResponse `json:"previous_month"`
	ExpenseChangeRate string                 `json:"expense_change_rate"`
	IncomeChangeRate  string                 `json:"income_change_rate"`
}

// SpendingAdviceResponse represents the response for AI spending advice.
type SpendingAdviceResponse struct {
	Advice   string                    `json:"advice"`
	Summary  MonthlySummaryResponse    `json:"summary"`
	TopSpend []CategorySummaryResponse `json:"top_spend"`
}

// ToMonthlySummaryResponse converts a domain MonthlySummary to a response DTO.
func ToMonthlySummaryResponse(summary *entity.MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		Year:         summary.Year,
		Month:        summary.Month,
		TotalIncome:  summary.TotalIncome.String(),
		TotalExpense: summary.TotalExpense.String(),
		NetAmount:    summary.NetAmount.String(),
	}
}

// ToMonthlyStatisticsResponse converts per-month summaries to a response DTO.
func ToMonthlyStatisticsResponse(summaries []*entity.MonthlySummary) MonthlyStatisticsResponse {
	months := make([]MonthlySummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		months = append(months, ToMonthlySummaryResponse(summary))
	}
	return MonthlyStatisticsResponse{Months: months}
}

// ToCategorySummaryResponses converts category summaries to response DTOs.
func ToCategorySummaryResponses(summaries []entity.CategorySummary) []CategorySummaryResponse {
	out := make([]CategorySummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, CategorySummaryResponse{
			Category:         string(summary.Category),
			TotalAmount:      summary.TotalAmount.String(),
			TransactionCount: summary.TransactionCount,
			Percentage:       summary.Percentage.String(),
		})
	}
	return out
}

// ToPaymentMethodStatisticsResponse converts payment method summaries to a response DTO.
func ToPaymentMethodStatisticsResponse(summaries []entity.PaymentMethodSummary) PaymentMethodStatisticsResponse {
	out := make([]PaymentMethodSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, PaymentMethodSummaryResponse{
			PaymentMethod:    string(summary.PaymentMethod),
			TotalAmount:      summary.TotalAmount.String(),
			TransactionCount: summary.TransactionCount,
		})
	}
	return PaymentMethodStatisticsResponse{PaymentMethods: out}
}

// ToTrendResponse converts a domain TrendResult to a response DTO.
func ToTrendResponse(trend *entity.TrendResult) TrendResponse {
	return TrendResponse{
		CurrentMonth:      ToMonthlySummaryResponse(trend.CurrentMonth),
		PreviousMonth:     ToMonthlySummaryResponse(trend.PreviousMonth),
		ExpenseChangeRate: trend.ExpenseChangeRate.String(),
		IncomeChangeRate:  trend.IncomeChangeRate.String(),
	}
}
