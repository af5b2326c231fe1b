// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// MonthlySummary aggregates one calendar month of activity.
type MonthlySummary struct {
	Year         int
	Month        int
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetAmount    decimal.Decimal
}

// EmptyMonthlySummary returns a zero-valued summary for a month with no
// recorded activity.
func EmptyMonthlySummary(year, month int) *MonthlySummary {
	return &MonthlySummary{
		Year:         year,
		Month:        month,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		NetAmount:    decimal.Zero,
	}
}

// CategorySummary aggregates expense activity for one category.
type CategorySummary struct {
	Category         Category
	TotalAmount      decimal.Decimal
	TransactionCount int64
	Percentage       decimal.Decimal
}

// PaymentMethodSummary aggregates activity for one payment method.
type PaymentMethodSummary struct {
	PaymentMethod    PaymentMethod
	TotalAmount      decimal.Decimal
	TransactionCount int64
}

// TrendResult compares a month against the month before it.
type TrendResult struct {
	CurrentMonth      *MonthlySummary
	PreviousMonth     *MonthlySummary
	ExpenseChangeRate decimal.Decimal
	IncomeChangeRate  decimal.Decimal
}
