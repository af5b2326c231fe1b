// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/moneybook/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	Period         string  `json:"period" binding:"required,oneof=WEEKLY MONTHLY YEARLY"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        string  `json:"end_date" binding:"required"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	Category       *string `json:"category,omitempty"`
	AlertThreshold float64 `json:"alert_threshold,omitempty" binding:"omitempty,gt=0,lte=100"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	Period         string  `json:"period" binding:"required,oneof=WEEKLY MONTHLY YEARLY"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        string  `json:"end_date" binding:"required"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	Category       *string `json:"category,omitempty"`
	AlertThreshold float64 `json:"alert_threshold,omitempty" binding:"omitempty,gt=0,lte=100"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Period         string    `json:"period"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Amount         string    `json:"amount"`
	Category       *string   `json:"category,omitempty"`
	AlertThreshold string    `json:"alert_threshold"`
	IsActive       bool      `json:"is_active"`
	IsAlertSent    bool      `json:"is_alert_sent"`
	CreatedAt      time.Time `json:"created_at"`
	ModifiedAt     time.Time `json:"modified_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// BudgetUsageResponse represents usage figures for one budget.
type BudgetUsageResponse struct {
	Budget          BudgetResponse `json:"budget"`
	TotalSpent      string         `json:"total_spent"`
	RemainingAmount string         `json:"remaining_amount"`
	UsagePercentage string         `json:"usage_percentage"`
	IsExceeded      bool           `json:"is_exceeded"`
}

// ToBudgetResponse converts a domain Budget to a response DTO.
func ToBudgetResponse(budget *entity.Budget) BudgetResponse {
	resp := BudgetResponse{
		ID:             budget.ID.String(),
		UserID:         budget.UserID.String(),
		Name:           budget.Name,
		Period:         string(budget.Period),
		StartDate:      budget.StartDate.Format("2006-01-02"),
		EndDate:        budget.EndDate.Format("2006-01-02"),
		Amount:         budget.Amount.String(),
		AlertThreshold: budget.AlertThreshold.String(),
		IsActive:       budget.IsActive,
		IsAlertSent:    budget.IsAlertSent,
		CreatedAt:      budget.CreatedAt,
		ModifiedAt:     budget.ModifiedAt,
	}
	if budget.Category != nil {
		category := string(*budget.Category)
		resp.Category = &category
	}
	return resp
}

// ToBudgetListResponse converts a budget slice to a response DTO.
func ToBudgetListResponse(budgets []*entity.Budget) BudgetListResponse {
	out := make([]BudgetResponse, 0, len(budgets))
	for _, budget := range budgets {
		out = append(out, ToBudgetResponse(budget))
	}
	return BudgetListResponse{Budgets: out}
}

// ToBudgetUsageResponse converts computed usage to a response DTO.
func ToBudgetUsageResponse(usage *entity.BudgetUsage) BudgetUsageResponse {
	return BudgetUsageResponse{
		Budget:          ToBudgetResponse(usage.Budget),
		TotalSpent:      usage.TotalSpent.String(),
		RemainingAmount: usage.RemainingAmount.String(),
		UsagePercentage: usage.UsagePercentage.String(),
		IsExceeded:      usage.IsExceeded,
	}
}
