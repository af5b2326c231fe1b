// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/moneybook/backend/internal/domain/entity"
)

// CreateRecurringRequest represents the request body for recurring rule creation.
type CreateRecurringRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	Type          string  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Description   string  `json:"description,omitempty" binding:"omitempty,max=255"`
	Place         string  `json:"place,omitempty" binding:"omitempty,max=255"`
	Category      string  `json:"category" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Pattern       string  `json:"pattern" binding:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	Interval      int     `json:"interval" binding:"required,gte=1"`
	ExecutionDay  *int    `json:"execution_day,omitempty" binding:"omitempty,gte=1,lte=31"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       *string `json:"end_date,omitempty"`
}

// UpdateRecurringRequest represents the request body for recurring rule update.
type UpdateRecurringRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	Type          string  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Description   string  `json:"description,omitempty" binding:"omitempty,max=255"`
	Place         string  `json:"place,omitempty" binding:"omitempty,max=255"`
	Category      string  `json:"category" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Pattern       string  `json:"pattern" binding:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	Interval      int     `json:"interval" binding:"required,gte=1"`
	ExecutionDay  *int    `json:"execution_day,omitempty" binding:"omitempty,gte=1,lte=31"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       *string `json:"end_date,omitempty"`
}

// SetRecurringActiveRequest represents the request body for pausing or
// resuming a recurring rule.
type SetRecurringActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// RecurringResponse represents a single recurring rule in API responses.
type RecurringResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	Amount            string    `json:"amount"`
	Description       string    `json:"description"`
	Place             string    `json:"place"`
	Category          string    `json:"category"`
	PaymentMethod     string    `json:"payment_method"`
	Pattern           string    `json:"pattern"`
	Interval          int       `json:"interval"`
	ExecutionDay      *int      `json:"execution_day,omitempty"`
	StartDate         string    `json:"start_date"`
	EndDate           *string   `json:"end_date,omitempty"`
	NextExecutionDate string    `json:"next_execution_date"`
	LastExecutionDate *string   `json:"last_execution_date,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	ModifiedAt        time.Time `json:"modified_at"`
}

// RecurringListResponse represents the response for listing recurring rules.
type RecurringListResponse struct {
	Recurring []RecurringResponse `json:"recurring"`
}

// ToRecurringResponse converts a domain RecurringTransaction to a response DTO.
func ToRecurringResponse(recurring *entity.RecurringTransaction) RecurringResponse {
	resp := RecurringResponse{
		ID:                recurring.ID.String(),
		UserID:            recurring.UserID.String(),
		Name:              recurring.Name,
		Type:              string(recurring.Type),
		Amount:            recurring.Amount.String(),
		Description:       recurring.Description,
		Place:             recurring.Place,
		Category:          string(recurring.Category),
		PaymentMethod:     string(recurring.PaymentMethod),
		Pattern:           string(recurring.Recurrence.Pattern()),
		Interval:          recurring.Recurrence.Interval(),
		ExecutionDay:      recurring.Recurrence.ExecutionDayOfMonth(),
		StartDate:         recurring.StartDate.Format("2006-01-02"),
		NextExecutionDate: recurring.NextExecutionDate.Format("2006-01-02"),
		IsActive:          recurring.IsActive,
		CreatedAt:         recurring.CreatedAt,
		ModifiedAt:        recurring.ModifiedAt,
	}
	if recurring.EndDate != nil {
		end := recurring.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	if recurring.LastExecutionDate != nil {
		last := recurring.LastExecutionDate.Format("2006-01-02")
		resp.LastExecutionDate = &last
	}
	return resp
}

// ToRecurringListResponse converts a rule slice to a response DTO.
func ToRecurringListResponse(rules []*entity.RecurringTransaction) RecurringListResponse {
	out := make([]RecurringResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, ToRecurringResponse(rule))
	}
	return RecurringListResponse{Recurring: out}
}
