// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/moneybook/backend/internal/domain/entity"
)

// CreateLedgerEntryRequest represents the request body for entry creation.
type CreateLedgerEntryRequest struct {
	Type          string  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Description   string  `json:"description,omitempty" binding:"omitempty,max=255"`
	Place         string  `json:"place,omitempty" binding:"omitempty,max=255"`
	Category      string  `json:"category" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	RecordedDate  string  `json:"recorded_date" binding:"required"`
}

// UpdateLedgerEntryRequest represents the request body for entry update.
// Updates are full replacements of the editable fields.
type UpdateLedgerEntryRequest struct {
	Type          string  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Description   string  `json:"description,omitempty" binding:"omitempty,max=255"`
	Place         string  `json:"place,omitempty" binding:"omitempty,max=255"`
	Category      string  `json:"category" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	RecordedDate  string  `json:"recorded_date" binding:"required"`
}

// LedgerEntryResponse represents a single ledger entry in API responses.
type LedgerEntryResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Type            string    `json:"type"`
	Amount          string    `json:"amount"`
	Description     string    `json:"description"`
	Place           string    `json:"place"`
	Category        string    `json:"category"`
	PaymentMethod   string    `json:"payment_method"`
	RecordedDate    string    `json:"recorded_date"`
	IsAutoGenerated bool      `json:"is_auto_generated"`
	SourceID        *string   `json:"source_recurring_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	ModifiedAt      time.Time `json:"modified_at"`
}

// LedgerPaginationResponse represents pagination information in listings.
type LedgerPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// LedgerListResponse represents the response for listing ledger entries.
type LedgerListResponse struct {
	Entries    []LedgerEntryResponse    `json:"entries"`
	Pagination LedgerPaginationResponse `json:"pagination"`
}

// ToLedgerEntryResponse converts a domain LedgerEntry to a response DTO.
func ToLedgerEntryResponse(entry *entity.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		ID:              entry.ID.String(),
		UserID:          entry.UserID.String(),
		Type:            string(entry.Type),
		Amount:          entry.Amount.String(),
		Description:     entry.Description,
		Place:           entry.Place,
		Category:        string(entry.Category),
		PaymentMethod:   string(entry.PaymentMethod),
		RecordedDate:    entry.RecordedDate.Format("2006-01-02"),
		IsAutoGenerated: entry.IsAutoGenerated,
		CreatedAt:       entry.CreatedAt,
		ModifiedAt:      entry.ModifiedAt,
	}
	if entry.SourceRecurringID != nil {
		id := entry.SourceRecurringID.String()
		resp.SourceID = &id
	}
	return resp
}

// ToLedgerListResponse converts a listing page to a response DTO.
func ToLedgerListResponse(result *entity.LedgerListResult) LedgerListResponse {
	entries := make([]LedgerEntryResponse, 0, len(result.Entries))
	for _, entry := range result.Entries {
		entries = append(entries, ToLedgerEntryResponse(entry))
	}
	return LedgerListResponse{
		Entries: entries,
		Pagination: LedgerPaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}
