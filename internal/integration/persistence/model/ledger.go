// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/domain/entity"
)

// LedgerModel represents the ledger_entries table in the database.
// The unique index over (source_recurring_id, recorded_date) is the
// idempotency guard for scheduler-generated entries; NULL source IDs
// (manual entries) never collide.
type LedgerModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type              string          `gorm:"type:varchar(10);not null;index"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description       string          `gorm:"type:varchar(255);not null"`
	Place             string          `gorm:"type:varchar(255)"`
	Category          string          `gorm:"type:varchar(20);not null;index"`
	PaymentMethod     string          `gorm:"type:varchar(20);not null"`
	RecordedDate      time.Time       `gorm:"type:date;not null;index;uniqueIndex:ux_ledger_source_date"`
	IsAutoGenerated   bool            `gorm:"default:false"`
	SourceRecurringID *uuid.UUID      `gorm:"type:uuid;index;uniqueIndex:ux_ledger_source_date"`
	CreatedAt         time.Time       `gorm:"not null"`
	ModifiedAt        time.Time       `gorm:"not null"`
	DeletedAt         *time.Time      `gorm:"index"`
}

// TableName returns the table name for the LedgerModel.
func (LedgerModel) TableName() string {
	return "ledger_entries"
}

// ToEntity converts a LedgerModel to a domain LedgerEntry entity.
func (m *LedgerModel) ToEntity() *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:                m.ID,
		UserID:            m.UserID,
		Type:              entity.LedgerType(m.Type),
		Amount:            m.Amount,
		Description:       m.Description,
		Place:             m.Place,
		Category:          entity.Category(m.Category),
		PaymentMethod:     entity.PaymentMethod(m.PaymentMethod),
		RecordedDate:      m.RecordedDate,
		IsAutoGenerated:   m.IsAutoGenerated,
		SourceRecurringID: m.SourceRecurringID,
		AuditInfo: entity.AuditInfo{
			CreatedAt:  m.CreatedAt,
			ModifiedAt: m.ModifiedAt,
			DeletedAt:  m.DeletedAt,
		},
	}
}

// LedgerFromEntity creates a LedgerModel from a domain LedgerEntry entity.
func LedgerFromEntity(entry *entity.LedgerEntry) *LedgerModel {
	return &LedgerModel{
		ID:                entry.ID,
		UserID:            entry.UserID,
		Type:              string(entry.Type),
		Amount:            entry.Amount,
		Description:       entry.Description,
		Place:             entry.Place,
		Category:          string(entry.Category),
		PaymentMethod:     string(entry.PaymentMethod),
		RecordedDate:      entry.RecordedDate,
		IsAutoGenerated:   entry.IsAutoGenerated,
		SourceRecurringID: entry.SourceRecurringID,
		CreatedAt:         entry.CreatedAt,
		ModifiedAt:        entry.ModifiedAt,
		DeletedAt:         entry.DeletedAt,
	}
}
