// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/domain/entity"
)

// RecurringModel represents the recurring_transactions table in the
// database. The recurrence variant is flattened into pattern, interval,
// and optional execution day columns.
type RecurringModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"type:varchar(100);not null"`
	Type              string          `gorm:"type:varchar(10);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description       string          `gorm:"type:varchar(255)"`
	Place             string          `gorm:"type:varchar(255)"`
	Category          string          `gorm:"type:varchar(20);not null"`
	PaymentMethod     string          `gorm:"type:varchar(20);not null"`
	Pattern           string          `gorm:"type:varchar(10);not null"`
	RecurInterval     int             `gorm:"column:recur_interval;not null;default:1"`
	ExecutionDay      *int            `gorm:"type:integer"`
	StartDate         time.Time       `gorm:"type:date;not null"`
	EndDate           *time.Time      `gorm:"type:date"`
	NextExecutionDate time.Time       `gorm:"type:date;not null;index"`
	LastExecutionDate *time.Time      `gorm:"type:date"`
	IsActive          bool            `gorm:"default:true;index"`
	CreatedAt         time.Time       `gorm:"not null"`
	ModifiedAt        time.Time       `gorm:"not null"`
	DeletedAt         *time.Time      `gorm:"index"`
}

// TableName returns the table name for the RecurringModel.
func (RecurringModel) TableName() string {
	return "recurring_transactions"
}

// ToEntity converts a RecurringModel to a domain RecurringTransaction
// entity. An unknown pattern column falls back to monthly; the database
// only ever holds values written through entity validation.
func (m *RecurringModel) ToEntity() *entity.RecurringTransaction {
	recurrence, ok := entity.NewRecurrence(entity.RecurrencePattern(m.Pattern), m.RecurInterval, m.ExecutionDay)
	if !ok {
		recurrence, _ = entity.NewRecurrence(entity.RecurrenceMonthly, m.RecurInterval, m.ExecutionDay)
	}

	return &entity.RecurringTransaction{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              m.Name,
		Type:              entity.LedgerType(m.Type),
		Amount:            m.Amount,
		Description:       m.Description,
		Place:             m.Place,
		Category:          entity.Category(m.Category),
		PaymentMethod:     entity.PaymentMethod(m.PaymentMethod),
		Recurrence:        recurrence,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		NextExecutionDate: m.NextExecutionDate,
		LastExecutionDate: m.LastExecutionDate,
		IsActive:          m.IsActive,
		AuditInfo: entity.AuditInfo{
			CreatedAt:  m.CreatedAt,
			ModifiedAt: m.ModifiedAt,
			DeletedAt:  m.DeletedAt,
		},
	}
}

// RecurringFromEntity creates a RecurringModel from a domain
// RecurringTransaction entity.
func RecurringFromEntity(recurring *entity.RecurringTransaction) *RecurringModel {
	return &RecurringModel{
		ID:                recurring.ID,
		UserID:            recurring.UserID,
		Name:              recurring.Name,
		Type:              string(recurring.Type),
		Amount:            recurring.Amount,
		Description:       recurring.Description,
		Place:             recurring.Place,
		Category:          string(recurring.Category),
		PaymentMethod:     string(recurring.PaymentMethod),
		Pattern:           string(recurring.Recurrence.Pattern()),
		RecurInterval:     recurring.Recurrence.Interval(),
		ExecutionDay:      recurring.Recurrence.ExecutionDayOfMonth(),
		StartDate:         recurring.StartDate,
		EndDate:           recurring.EndDate,
		NextExecutionDate: recurring.NextExecutionDate,
		LastExecutionDate: recurring.LastExecutionDate,
		IsActive:          recurring.IsActive,
		CreatedAt:         recurring.CreatedAt,
		ModifiedAt:        recurring.ModifiedAt,
		DeletedAt:         recurring.DeletedAt,
	}
}
