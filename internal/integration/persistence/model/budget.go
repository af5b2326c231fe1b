// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database. A NULL
// category means the budget covers all categories.
type BudgetModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name           string          `gorm:"type:varchar(100);not null"`
	Period         string          `gorm:"type:varchar(10);not null"`
	StartDate      time.Time       `gorm:"type:date;not null;index"`
	EndDate        time.Time       `gorm:"type:date;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category       *string         `gorm:"type:varchar(20);index"`
	AlertThreshold decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	IsActive       bool            `gorm:"default:true;index"`
	IsAlertSent    bool            `gorm:"default:false"`
	CreatedAt      time.Time       `gorm:"not null"`
	ModifiedAt     time.Time       `gorm:"not null"`
	DeletedAt      *time.Time      `gorm:"index"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	var category *entity.Category
	if m.Category != nil {
		c := entity.Category(*m.Category)
		category = &c
	}

	return &entity.Budget{
		ID:             m.ID,
		UserID:         m.UserID,
		Name:           m.Name,
		Period:         entity.BudgetPeriod(m.Period),
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		Amount:         m.Amount,
		Category:       category,
		AlertThreshold: m.AlertThreshold,
		IsActive:       m.IsActive,
		IsAlertSent:    m.IsAlertSent,
		AuditInfo: entity.AuditInfo{
			CreatedAt:  m.CreatedAt,
			ModifiedAt: m.ModifiedAt,
			DeletedAt:  m.DeletedAt,
		},
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	var category *string
	if budget.Category != nil {
		c := string(*budget.Category)
		category = &c
	}

	return &BudgetModel{
		ID:             budget.ID,
		UserID:         budget.UserID,
		Name:           budget.Name,
		Period:         string(budget.Period),
		StartDate:      budget.StartDate,
		EndDate:        budget.EndDate,
		Amount:         budget.Amount,
		Category:       category,
		AlertThreshold: budget.AlertThreshold,
		IsActive:       budget.IsActive,
		IsAlertSent:    budget.IsAlertSent,
		CreatedAt:      budget.CreatedAt,
		ModifiedAt:     budget.ModifiedAt,
		DeletedAt:      budget.DeletedAt,
	}
}
