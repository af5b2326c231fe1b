// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerType represents the type of a ledger entry (income or expense).
type LedgerType string

const (
	LedgerTypeIncome  LedgerType = "INCOME"
	LedgerTypeExpense LedgerType = "EXPENSE"
)

// IsValid reports whether the ledger type is one of the known values.
func (t LedgerType) IsValid() bool {
	return t == LedgerTypeIncome || t == LedgerTypeExpense
}

// Category is the closed set of spending categories.
type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryTransport     Category = "TRANSPORT"
	CategoryCafe          Category = "CAFE"
	CategoryShopping      Category = "SHOPPING"
	CategoryLiving        Category = "LIVING"
	CategoryCommunication Category = "COMMUNICATION"
	CategoryMedical       Category = "MEDICAL"
	CategoryEducation     Category = "EDUCATION"
	CategorySubscription  Category = "SUBSCRIPTION"
	CategoryEtc           Category = "ETC"
)

// AllCategories lists every category in declaration order.
var AllCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryCafe,
	CategoryShopping,
	CategoryLiving,
	CategoryCommunication,
	CategoryMedical,
	CategoryEducation,
	CategorySubscription,
	CategoryEtc,
}

// IsValid reports whether the category belongs to the closed set.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// PaymentMethod represents how a transaction was paid.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodKakaoPay PaymentMethod = "KAKAOPAY"
	PaymentMethodNaverPay PaymentMethod = "NAVERPAY"
)

// IsValid reports whether the payment method is one of the known values.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodCard, PaymentMethodCash, PaymentMethodTransfer,
		PaymentMethodKakaoPay, PaymentMethodNaverPay:
		return true
	}
	return false
}

// LedgerEntry represents one recorded income or expense transaction.
type LedgerEntry struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Type              LedgerType
	Amount            decimal.Decimal
	Description       string
	Place             string
	Category          Category
	PaymentMethod     PaymentMethod
	RecordedDate      time.Time
	IsAutoGenerated   bool
	SourceRecurringID *uuid.UUID
	AuditInfo
}

// NewLedgerEntry creates a user-recorded ledger entry.
func NewLedgerEntry(
	userID uuid.UUID,
	ledgerType LedgerType,
	amount decimal.Decimal,
	description string,
	place string,
	category Category,
	paymentMethod PaymentMethod,
	recordedDate time.Time,
) *LedgerEntry {
	return &LedgerEntry{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          ledgerType,
		Amount:        amount,
		Description:   description,
		Place:         place,
		Category:      category,
		PaymentMethod: paymentMethod,
		RecordedDate:  recordedDate,
		AuditInfo:     NewAuditInfo(),
	}
}

// Update replaces the user-editable fields of the entry.
func (e *LedgerEntry) Update(
	ledgerType LedgerType,
	amount decimal.Decimal,
	description string,
	place string,
	category Category,
	paymentMethod PaymentMethod,
	recordedDate time.Time,
) {
	e.Type = ledgerType
	e.Amount = amount
	e.Description = description
	e.Place = place
	e.Category = category
	e.PaymentMethod = paymentMethod
	e.RecordedDate = recordedDate
	e.Touch()
}

// LedgerListResult represents one page of a filtered entry listing.
type LedgerListResult struct {
	Entries    []*LedgerEntry
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// LedgerSearchCondition narrows a listing; nil fields are ignored.
type LedgerSearchCondition struct {
	Type      *LedgerType
	Category  *Category
	StartDate *time.Time
	EndDate   *time.Time
}
