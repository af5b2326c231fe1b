// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account owner. Every ledger entry, budget, and
// recurring rule belongs to exactly one user.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	BudgetAlerts bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with budget alerts enabled.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		BudgetAlerts: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
