// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/moneybook/backend/internal/domain/entity"
)

// BudgetAlert carries everything the mailer needs to notify a user that
// a budget crossed its alert threshold.
type BudgetAlert struct {
	RecipientEmail string
	RecipientName  string
	Budget         *entity.Budget
	Usage          *entity.BudgetUsage
}

// AlertSender defines the interface for delivering budget alert notifications.
type AlertSender interface {
	// SendBudgetAlert delivers a threshold-crossed notification.
	SendBudgetAlert(ctx context.Context, alert BudgetAlert) error
}
