// Package email delivers budget alert notifications via Resend.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/moneybook/backend/internal/application/adapter"
	domainerror "github.com/moneybook/backend/internal/domain/error"
)

// ResendAlertSender implements the adapter.AlertSender interface using Resend.
type ResendAlertSender struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendAlertSender creates a new Resend-backed alert sender.
func NewResendAlertSender(apiKey, fromName, fromEmail string) *ResendAlertSender {
	return &ResendAlertSender{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// SendBudgetAlert delivers a threshold-crossed notification.
func (c *ResendAlertSender) SendBudgetAlert(ctx context.Context, alert adapter.BudgetAlert) error {
	from := fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)
	subject := fmt.Sprintf("Budget alert: %s is at %s%%",
		alert.Budget.Name, alert.Usage.UsagePercentage.StringFixed(2))

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{alert.RecipientEmail},
		Subject: subject,
		Html:    renderAlertHTML(alert),
		Text:    renderAlertText(alert),
	}

	if _, err := c.client.Emails.SendWithContext(ctx, params); err != nil {
		if isPermanentError(err) {
			return domainerror.NewAlertError(
				domainerror.ErrCodePermanentAlertFailure,
				"permanent alert delivery failure",
				err,
			)
		}
		return domainerror.NewAlertError(
			domainerror.ErrCodeTemporaryAlertFailure,
			"temporary alert delivery failure",
			err,
		)
	}

	return nil
}

// renderAlertHTML builds the HTML body for the alert email.
func renderAlertHTML(alert adapter.BudgetAlert) string {
	scope := "all categories"
	if alert.Budget.Category != nil {
		scope = string(*alert.Budget.Category)
	}

	return fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Your budget <strong>%s</strong> (%s) has reached <strong>%s%%</strong> of its limit.</p>
<ul>
<li>Budget amount: %s</li>
<li>Spent so far: %s</li>
<li>Remaining: %s</li>
</ul>
<p>Period: %s to %s</p>
</body></html>`,
		alert.RecipientName,
		alert.Budget.Name,
		scope,
		alert.Usage.UsagePercentage.StringFixed(2),
		alert.Budget.Amount.StringFixed(2),
		alert.Usage.TotalSpent.StringFixed(2),
		alert.Usage.RemainingAmount.StringFixed(2),
		alert.Budget.StartDate.Format("2006-01-02"),
		alert.Budget.EndDate.Format("2006-01-02"),
	)
}

// renderAlertText builds the plain text body for the alert email.
func renderAlertText(alert adapter.BudgetAlert) string {
	return fmt.Sprintf(
		"Hi %s, your budget %q has reached %s%% of its limit. Spent %s of %s; %s remaining.",
		alert.RecipientName,
		alert.Budget.Name,
		alert.Usage.UsagePercentage.StringFixed(2),
		alert.Usage.TotalSpent.StringFixed(2),
		alert.Budget.Amount.StringFixed(2),
		alert.Usage.RemainingAmount.StringFixed(2),
	)
}

// isPermanentError checks if the error should not be retried.
// Permanent errors include: 401 (Unauthorized), 403 (Forbidden), 422 (Validation Error)
// Temporary errors include: 429 (Rate Limit), 5xx (Server Errors)
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	permanentPatterns := []string{
		"401",
		"403",
		"422",
		"unauthorized",
		"forbidden",
		"validation",
		"invalid",
		"bad request",
	}

	for _, pattern := range permanentPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// NoopAlertSender drops alerts, for deployments without a Resend key.
// Budgets still latch on successful "delivery" so enabling email later
// does not replay old alerts.
type NoopAlertSender struct{}

// SendBudgetAlert discards the alert.
func (NoopAlertSender) SendBudgetAlert(ctx context.Context, alert adapter.BudgetAlert) error {
	return nil
}

// MockAlertSender is a mock implementation for testing.
type MockAlertSender struct {
	SentAlerts  []adapter.BudgetAlert
	ShouldFail  bool
	FailError   error
	IsPermanent bool
}

// NewMockAlertSender creates a new mock alert sender.
func NewMockAlertSender() *MockAlertSender {
	return &MockAlertSender{
		SentAlerts: make([]adapter.BudgetAlert, 0),
	}
}

// SendBudgetAlert implements the adapter.AlertSender interface for testing.
func (m *MockAlertSender) SendBudgetAlert(ctx context.Context, alert adapter.BudgetAlert) error {
	if m.ShouldFail {
		code := domainerror.ErrCodeTemporaryAlertFailure
		if m.IsPermanent {
			code = domainerror.ErrCodePermanentAlertFailure
		}
		return domainerror.NewAlertError(code, "mock alert failure", m.FailError)
	}

	m.SentAlerts = append(m.SentAlerts, alert)
	return nil
}

// Reset clears all sent alerts and failure configuration.
func (m *MockAlertSender) Reset() {
	m.SentAlerts = make([]adapter.BudgetAlert, 0)
	m.ShouldFail = false
	m.FailError = nil
	m.IsPermanent = false
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.AlertSender = (*ResendAlertSender)(nil)
	_ adapter.AlertSender = NoopAlertSender{}
	_ adapter.AlertSender = (*MockAlertSender)(nil)
)
