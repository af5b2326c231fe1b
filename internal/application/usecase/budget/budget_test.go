// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
)

// fakeBudgetRepo is an in-memory BudgetRepository for use case tests.
type fakeBudgetRepo struct {
	budgets     map[uuid.UUID]*entity.Budget
	overlapping *entity.Budget
	updateCalls int
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{budgets: make(map[uuid.UUID]*entity.Budget)}
}

func (r *fakeBudgetRepo) Create(ctx context.Context, budget *entity.Budget) error {
	r.budgets[budget.ID] = budget
	return nil
}

func (r *fakeBudgetRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	budget, ok := r.budgets[id]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	return budget, nil
}

func (r *fakeBudgetRepo) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, budget := range r.budgets {
		if budget.UserID == userID && budget.IsActive {
			out = append(out, budget)
		}
	}
	return out, nil
}

func (r *fakeBudgetRepo) FindOverlapping(ctx context.Context, userID uuid.UUID, category *entity.Category, start, end time.Time) (*entity.Budget, error) {
	return r.overlapping, nil
}

func (r *fakeBudgetRepo) Update(ctx context.Context, budget *entity.Budget) error {
	r.updateCalls++
	r.budgets[budget.ID] = budget
	return nil
}

// fakeLedgerSums implements the LedgerRepository surface the budget use
// cases touch; everything else is unreachable from this package.
type fakeLedgerSums struct {
	sum          decimal.Decimal
	lastCategory *entity.Category
}

func (r *fakeLedgerSums) Create(ctx context.Context, entry *entity.LedgerEntry) error { return nil }
func (r *fakeLedgerSums) FindByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	return nil, domainerror.ErrLedgerEntryNotFound
}
func (r *fakeLedgerSums) Search(ctx context.Context, userID uuid.UUID, cond entity.LedgerSearchCondition, page, limit int) (*entity.LedgerListResult, error) {
	return &entity.LedgerListResult{}, nil
}
func (r *fakeLedgerSums) Update(ctx context.Context, entry *entity.LedgerEntry) error { return nil }
func (r *fakeLedgerSums) SoftDelete(ctx context.Context, id uuid.UUID) error          { return nil }
func (r *fakeLedgerSums) SumByTypeAndRange(ctx context.Context, userID uuid.UUID, ledgerType entity.LedgerType, category *entity.Category, start, end time.Time) (decimal.Decimal, error) {
	r.lastCategory = category
	return r.sum, nil
}
func (r *fakeLedgerSums) MonthlyGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.MonthlyGroupedSum, error) {
	return nil, nil
}
func (r *fakeLedgerSums) CategoryGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]adapter.CategoryGroupedSum, error) {
	return nil, nil
}
func (r *fakeLedgerSums) PaymentMethodGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.PaymentMethodGroupedSum, error) {
	return nil, nil
}

// fakeUserRepo serves a single user.
type fakeUserRepo struct {
	user *entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, errors.New("user not found")
	}
	return r.user, nil
}
func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.user, nil
}
func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.user != nil, nil
}

// fakeAlertSender records alerts and can be told to fail.
type fakeAlertSender struct {
	sent []adapter.BudgetAlert
	fail bool
}

func (s *fakeAlertSender) SendBudgetAlert(ctx context.Context, alert adapter.BudgetAlert) error {
	if s.fail {
		return errors.New("delivery failed")
	}
	s.sent = append(s.sent, alert)
	return nil
}

func testDate(day int) time.Time {
	return time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateBudgetUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	validInput := func() CreateBudgetInput {
		return CreateBudgetInput{
			UserID:    userID,
			Name:      "June budget",
			Period:    entity.BudgetPeriodMonthly,
			StartDate: testDate(1),
			EndDate:   testDate(30),
			Amount:    decimal.NewFromInt(300000),
		}
	}

	t.Run("creates a budget with the default threshold", func(t *testing.T) {
		repo := newFakeBudgetRepo()
		uc := NewCreateBudgetUseCase(repo)

		out, err := uc.Execute(context.Background(), validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !out.Budget.AlertThreshold.Equal(entity.DefaultAlertThreshold) {
			t.Errorf("expected default threshold, got %s", out.Budget.AlertThreshold)
		}
		if len(repo.budgets) != 1 {
			t.Errorf("expected 1 persisted budget, got %d", len(repo.budgets))
		}
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		uc := NewCreateBudgetUseCase(newFakeBudgetRepo())

		input := validInput()
		input.Amount = decimal.Zero

		_, err := uc.Execute(context.Background(), input)
		assertBudgetErrorCode(t, err, domainerror.ErrCodeInvalidBudgetAmount)
	})

	t.Run("rejects a start date after the end date", func(t *testing.T) {
		uc := NewCreateBudgetUseCase(newFakeBudgetRepo())

		input := validInput()
		input.StartDate = testDate(30)
		input.EndDate = testDate(1)

		_, err := uc.Execute(context.Background(), input)
		assertBudgetErrorCode(t, err, domainerror.ErrCodeInvalidBudgetDateRange)
	})

	t.Run("rejects an unknown period", func(t *testing.T) {
		uc := NewCreateBudgetUseCase(newFakeBudgetRepo())

		input := validInput()
		input.Period = entity.BudgetPeriod("QUARTERLY")

		_, err := uc.Execute(context.Background(), input)
		assertBudgetErrorCode(t, err, domainerror.ErrCodeInvalidBudgetPeriod)
	})

	t.Run("rejects an overlapping active budget", func(t *testing.T) {
		repo := newFakeBudgetRepo()
		repo.overlapping = entity.NewBudget(
			userID, "Existing", entity.BudgetPeriodMonthly,
			testDate(1), testDate(30),
			decimal.NewFromInt(100000), nil, decimal.Zero,
		)
		uc := NewCreateBudgetUseCase(repo)

		_, err := uc.Execute(context.Background(), validInput())
		assertBudgetErrorCode(t, err, domainerror.ErrCodeDuplicateBudgetPeriod)
	})
}

func TestGetBudgetUsageUseCase_Execute(t *testing.T) {
	setup := func(spent int64, threshold int64) (*GetBudgetUsageUseCase, *fakeBudgetRepo, *fakeAlertSender, *entity.Budget, *entity.User) {
		user := entity.NewUser("user@example.com", "Test User", "hash")

		budget := entity.NewBudget(
			user.ID, "June budget", entity.BudgetPeriodMonthly,
			testDate(1), testDate(30),
			decimal.NewFromInt(100000), nil, decimal.NewFromInt(threshold),
		)

		budgetRepo := newFakeBudgetRepo()
		budgetRepo.budgets[budget.ID] = budget

		sender := &fakeAlertSender{}
		uc := NewGetBudgetUsageUseCase(
			budgetRepo,
			&fakeLedgerSums{sum: decimal.NewFromInt(spent)},
			&fakeUserRepo{user: user},
			sender,
			discardLogger(),
		)
		return uc, budgetRepo, sender, budget, user
	}

	t.Run("below threshold sends no alert", func(t *testing.T) {
		uc, repo, sender, budget, _ := setup(50000, 80)

		out, err := uc.Execute(context.Background(), GetBudgetUsageInput{UserID: budget.UserID, BudgetID: budget.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !out.Usage.UsagePercentage.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected usage 50%%, got %s", out.Usage.UsagePercentage)
		}
		if len(sender.sent) != 0 {
			t.Errorf("expected no alert, got %d", len(sender.sent))
		}
		if repo.updateCalls != 0 {
			t.Errorf("expected no latch update, got %d", repo.updateCalls)
		}
	})

	t.Run("category budget spend counts every expense in the period", func(t *testing.T) {
		user := entity.NewUser("user@example.com", "Test User", "hash")
		food := entity.CategoryFood
		budget := entity.NewBudget(
			user.ID, "June food budget", entity.BudgetPeriodMonthly,
			testDate(1), testDate(30),
			decimal.NewFromInt(100000), &food, decimal.NewFromInt(80),
		)

		budgetRepo := newFakeBudgetRepo()
		budgetRepo.budgets[budget.ID] = budget
		ledger := &fakeLedgerSums{sum: decimal.NewFromInt(50000)}

		uc := NewGetBudgetUsageUseCase(budgetRepo, ledger, &fakeUserRepo{user: user}, &fakeAlertSender{}, discardLogger())
		out, err := uc.Execute(context.Background(), GetBudgetUsageInput{UserID: budget.UserID, BudgetID: budget.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if ledger.lastCategory != nil {
			t.Errorf("expected the spend sum over all categories, got filter %s", *ledger.lastCategory)
		}
		if !out.Usage.TotalSpent.Equal(decimal.NewFromInt(50000)) {
			t.Errorf("expected total spent 50000, got %s", out.Usage.TotalSpent)
		}
	})

	t.Run("crossing the threshold sends the alert and latches", func(t *testing.T) {
		uc, repo, sender, budget, user := setup(85000, 80)

		_, err := uc.Execute(context.Background(), GetBudgetUsageInput{UserID: budget.UserID, BudgetID: budget.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(sender.sent) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(sender.sent))
		}
		if sender.sent[0].RecipientEmail != user.Email {
			t.Errorf("expected alert for %s, got %s", user.Email, sender.sent[0].RecipientEmail)
		}
		if !budget.IsAlertSent {
			t.Error("expected alert latch to be set")
		}
		if repo.updateCalls != 1 {
			t.Errorf("expected 1 latch update, got %d", repo.updateCalls)
		}
	})

	t.Run("latched budget does not alert twice", func(t *testing.T) {
		uc, _, sender, budget, _ := setup(85000, 80)
		budget.MarkAlertSent()

		_, err := uc.Execute(context.Background(), GetBudgetUsageInput{UserID: budget.UserID, BudgetID: budget.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(sender.sent) != 0 {
			t.Errorf("expected no alert for latched budget, got %d", len(sender.sent))
		}
	})

	t.Run("delivery failure leaves the latch clear", func(t *testing.T) {
		uc, repo, sender, budget, _ := setup(85000, 80)
		sender.fail = true

		_, err := uc.Execute(context.Background(), GetBudgetUsageInput{UserID: budget.UserID, BudgetID: budget.ID})
		if err != nil {
			t.Fatalf("expected delivery failure not to surface, got %v", err)
		}

		if budget.IsAlertSent {
			t.Error("expected latch to stay clear after failed delivery")
		}
		if repo.updateCalls != 0 {
			t.Errorf("expected no latch update after failed delivery, got %d", repo.updateCalls)
		}
	})

	t.Run("user with alerts disabled gets nothing", func(t *testing.T) {
		uc, _, sender, budget, user := setup(85000, 80)
		user.BudgetAlerts = false

		_, err := uc.Execute(context.Background(), GetBudgetUsageInput{UserID: budget.UserID, BudgetID: budget.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(sender.sent) != 0 {
			t.Errorf("expected no alert when disabled, got %d", len(sender.sent))
		}
	})

	t.Run("another user's budget is rejected", func(t *testing.T) {
		uc, _, _, budget, _ := setup(50000, 80)

		_, err := uc.Execute(context.Background(), GetBudgetUsageInput{UserID: uuid.New(), BudgetID: budget.ID})
		assertBudgetErrorCode(t, err, domainerror.ErrCodeUnauthorizedBudgetAccess)
	})

	t.Run("unknown budget is rejected", func(t *testing.T) {
		uc, _, _, budget, _ := setup(50000, 80)

		_, err := uc.Execute(context.Background(), GetBudgetUsageInput{UserID: budget.UserID, BudgetID: uuid.New()})
		assertBudgetErrorCode(t, err, domainerror.ErrCodeBudgetNotFound)
	})
}

func TestResetBudgetAlertUseCase_Execute(t *testing.T) {
	user := uuid.New()
	budget := entity.NewBudget(
		user, "June budget", entity.BudgetPeriodMonthly,
		testDate(1), testDate(30),
		decimal.NewFromInt(100000), nil, decimal.Zero,
	)
	budget.MarkAlertSent()

	repo := newFakeBudgetRepo()
	repo.budgets[budget.ID] = budget

	uc := NewResetBudgetAlertUseCase(repo)

	out, err := uc.Execute(context.Background(), ResetBudgetAlertInput{UserID: user, BudgetID: budget.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Budget.IsAlertSent {
		t.Error("expected alert latch to be cleared")
	}
	if repo.updateCalls != 1 {
		t.Errorf("expected 1 update, got %d", repo.updateCalls)
	}
}

func assertBudgetErrorCode(t *testing.T, err error, code domainerror.BudgetErrorCode) {
	t.Helper()

	if err == nil {
		t.Fatal("expected an error, got nil")
	}

	var budgetErr *domainerror.BudgetError
	if !errors.As(err, &budgetErr) {
		t.Fatalf("expected a BudgetError, got %T: %v", err, err)
	}
	if budgetErr.Code != code {
		t.Errorf("expected code %s, got %s", code, budgetErr.Code)
	}
}
