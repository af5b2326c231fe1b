// Package recurring contains recurring transaction use cases.
package recurring

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

// fakeRecurringRepo is an in-memory RecurringRepository.
type fakeRecurringRepo struct {
	rules       map[uuid.UUID]*entity.RecurringTransaction
	updateCalls int
	updateErr   error
}

func newFakeRecurringRepo() *fakeRecurringRepo {
	return &fakeRecurringRepo{rules: make(map[uuid.UUID]*entity.RecurringTransaction)}
}

func (r *fakeRecurringRepo) Create(ctx context.Context, recurring *entity.RecurringTransaction) error {
	r.rules[recurring.ID] = recurring
	return nil
}

func (r *fakeRecurringRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTransaction, error) {
	rule, ok := r.rules[id]
	if !ok {
		return nil, domainerror.ErrRecurringNotFound
	}
	return rule, nil
}

func (r *fakeRecurringRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringTransaction, error) {
	var out []*entity.RecurringTransaction
	for _, rule := range r.rules {
		if rule.UserID == userID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRecurringRepo) FindActiveDue(ctx context.Context, date time.Time) ([]*entity.RecurringTransaction, error) {
	var out []*entity.RecurringTransaction
	for _, rule := range r.rules {
		if rule.IsActive && !rule.NextExecutionDate.After(date) {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRecurringRepo) Update(ctx context.Context, recurring *entity.RecurringTransaction) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updateCalls++
	r.rules[recurring.ID] = recurring
	return nil
}

// fakeLedgerStore records created entries and can simulate duplicate or
// transient failures on selected dates.
type fakeLedgerStore struct {
	created       []*entity.LedgerEntry
	duplicateDays map[string]bool
	failDays      map[string]bool
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{
		duplicateDays: make(map[string]bool),
		failDays:      make(map[string]bool),
	}
}

func (r *fakeLedgerStore) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	day := entry.RecordedDate.Format("2006-01-02")
	if r.duplicateDays[day] {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeDuplicateExecution,
			"entry already generated for this date",
			domainerror.ErrDuplicateExecution,
		)
	}
	if r.failDays[day] {
		return errors.New("database unavailable")
	}
	r.created = append(r.created, entry)
	return nil
}

func (r *fakeLedgerStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	return nil, domainerror.ErrLedgerEntryNotFound
}

func (r *fakeLedgerStore) Search(ctx context.Context, userID uuid.UUID, cond entity.LedgerSearchCondition, page, limit int) (*entity.LedgerListResult, error) {
	return &entity.LedgerListResult{}, nil
}

func (r *fakeLedgerStore) Update(ctx context.Context, entry *entity.LedgerEntry) error { return nil }
func (r *fakeLedgerStore) SoftDelete(ctx context.Context, id uuid.UUID) error          { return nil }

func (r *fakeLedgerStore) SumByTypeAndRange(ctx context.Context, userID uuid.UUID, ledgerType entity.LedgerType, category *entity.Category, start, end time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeLedgerStore) MonthlyGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.MonthlyGroupedSum, error) {
	return nil, nil
}

func (r *fakeLedgerStore) CategoryGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]adapter.CategoryGroupedSum, error) {
	return nil, nil
}

func (r *fakeLedgerStore) PaymentMethodGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.PaymentMethodGroupedSum, error) {
	return nil, nil
}

// fakeStatsCache counts invalidations.
type fakeStatsCache struct {
	invalidated []string
}

func (c *fakeStatsCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	return false, nil
}

func (c *fakeStatsCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (c *fakeStatsCache) InvalidateUser(ctx context.Context, userID string) error {
	c.invalidated = append(c.invalidated, userID)
	return nil
}

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func newDailyRule(start time.Time) *entity.RecurringTransaction {
	return entity.NewRecurringTransaction(
		uuid.New(),
		"Daily coffee",
		entity.LedgerTypeExpense,
		decimal.NewFromInt(4500),
		"",
		"",
		entity.CategoryCafe,
		entity.PaymentMethodCard,
		entity.DailyRecurrence{Every: 1},
		start,
		nil,
	)
}

func TestExecuteDueRecurringUseCase_Execute(t *testing.T) {
	newUseCase := func(recurringRepo *fakeRecurringRepo, ledgerRepo *fakeLedgerStore, cache *fakeStatsCache) *ExecuteDueRecurringUseCase {
		return NewExecuteDueRecurringUseCase(
			recurringRepo,
			ledgerRepo,
			cache,
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)
	}

	t.Run("executes a rule due today", func(t *testing.T) {
		recurringRepo := newFakeRecurringRepo()
		ledgerRepo := newFakeLedgerStore()
		cache := &fakeStatsCache{}

		rule := newDailyRule(day(10))
		recurringRepo.rules[rule.ID] = rule

		uc := newUseCase(recurringRepo, ledgerRepo, cache)
		out, err := uc.Execute(context.Background(), ExecuteDueRecurringInput{Date: day(10)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Executed != 1 {
			t.Errorf("expected 1 execution, got %d", out.Executed)
		}
		if len(ledgerRepo.created) != 1 {
			t.Fatalf("expected 1 generated entry, got %d", len(ledgerRepo.created))
		}
		if !ledgerRepo.created[0].IsAutoGenerated {
			t.Error("expected generated entry to be auto-generated")
		}
		if !rule.NextExecutionDate.Equal(day(11)) {
			t.Errorf("expected next execution on 2025-06-11, got %s", rule.NextExecutionDate.Format("2006-01-02"))
		}
		if len(cache.invalidated) != 1 {
			t.Errorf("expected 1 cache invalidation, got %d", len(cache.invalidated))
		}
	})

	t.Run("catches up missed executions one period at a time", func(t *testing.T) {
		recurringRepo := newFakeRecurringRepo()
		ledgerRepo := newFakeLedgerStore()
		cache := &fakeStatsCache{}

		// Rule started four days ago; the scheduler was down since.
		rule := newDailyRule(day(7))
		recurringRepo.rules[rule.ID] = rule

		uc := newUseCase(recurringRepo, ledgerRepo, cache)
		out, err := uc.Execute(context.Background(), ExecuteDueRecurringInput{Date: day(10)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Executed != 4 {
			t.Fatalf("expected 4 catch-up executions, got %d", out.Executed)
		}
		for i, want := range []time.Time{day(7), day(8), day(9), day(10)} {
			if !ledgerRepo.created[i].RecordedDate.Equal(want) {
				t.Errorf("entry %d: expected recorded date %s, got %s",
					i, want.Format("2006-01-02"), ledgerRepo.created[i].RecordedDate.Format("2006-01-02"))
			}
		}
		if !rule.NextExecutionDate.Equal(day(11)) {
			t.Errorf("expected next execution on 2025-06-11, got %s", rule.NextExecutionDate.Format("2006-01-02"))
		}
		if recurringRepo.updateCalls != 1 {
			t.Errorf("expected a single schedule update per rule, got %d", recurringRepo.updateCalls)
		}
	})

	t.Run("duplicate execution is skipped and the schedule advances", func(t *testing.T) {
		recurringRepo := newFakeRecurringRepo()
		ledgerRepo := newFakeLedgerStore()
		ledgerRepo.duplicateDays["2025-06-09"] = true
		cache := &fakeStatsCache{}

		rule := newDailyRule(day(9))
		recurringRepo.rules[rule.ID] = rule

		uc := newUseCase(recurringRepo, ledgerRepo, cache)
		out, err := uc.Execute(context.Background(), ExecuteDueRecurringInput{Date: day(10)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Skipped != 1 {
			t.Errorf("expected 1 skipped execution, got %d", out.Skipped)
		}
		if out.Executed != 1 {
			t.Errorf("expected 1 execution, got %d", out.Executed)
		}
		if !rule.NextExecutionDate.Equal(day(11)) {
			t.Errorf("expected schedule to advance past the duplicate, got %s", rule.NextExecutionDate.Format("2006-01-02"))
		}
	})

	t.Run("transient failure stops the rule without advancing", func(t *testing.T) {
		recurringRepo := newFakeRecurringRepo()
		ledgerRepo := newFakeLedgerStore()
		ledgerRepo.failDays["2025-06-10"] = true
		cache := &fakeStatsCache{}

		rule := newDailyRule(day(10))
		recurringRepo.rules[rule.ID] = rule

		uc := newUseCase(recurringRepo, ledgerRepo, cache)
		out, err := uc.Execute(context.Background(), ExecuteDueRecurringInput{Date: day(10)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Failed != 1 {
			t.Errorf("expected 1 failure, got %d", out.Failed)
		}
		if !rule.NextExecutionDate.Equal(day(10)) {
			t.Errorf("expected schedule to stay on the failed date, got %s", rule.NextExecutionDate.Format("2006-01-02"))
		}
		if recurringRepo.updateCalls != 0 {
			t.Errorf("expected no schedule update after failure, got %d", recurringRepo.updateCalls)
		}
	})

	t.Run("expired rule generates nothing", func(t *testing.T) {
		recurringRepo := newFakeRecurringRepo()
		ledgerRepo := newFakeLedgerStore()
		cache := &fakeStatsCache{}

		rule := newDailyRule(day(1))
		end := day(5)
		rule.EndDate = &end
		recurringRepo.rules[rule.ID] = rule

		uc := newUseCase(recurringRepo, ledgerRepo, cache)
		out, err := uc.Execute(context.Background(), ExecuteDueRecurringInput{Date: day(10)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Executions inside the rule's lifetime still happen; none after.
		if out.Executed != 5 {
			t.Errorf("expected 5 executions up to the end date, got %d", out.Executed)
		}
		for _, entry := range ledgerRepo.created {
			if entry.RecordedDate.After(end) {
				t.Errorf("entry generated after the end date: %s", entry.RecordedDate.Format("2006-01-02"))
			}
		}
	})

	t.Run("inactive rule is not picked up", func(t *testing.T) {
		recurringRepo := newFakeRecurringRepo()
		ledgerRepo := newFakeLedgerStore()
		cache := &fakeStatsCache{}

		rule := newDailyRule(day(10))
		rule.Deactivate()
		recurringRepo.rules[rule.ID] = rule

		uc := newUseCase(recurringRepo, ledgerRepo, cache)
		out, err := uc.Execute(context.Background(), ExecuteDueRecurringInput{Date: day(10)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Executed != 0 {
			t.Errorf("expected no executions, got %d", out.Executed)
		}
	})
}
