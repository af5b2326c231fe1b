// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
	"github.com/moneybook/backend/internal/integration/persistence/model"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// ledgerRepository implements the adapter.LedgerRepository interface.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// Create creates a new ledger entry in the database. A collision on the
// (source_recurring_id, recorded_date) unique index maps to
// DuplicateExecution so the scheduler can treat it as already done.
func (r *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	ledgerModel := model.LedgerFromEntity(entry)
	result := r.db.WithContext(ctx).Create(ledgerModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeDuplicateExecution,
				"entry already generated for this date",
				domainerror.ErrDuplicateExecution,
			)
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a non-deleted ledger entry by its ID.
func (r *ledgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	var ledgerModel model.LedgerModel
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		First(&ledgerModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLedgerEntryNotFound
		}
		return nil, result.Error
	}
	return ledgerModel.ToEntity(), nil
}

// Search retrieves entries matching the condition with pagination,
// newest recorded date first.
func (r *ledgerRepository) Search(ctx context.Context, userID uuid.UUID, cond entity.LedgerSearchCondition, page, limit int) (*entity.LedgerListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.LedgerModel{}).
		Where("user_id = ?", userID).
		Where("deleted_at IS NULL")

	if cond.Type != nil {
		query = query.Where("type = ?", string(*cond.Type))
	}
	if cond.Category != nil {
		query = query.Where("category = ?", string(*cond.Category))
	}
	if cond.StartDate != nil {
		query = query.Where("recorded_date >= ?", *cond.StartDate)
	}
	if cond.EndDate != nil {
		query = query.Where("recorded_date <= ?", *cond.EndDate)
	}

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var ledgerModels []model.LedgerModel
	result := query.
		Order("recorded_date DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ledgerModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.LedgerEntry, len(ledgerModels))
	for i, lm := range ledgerModels {
		entries[i] = lm.ToEntity()
	}

	return &entity.LedgerListResult{
		Entries:    entries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Update updates an existing ledger entry in the database.
func (r *ledgerRepository) Update(ctx context.Context, entry *entity.LedgerEntry) error {
	ledgerModel := model.LedgerFromEntity(entry)
	result := r.db.WithContext(ctx).Save(ledgerModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// SoftDelete marks an entry as deleted without removing the row.
func (r *ledgerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.LedgerModel{}).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Updates(map[string]interface{}{
			"deleted_at":  now,
			"modified_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLedgerEntryNotFound
	}
	return nil
}

// SumByTypeAndRange sums non-deleted entries of one type within the
// inclusive date range, optionally restricted to one category.
func (r *ledgerRepository) SumByTypeAndRange(ctx context.Context, userID uuid.UUID, ledgerType entity.LedgerType, category *entity.Category, start, end time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&model.LedgerModel{}).
		Where("user_id = ?", userID).
		Where("type = ?", string(ledgerType)).
		Where("recorded_date >= ? AND recorded_date <= ?", start, end).
		Where("deleted_at IS NULL")

	if category != nil {
		query = query.Where("category = ?", string(*category))
	}

	var result struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(amount), 0) as total").Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger entries: %w", err)
	}

	return result.Total, nil
}

// MonthlyGroupedSums aggregates income and expense per calendar month
// within the inclusive date range.
func (r *ledgerRepository) MonthlyGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.MonthlyGroupedSum, error) {
	var results []struct {
		Year       int             `gorm:"column:year"`
		Month      int             `gorm:"column:month"`
		IncomeSum  decimal.Decimal `gorm:"column:income_sum"`
		ExpenseSum decimal.Decimal `gorm:"column:expense_sum"`
	}

	query := `
		SELECT
			EXTRACT(YEAR FROM recorded_date)::int as year,
			EXTRACT(MONTH FROM recorded_date)::int as month,
			COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) as income_sum,
			COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) as expense_sum
		FROM ledger_entries
		WHERE user_id = ?
			AND recorded_date >= ?
			AND recorded_date <= ?
			AND deleted_at IS NULL
		GROUP BY 1, 2
		ORDER BY 1, 2
	`

	err := r.db.WithContext(ctx).
		Raw(query, userID, start, end).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly sums: %w", err)
	}

	sums := make([]adapter.MonthlyGroupedSum, len(results))
	for i, res := range results {
		sums[i] = adapter.MonthlyGroupedSum{
			Year:       res.Year,
			Month:      res.Month,
			IncomeSum:  res.IncomeSum,
			ExpenseSum: res.ExpenseSum,
		}
	}
	return sums, nil
}

// CategoryGroupedSums aggregates expense totals and counts per category
// within the inclusive date range, largest sum first.
func (r *ledgerRepository) CategoryGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]adapter.CategoryGroupedSum, error) {
	query := r.db.WithContext(ctx).Model(&model.LedgerModel{}).
		Select("category, COALESCE(SUM(amount), 0) as sum, COUNT(*) as count").
		Where("user_id = ?", userID).
		Where("type = ?", string(entity.LedgerTypeExpense)).
		Where("recorded_date >= ? AND recorded_date <= ?", start, end).
		Where("deleted_at IS NULL").
		Group("category").
		Order("sum DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []struct {
		Category string          `gorm:"column:category"`
		Sum      decimal.Decimal `gorm:"column:sum"`
		Count    int64           `gorm:"column:count"`
	}
	if err := query.Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate category sums: %w", err)
	}

	sums := make([]adapter.CategoryGroupedSum, len(results))
	for i, res := range results {
		sums[i] = adapter.CategoryGroupedSum{
			Category: entity.Category(res.Category),
			Sum:      res.Sum,
			Count:    res.Count,
		}
	}
	return sums, nil
}

// PaymentMethodGroupedSums aggregates totals and counts per payment
// method within the inclusive date range, largest sum first.
func (r *ledgerRepository) PaymentMethodGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.PaymentMethodGroupedSum, error) {
	var results []struct {
		PaymentMethod string          `gorm:"column:payment_method"`
		Sum           decimal.Decimal `gorm:"column:sum"`
		Count         int64           `gorm:"column:count"`
	}

	err := r.db.WithContext(ctx).Model(&model.LedgerModel{}).
		Select("payment_method, COALESCE(SUM(amount), 0) as sum, COUNT(*) as count").
		Where("user_id = ?", userID).
		Where("recorded_date >= ? AND recorded_date <= ?", start, end).
		Where("deleted_at IS NULL").
		Group("payment_method").
		Order("sum DESC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payment method sums: %w", err)
	}

	sums := make([]adapter.PaymentMethodGroupedSum, len(results))
	for i, res := range results {
		sums[i] = adapter.PaymentMethodGroupedSum{
			PaymentMethod: entity.PaymentMethod(res.PaymentMethod),
			Sum:           res.Sum,
			Count:         res.Count,
		}
	}
	return sums, nil
}

// isUniqueViolation reports whether the error is a unique constraint
// violation. The pgx driver surfaces *pgconn.PgError; gorm's error
// translation yields ErrDuplicatedKey; SQLite (used by the integration
// harness) reports the failed constraint in its message.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
