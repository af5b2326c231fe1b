// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
	"github.com/moneybook/backend/internal/integration/persistence/model"
)

// openTestDB opens an isolated in-memory database with the ledger schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection so every statement sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.LedgerModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func autoEntry(userID, sourceID uuid.UUID, recordedDate time.Time) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:                uuid.New(),
		UserID:            userID,
		Type:              entity.LedgerTypeExpense,
		Amount:            decimal.NewFromInt(4500),
		Description:       "Daily coffee",
		Category:          entity.CategoryCafe,
		PaymentMethod:     entity.PaymentMethodCard,
		RecordedDate:      recordedDate,
		IsAutoGenerated:   true,
		SourceRecurringID: &sourceID,
		AuditInfo:         entity.NewAuditInfo(),
	}
}

func TestLedgerRepository_Create_DuplicateExecution(t *testing.T) {
	repo := NewLedgerRepository(openTestDB(t))
	userID := uuid.New()
	sourceID := uuid.New()
	recordedDate := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	t.Run("collision on source and date maps to duplicate execution", func(t *testing.T) {
		if err := repo.Create(context.Background(), autoEntry(userID, sourceID, recordedDate)); err != nil {
			t.Fatalf("first create failed: %v", err)
		}

		err := repo.Create(context.Background(), autoEntry(userID, sourceID, recordedDate))
		if err == nil {
			t.Fatal("expected the second create to collide")
		}

		var ledgerErr *domainerror.LedgerError
		if !errors.As(err, &ledgerErr) {
			t.Fatalf("expected LedgerError, got %v", err)
		}
		if ledgerErr.Code != domainerror.ErrCodeDuplicateExecution {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeDuplicateExecution, ledgerErr.Code)
		}
		if !errors.Is(err, domainerror.ErrDuplicateExecution) {
			t.Error("expected error to unwrap to ErrDuplicateExecution")
		}
	})

	t.Run("same source on another date does not collide", func(t *testing.T) {
		err := repo.Create(context.Background(), autoEntry(userID, sourceID, recordedDate.AddDate(0, 0, 1)))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("manual entries on the same date never collide", func(t *testing.T) {
		manual := func() *entity.LedgerEntry {
			e := autoEntry(userID, uuid.Nil, recordedDate)
			e.IsAutoGenerated = false
			e.SourceRecurringID = nil
			return e
		}
		if err := repo.Create(context.Background(), manual()); err != nil {
			t.Fatalf("first manual create failed: %v", err)
		}
		if err := repo.Create(context.Background(), manual()); err != nil {
			t.Errorf("second manual create failed: %v", err)
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"pgx unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"pgx other constraint", &pgconn.PgError{Code: "23503"}, false},
		{"gorm translated duplicate", gorm.ErrDuplicatedKey, true},
		{"sqlite constraint message", errors.New("constraint failed: UNIQUE constraint failed: ledger_entries.recorded_date, ledger_entries.source_recurring_id (2067)"), true},
		{"unrelated error", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
