// Package scheduler drives recurring transaction execution.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/moneybook/backend/internal/application/usecase/recurring"
)

// Worker periodically executes due recurring transactions.
type Worker struct {
	executeDue   *recurring.ExecuteDueRecurringUseCase
	pollInterval time.Duration
	now          func() time.Time
}

// WorkerConfig holds configuration for the scheduler worker.
type WorkerConfig struct {
	PollInterval time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: time.Hour,
	}
}

// NewWorker creates a new scheduler worker.
func NewWorker(executeDue *recurring.ExecuteDueRecurringUseCase, config WorkerConfig) *Worker {
	return &Worker{
		executeDue:   executeDue,
		pollInterval: config.PollInterval,
		now:          time.Now,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
// Execution is idempotent per (rule, date), so overlapping runs after a
// restart or across replicas are safe.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Recurring scheduler started", "poll_interval", w.pollInterval)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Run immediately on start, then on ticker
	w.runPass(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Recurring scheduler shutting down")
			return
		case <-ticker.C:
			w.runPass(ctx)
		}
	}
}

// runPass executes one scheduling pass for today.
func (w *Worker) runPass(ctx context.Context) {
	today := w.now().UTC().Truncate(24 * time.Hour)

	if _, err := w.executeDue.Execute(ctx, recurring.ExecuteDueRecurringInput{Date: today}); err != nil {
		slog.Error("Recurring scheduling pass failed", "error", err)
	}
}

// RunOnce executes a single pass immediately (useful for testing).
func (w *Worker) RunOnce(ctx context.Context) {
	w.runPass(ctx)
}
