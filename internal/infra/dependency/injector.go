// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/moneybook/backend/config"
	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/application/usecase/auth"
	"github.com/moneybook/backend/internal/application/usecase/budget"
	"github.com/moneybook/backend/internal/application/usecase/insights"
	"github.com/moneybook/backend/internal/application/usecase/ledger"
	"github.com/moneybook/backend/internal/application/usecase/recurring"
	"github.com/moneybook/backend/internal/application/usecase/statistics"
	"github.com/moneybook/backend/internal/infra/server/router"
	"github.com/moneybook/backend/internal/integration/adapters"
	"github.com/moneybook/backend/internal/integration/email"
	"github.com/moneybook/backend/internal/integration/entrypoint/controller"
	"github.com/moneybook/backend/internal/integration/entrypoint/middleware"
	"github.com/moneybook/backend/internal/integration/persistence"
	"github.com/moneybook/backend/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *router.Router
	Scheduler *scheduler.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) *Injector {
	logger := slog.Default()

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	ledgerRepo := persistence.NewLedgerRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	recurringRepo := persistence.NewRecurringRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	statsCache := newStatsCache(cfg, logger)
	alertSender := newAlertSender(cfg)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Create ledger use cases
	createEntryUseCase := ledger.NewCreateEntryUseCase(ledgerRepo, statsCache)
	getEntryUseCase := ledger.NewGetEntryUseCase(ledgerRepo)
	listEntriesUseCase := ledger.NewListEntriesUseCase(ledgerRepo)
	updateEntryUseCase := ledger.NewUpdateEntryUseCase(ledgerRepo, statsCache)
	deleteEntryUseCase := ledger.NewDeleteEntryUseCase(ledgerRepo, statsCache)

	// Create budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo)
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo)
	deactivateBudgetUseCase := budget.NewDeactivateBudgetUseCase(budgetRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)
	budgetUsageUseCase := budget.NewGetBudgetUsageUseCase(budgetRepo, ledgerRepo, userRepo, alertSender, logger)
	resetAlertUseCase := budget.NewResetBudgetAlertUseCase(budgetRepo)

	// Create recurring use cases
	createRecurringUseCase := recurring.NewCreateRecurringUseCase(recurringRepo)
	listRecurringUseCase := recurring.NewListRecurringUseCase(recurringRepo)
	updateRecurringUseCase := recurring.NewUpdateRecurringUseCase(recurringRepo)
	setRecurringActiveUseCase := recurring.NewSetRecurringActiveUseCase(recurringRepo)
	deleteRecurringUseCase := recurring.NewDeleteRecurringUseCase(recurringRepo)
	executeDueUseCase := recurring.NewExecuteDueRecurringUseCase(recurringRepo, ledgerRepo, statsCache, logger)

	// Create statistics use cases
	monthlyStatsUseCase := statistics.NewMonthlyStatisticsUseCase(ledgerRepo, statsCache, logger)
	categoryStatsUseCase := statistics.NewCategoryStatisticsUseCase(ledgerRepo, statsCache, logger)
	paymentMethodStatsUseCase := statistics.NewPaymentMethodStatisticsUseCase(ledgerRepo, statsCache, logger)
	topCategoriesUseCase := statistics.NewTopCategoriesUseCase(ledgerRepo)
	trendUseCase := statistics.NewTrendAnalysisUseCase(ledgerRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(registerUseCase, loginUseCase)

	ledgerController := controller.NewLedgerController(
		createEntryUseCase,
		getEntryUseCase,
		listEntriesUseCase,
		updateEntryUseCase,
		deleteEntryUseCase,
	)

	budgetController := controller.NewBudgetController(
		createBudgetUseCase,
		getBudgetUseCase,
		listBudgetsUseCase,
		updateBudgetUseCase,
		deactivateBudgetUseCase,
		deleteBudgetUseCase,
		budgetUsageUseCase,
		resetAlertUseCase,
	)

	recurringController := controller.NewRecurringController(
		createRecurringUseCase,
		listRecurringUseCase,
		updateRecurringUseCase,
		setRecurringActiveUseCase,
		deleteRecurringUseCase,
	)

	statisticsController := controller.NewStatisticsController(
		monthlyStatsUseCase,
		categoryStatsUseCase,
		paymentMethodStatsUseCase,
		topCategoriesUseCase,
		trendUseCase,
	)

	// Insights need a model key; without one the routes are not mounted.
	var insightsController *controller.InsightsController
	if cfg.Gemini.APIKey != "" {
		adviceService := adapters.NewGeminiAdviceService(cfg.Gemini.APIKey)
		adviceUseCase := insights.NewSpendingAdviceUseCase(ledgerRepo, adviceService)
		insightsController = controller.NewInsightsController(adviceUseCase)
	}

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		ledgerController,
		budgetController,
		recurringController,
		statisticsController,
		insightsController,
		loginRateLimiter,
		authMiddleware,
	)

	// Create scheduler worker
	var worker *scheduler.Worker
	if cfg.Scheduler.Enabled {
		worker = scheduler.NewWorker(executeDueUseCase, scheduler.WorkerConfig{
			PollInterval: cfg.Scheduler.PollInterval,
		})
	}

	return &Injector{
		Config:    cfg,
		DB:        db,
		Router:    r,
		Scheduler: worker,
	}
}

// newStatsCache builds the statistics cache. Redis being unreachable or
// unconfigured degrades to a cache that never hits.
func newStatsCache(cfg *config.Config, logger *slog.Logger) adapter.StatsCache {
	if cfg.Redis.URL == "" {
		return adapters.NoopStatsCache{}
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Warn("Invalid Redis URL, statistics caching disabled", "error", err)
		return adapters.NoopStatsCache{}
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}

	return adapters.NewRedisStatsCache(redis.NewClient(opts))
}

// newAlertSender builds the budget alert sender. Without a Resend key
// alerts are dropped rather than failing usage reads.
func newAlertSender(cfg *config.Config) adapter.AlertSender {
	if cfg.Alert.ResendAPIKey == "" {
		return email.NoopAlertSender{}
	}
	return email.NewResendAlertSender(cfg.Alert.ResendAPIKey, cfg.Alert.FromName, cfg.Alert.FromEmail)
}
