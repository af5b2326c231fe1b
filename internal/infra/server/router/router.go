// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/moneybook/backend/internal/integration/entrypoint/controller"
	"github.com/moneybook/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	authController       *controller.AuthController
	ledgerController     *controller.LedgerController
	budgetController     *controller.BudgetController
	recurringController  *controller.RecurringController
	statisticsController *controller.StatisticsController
	insightsController   *controller.InsightsController
	loginRateLimiter     *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	ledgerController *controller.LedgerController,
	budgetController *controller.BudgetController,
	recurringController *controller.RecurringController,
	statisticsController *controller.StatisticsController,
	insightsController *controller.InsightsController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		authController:       authController,
		ledgerController:     ledgerController,
		budgetController:     budgetController,
		recurringController:  recurringController,
		statisticsController: statisticsController,
		insightsController:   insightsController,
		loginRateLimiter:     loginRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			}
		}

		// Ledger routes (require authentication)
		if r.ledgerController != nil && r.authMiddleware != nil {
			ledger := v1.Group("/ledger")
			ledger.Use(r.authMiddleware.Authenticate())
			{
				ledger.GET("", r.ledgerController.List)
				ledger.POST("", r.ledgerController.Create)
				ledger.GET("/:id", r.ledgerController.Get)
				ledger.PUT("/:id", r.ledgerController.Update)
				ledger.DELETE("/:id", r.ledgerController.Delete)
			}
		}

		// Budget routes (require authentication)
		if r.budgetController != nil && r.authMiddleware != nil {
			budgets := v1.Group("/budgets")
			budgets.Use(r.authMiddleware.Authenticate())
			{
				budgets.GET("", r.budgetController.List)
				budgets.POST("", r.budgetController.Create)
				budgets.GET("/:id", r.budgetController.Get)
				budgets.PUT("/:id", r.budgetController.Update)
				budgets.DELETE("/:id", r.budgetController.Delete)
				budgets.POST("/:id/deactivate", r.budgetController.Deactivate)
				budgets.GET("/:id/usage", r.budgetController.GetUsage)
				budgets.POST("/:id/reset-alert", r.budgetController.ResetAlert)
			}
		}

		// Recurring transaction routes (require authentication)
		if r.recurringController != nil && r.authMiddleware != nil {
			recurring := v1.Group("/recurring")
			recurring.Use(r.authMiddleware.Authenticate())
			{
				recurring.GET("", r.recurringController.List)
				recurring.POST("", r.recurringController.Create)
				recurring.PUT("/:id", r.recurringController.Update)
				recurring.DELETE("/:id", r.recurringController.Delete)
				recurring.POST("/:id/active", r.recurringController.SetActive)
			}
		}

		// Statistics routes (require authentication)
		if r.statisticsController != nil && r.authMiddleware != nil {
			statistics := v1.Group("/statistics")
			statistics.Use(r.authMiddleware.Authenticate())
			{
				statistics.GET("/monthly", r.statisticsController.Monthly)
				statistics.GET("/categories", r.statisticsController.Categories)
				statistics.GET("/payment-methods", r.statisticsController.PaymentMethods)
				statistics.GET("/top-categories", r.statisticsController.TopCategories)
				statistics.GET("/trend", r.statisticsController.Trend)
			}
		}

		// Insights routes (require authentication)
		if r.insightsController != nil && r.authMiddleware != nil {
			insights := v1.Group("/insights")
			insights.Use(r.authMiddleware.Authenticate())
			{
				insights.GET("/advice", r.insightsController.SpendingAdvice)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
