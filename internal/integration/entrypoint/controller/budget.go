// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/application/usecase/budget"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
	"github.com/moneybook/backend/internal/integration/entrypoint/dto"
	"github.com/moneybook/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	createUseCase     *budget.CreateBudgetUseCase
	getUseCase        *budget.GetBudgetUseCase
	listUseCase       *budget.ListBudgetsUseCase
	updateUseCase     *budget.UpdateBudgetUseCase
	deactivateUseCase *budget.DeactivateBudgetUseCase
	deleteUseCase     *budget.DeleteBudgetUseCase
	usageUseCase      *budget.GetBudgetUsageUseCase
	resetAlertUseCase *budget.ResetBudgetAlertUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	createUseCase *budget.CreateBudgetUseCase,
	getUseCase *budget.GetBudgetUseCase,
	listUseCase *budget.ListBudgetsUseCase,
	updateUseCase *budget.UpdateBudgetUseCase,
	deactivateUseCase *budget.DeactivateBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
	usageUseCase *budget.GetBudgetUsageUseCase,
	resetAlertUseCase *budget.ResetBudgetAlertUseCase,
) *BudgetController {
	return &BudgetController{
		createUseCase:     createUseCase,
		getUseCase:        getUseCase,
		listUseCase:       listUseCase,
		updateUseCase:     updateUseCase,
		deactivateUseCase: deactivateUseCase,
		deleteUseCase:     deleteUseCase,
		usageUseCase:      usageUseCase,
		resetAlertUseCase: resetAlertUseCase,
	}
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	startDate, endDate, ok := c.parseBudgetDates(ctx, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	input := budget.CreateBudgetInput{
		UserID:         userID,
		Name:           req.Name,
		Period:         entity.BudgetPeriod(req.Period),
		StartDate:      startDate,
		EndDate:        endDate,
		Amount:         decimal.NewFromFloat(req.Amount),
		AlertThreshold: decimal.NewFromFloat(req.AlertThreshold),
	}
	if req.Category != nil {
		category := entity.Category(*req.Category)
		input.Category = &category
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(output.Budget))
}

// Get handles GET /budgets/:id requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	userID, budgetID, ok := c.resolveBudgetRequest(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), budget.GetBudgetInput{
		UserID:   userID,
		BudgetID: budgetID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets))
}

// Update handles PUT /budgets/:id requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	userID, budgetID, ok := c.resolveBudgetRequest(ctx)
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	startDate, endDate, ok := c.parseBudgetDates(ctx, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	input := budget.UpdateBudgetInput{
		UserID:         userID,
		BudgetID:       budgetID,
		Name:           req.Name,
		Period:         entity.BudgetPeriod(req.Period),
		StartDate:      startDate,
		EndDate:        endDate,
		Amount:         decimal.NewFromFloat(req.Amount),
		AlertThreshold: decimal.NewFromFloat(req.AlertThreshold),
		IsActive:       isActive,
	}
	if req.Category != nil {
		category := entity.Category(*req.Category)
		input.Category = &category
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Deactivate handles POST /budgets/:id/deactivate requests.
func (c *BudgetController) Deactivate(ctx *gin.Context) {
	userID, budgetID, ok := c.resolveBudgetRequest(ctx)
	if !ok {
		return
	}

	output, err := c.deactivateUseCase.Execute(ctx.Request.Context(), budget.DeactivateBudgetInput{
		UserID:   userID,
		BudgetID: budgetID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Delete handles DELETE /budgets/:id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	userID, budgetID, ok := c.resolveBudgetRequest(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		UserID:   userID,
		BudgetID: budgetID,
	}); err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Budget deleted",
	})
}

// GetUsage handles GET /budgets/:id/usage requests.
func (c *BudgetController) GetUsage(ctx *gin.Context) {
	userID, budgetID, ok := c.resolveBudgetRequest(ctx)
	if !ok {
		return
	}

	output, err := c.usageUseCase.Execute(ctx.Request.Context(), budget.GetBudgetUsageInput{
		UserID:   userID,
		BudgetID: budgetID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetUsageResponse(output.Usage))
}

// ResetAlert handles POST /budgets/:id/reset-alert requests.
func (c *BudgetController) ResetAlert(ctx *gin.Context) {
	userID, budgetID, ok := c.resolveBudgetRequest(ctx)
	if !ok {
		return
	}

	output, err := c.resetAlertUseCase.Execute(ctx.Request.Context(), budget.ResetBudgetAlertInput{
		UserID:   userID,
		BudgetID: budgetID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// resolveBudgetRequest extracts the authenticated user and the budget ID
// path parameter, writing the error response itself on failure.
func (c *BudgetController) resolveBudgetRequest(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, uuid.Nil, false
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID",
			Code:  string(domainerror.ErrCodeBudgetNotFound),
		})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, budgetID, true
}

// parseBudgetDates parses the start and end date strings, writing the
// error response itself on failure.
func (c *BudgetController) parseBudgetDates(ctx *gin.Context, startStr, endStr string) (time.Time, time.Time, bool) {
	startDate, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidBudgetDateRange),
		})
		return time.Time{}, time.Time{}, false
	}
	endDate, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidBudgetDateRange),
		})
		return time.Time{}, time.Time{}, false
	}
	return startDate, endDate, true
}

// handleBudgetError handles budget errors and returns appropriate HTTP responses.
func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		statusCode := c.getStatusCodeForBudgetError(budgetErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForBudgetError maps budget error codes to HTTP status codes.
func (c *BudgetController) getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeDuplicateBudgetPeriod:
		return http.StatusConflict
	case domainerror.ErrCodeUnauthorizedBudgetAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidBudgetAmount,
		domainerror.ErrCodeInvalidBudgetDateRange,
		domainerror.ErrCodeInvalidBudgetPeriod,
		domainerror.ErrCodeMissingBudgetFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
