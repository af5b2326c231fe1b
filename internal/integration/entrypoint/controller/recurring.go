// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/application/usecase/recurring"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
	"github.com/moneybook/backend/internal/integration/entrypoint/dto"
	"github.com/moneybook/backend/internal/integration/entrypoint/middleware"
)

// RecurringController handles recurring transaction endpoints.
type RecurringController struct {
	createUseCase    *recurring.CreateRecurringUseCase
	listUseCase      *recurring.ListRecurringUseCase
	updateUseCase    *recurring.UpdateRecurringUseCase
	setActiveUseCase *recurring.SetRecurringActiveUseCase
	deleteUseCase    *recurring.DeleteRecurringUseCase
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(
	createUseCase *recurring.CreateRecurringUseCase,
	listUseCase *recurring.ListRecurringUseCase,
	updateUseCase *recurring.UpdateRecurringUseCase,
	setActiveUseCase *recurring.SetRecurringActiveUseCase,
	deleteUseCase *recurring.DeleteRecurringUseCase,
) *RecurringController {
	return &RecurringController{
		createUseCase:    createUseCase,
		listUseCase:      listUseCase,
		updateUseCase:    updateUseCase,
		setActiveUseCase: setActiveUseCase,
		deleteUseCase:    deleteUseCase,
	}
}

// Create handles POST /recurring requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateRecurringRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRecurringFields),
		})
		return
	}

	startDate, endDate, ok := c.parseRecurringDates(ctx, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	input := recurring.CreateRecurringInput{
		UserID:        userID,
		Name:          req.Name,
		Type:          entity.LedgerType(req.Type),
		Amount:        decimal.NewFromFloat(req.Amount),
		Description:   req.Description,
		Place:         req.Place,
		Category:      entity.Category(req.Category),
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		Pattern:       entity.RecurrencePattern(req.Pattern),
		Interval:      req.Interval,
		ExecutionDay:  req.ExecutionDay,
		StartDate:     startDate,
		EndDate:       endDate,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecurringResponse(output.Recurring))
}

// List handles GET /recurring requests.
func (c *RecurringController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurring.ListRecurringInput{
		UserID: userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringListResponse(output.Recurring))
}

// Update handles PUT /recurring/:id requests.
func (c *RecurringController) Update(ctx *gin.Context) {
	userID, recurringID, ok := c.resolveRecurringRequest(ctx)
	if !ok {
		return
	}

	var req dto.UpdateRecurringRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRecurringFields),
		})
		return
	}

	startDate, endDate, ok := c.parseRecurringDates(ctx, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	input := recurring.UpdateRecurringInput{
		UserID:        userID,
		RecurringID:   recurringID,
		Name:          req.Name,
		Type:          entity.LedgerType(req.Type),
		Amount:        decimal.NewFromFloat(req.Amount),
		Description:   req.Description,
		Place:         req.Place,
		Category:      entity.Category(req.Category),
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		Pattern:       entity.RecurrencePattern(req.Pattern),
		Interval:      req.Interval,
		ExecutionDay:  req.ExecutionDay,
		StartDate:     startDate,
		EndDate:       endDate,
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringResponse(output.Recurring))
}

// SetActive handles POST /recurring/:id/active requests.
func (c *RecurringController) SetActive(ctx *gin.Context) {
	userID, recurringID, ok := c.resolveRecurringRequest(ctx)
	if !ok {
		return
	}

	var req dto.SetRecurringActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRecurringFields),
		})
		return
	}

	output, err := c.setActiveUseCase.Execute(ctx.Request.Context(), recurring.SetRecurringActiveInput{
		UserID:      userID,
		RecurringID: recurringID,
		Active:      *req.IsActive,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringResponse(output.Recurring))
}

// Delete handles DELETE /recurring/:id requests.
func (c *RecurringController) Delete(ctx *gin.Context) {
	userID, recurringID, ok := c.resolveRecurringRequest(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), recurring.DeleteRecurringInput{
		UserID:      userID,
		RecurringID: recurringID,
	}); err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Recurring transaction deleted",
	})
}

// resolveRecurringRequest extracts the authenticated user and the rule ID
// path parameter, writing the error response itself on failure.
func (c *RecurringController) resolveRecurringRequest(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, uuid.Nil, false
	}

	recurringID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring transaction ID",
			Code:  string(domainerror.ErrCodeRecurringNotFound),
		})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, recurringID, true
}

// parseRecurringDates parses the start date and the optional end date,
// writing the error response itself on failure.
func (c *RecurringController) parseRecurringDates(ctx *gin.Context, startStr string, endStr *string) (time.Time, *time.Time, bool) {
	startDate, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidRecurringDateRange),
		})
		return time.Time{}, nil, false
	}

	var endDate *time.Time
	if endStr != nil && *endStr != "" {
		parsed, err := time.Parse("2006-01-02", *endStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidRecurringDateRange),
			})
			return time.Time{}, nil, false
		}
		endDate = &parsed
	}

	return startDate, endDate, true
}

// handleRecurringError handles recurring errors and returns appropriate HTTP responses.
func (c *RecurringController) handleRecurringError(ctx *gin.Context, err error) {
	var recurringErr *domainerror.RecurringError
	if errors.As(err, &recurringErr) {
		statusCode := c.getStatusCodeForRecurringError(recurringErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: recurringErr.Message,
			Code:  string(recurringErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecurringError maps recurring error codes to HTTP status codes.
func (c *RecurringController) getStatusCodeForRecurringError(code domainerror.RecurringErrorCode) int {
	switch code {
	case domainerror.ErrCodeRecurringNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedRecurringAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidRecurrencePattern,
		domainerror.ErrCodeInvalidRecurrenceInterval,
		domainerror.ErrCodeInvalidExecutionDay,
		domainerror.ErrCodeInvalidRecurringAmount,
		domainerror.ErrCodeInvalidRecurringDateRange,
		domainerror.ErrCodeMissingRecurringFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
