// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/application/usecase/ledger"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
	"github.com/moneybook/backend/internal/integration/entrypoint/dto"
	"github.com/moneybook/backend/internal/integration/entrypoint/middleware"
)

// LedgerController handles ledger entry endpoints.
type LedgerController struct {
	createUseCase *ledger.CreateEntryUseCase
	getUseCase    *ledger.GetEntryUseCase
	listUseCase   *ledger.ListEntriesUseCase
	updateUseCase *ledger.UpdateEntryUseCase
	deleteUseCase *ledger.DeleteEntryUseCase
}

// NewLedgerController creates a new ledger controller instance.
func NewLedgerController(
	createUseCase *ledger.CreateEntryUseCase,
	getUseCase *ledger.GetEntryUseCase,
	listUseCase *ledger.ListEntriesUseCase,
	updateUseCase *ledger.UpdateEntryUseCase,
	deleteUseCase *ledger.DeleteEntryUseCase,
) *LedgerController {
	return &LedgerController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /ledger requests.
func (c *LedgerController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateLedgerEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingLedgerFields),
		})
		return
	}

	recordedDate, err := time.Parse("2006-01-02", req.RecordedDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recorded_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeMissingLedgerFields),
		})
		return
	}

	input := ledger.CreateEntryInput{
		UserID:        userID,
		Type:          entity.LedgerType(req.Type),
		Amount:        decimal.NewFromFloat(req.Amount),
		Description:   req.Description,
		Place:         req.Place,
		Category:      entity.Category(req.Category),
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		RecordedDate:  recordedDate,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(output.Entry))
}

// Get handles GET /ledger/:id requests.
func (c *LedgerController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID",
			Code:  string(domainerror.ErrCodeLedgerEntryNotFound),
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), ledger.GetEntryInput{
		UserID:  userID,
		EntryID: entryID,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerEntryResponse(output.Entry))
}

// List handles GET /ledger requests.
func (c *LedgerController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := ledger.ListEntriesInput{
		UserID: userID,
	}

	// Parse date filters
	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err == nil {
			input.Condition.StartDate = &startDate
		}
	}
	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err == nil {
			input.Condition.EndDate = &endDate
		}
	}

	// Parse type filter
	if typeStr := ctx.Query("type"); typeStr != "" {
		ledgerType := entity.LedgerType(typeStr)
		if ledgerType.IsValid() {
			input.Condition.Type = &ledgerType
		}
	}

	// Parse category filter
	if categoryStr := ctx.Query("category"); categoryStr != "" {
		category := entity.Category(categoryStr)
		if category.IsValid() {
			input.Condition.Category = &category
		}
	}

	// Parse pagination
	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			input.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerListResponse(output.Result))
}

// Update handles PUT /ledger/:id requests.
func (c *LedgerController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID",
			Code:  string(domainerror.ErrCodeLedgerEntryNotFound),
		})
		return
	}

	var req dto.UpdateLedgerEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingLedgerFields),
		})
		return
	}

	recordedDate, err := time.Parse("2006-01-02", req.RecordedDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recorded_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeMissingLedgerFields),
		})
		return
	}

	input := ledger.UpdateEntryInput{
		UserID:        userID,
		EntryID:       entryID,
		Type:          entity.LedgerType(req.Type),
		Amount:        decimal.NewFromFloat(req.Amount),
		Description:   req.Description,
		Place:         req.Place,
		Category:      entity.Category(req.Category),
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		RecordedDate:  recordedDate,
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerEntryResponse(output.Entry))
}

// Delete handles DELETE /ledger/:id requests.
func (c *LedgerController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID",
			Code:  string(domainerror.ErrCodeLedgerEntryNotFound),
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), ledger.DeleteEntryInput{
		UserID:  userID,
		EntryID: entryID,
	}); err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Ledger entry deleted",
	})
}

// handleLedgerError handles ledger errors and returns appropriate HTTP responses.
func (c *LedgerController) handleLedgerError(ctx *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		statusCode := c.getStatusCodeForLedgerError(ledgerErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForLedgerError maps ledger error codes to HTTP status codes.
func (c *LedgerController) getStatusCodeForLedgerError(code domainerror.LedgerErrorCode) int {
	switch code {
	case domainerror.ErrCodeLedgerEntryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedLedgerAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeDuplicateExecution:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidLedgerAmount,
		domainerror.ErrCodeInvalidLedgerType,
		domainerror.ErrCodeInvalidLedgerCategory,
		domainerror.ErrCodeInvalidPaymentMethod,
		domainerror.ErrCodeFutureRecordedDate,
		domainerror.ErrCodeInvalidLedgerDateRange,
		domainerror.ErrCodeMissingLedgerFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
