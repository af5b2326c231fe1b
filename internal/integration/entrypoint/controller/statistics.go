// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/usecase/statistics"
	domainerror "github.com/moneybook/backend/internal/domain/error"
	"github.com/moneybook/backend/internal/integration/entrypoint/dto"
	"github.com/moneybook/backend/internal/integration/entrypoint/middleware"
)

// defaultTopLimit bounds the top-categories query when the client does
// not ask for a specific count.
const defaultTopLimit = 5

// StatisticsController handles aggregation endpoints.
type StatisticsController struct {
	monthlyUseCase       *statistics.MonthlyStatisticsUseCase
	categoryUseCase      *statistics.CategoryStatisticsUseCase
	paymentMethodUseCase *statistics.PaymentMethodStatisticsUseCase
	topCategoriesUseCase *statistics.TopCategoriesUseCase
	trendUseCase         *statistics.TrendAnalysisUseCase
}

// NewStatisticsController creates a new statistics controller instance.
func NewStatisticsController(
	monthlyUseCase *statistics.MonthlyStatisticsUseCase,
	categoryUseCase *statistics.CategoryStatisticsUseCase,
	paymentMethodUseCase *statistics.PaymentMethodStatisticsUseCase,
	topCategoriesUseCase *statistics.TopCategoriesUseCase,
	trendUseCase *statistics.TrendAnalysisUseCase,
) *StatisticsController {
	return &StatisticsController{
		monthlyUseCase:       monthlyUseCase,
		categoryUseCase:      categoryUseCase,
		paymentMethodUseCase: paymentMethodUseCase,
		topCategoriesUseCase: topCategoriesUseCase,
		trendUseCase:         trendUseCase,
	}
}

// Monthly handles GET /statistics/monthly requests.
func (c *StatisticsController) Monthly(ctx *gin.Context) {
	userID, startDate, endDate, ok := c.resolveRangeRequest(ctx)
	if !ok {
		return
	}

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), statistics.MonthlyStatisticsInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.handleStatisticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyStatisticsResponse(output.Summaries))
}

// Categories handles GET /statistics/categories requests.
func (c *StatisticsController) Categories(ctx *gin.Context) {
	userID, startDate, endDate, ok := c.resolveRangeRequest(ctx)
	if !ok {
		return
	}

	output, err := c.categoryUseCase.Execute(ctx.Request.Context(), statistics.CategoryStatisticsInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.handleStatisticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryStatisticsResponse{
		Categories: dto.ToCategorySummaryResponses(output.Summaries),
	})
}

// PaymentMethods handles GET /statistics/payment-methods requests.
func (c *StatisticsController) PaymentMethods(ctx *gin.Context) {
	userID, startDate, endDate, ok := c.resolveRangeRequest(ctx)
	if !ok {
		return
	}

	output, err := c.paymentMethodUseCase.Execute(ctx.Request.Context(), statistics.PaymentMethodStatisticsInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.handleStatisticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentMethodStatisticsResponse(output.Summaries))
}

// TopCategories handles GET /statistics/top-categories requests.
func (c *StatisticsController) TopCategories(ctx *gin.Context) {
	userID, startDate, endDate, ok := c.resolveRangeRequest(ctx)
	if !ok {
		return
	}

	limit := defaultTopLimit
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	output, err := c.topCategoriesUseCase.Execute(ctx.Request.Context(), statistics.TopCategoriesInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     limit,
	})
	if err != nil {
		c.handleStatisticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryStatisticsResponse{
		Categories: dto.ToCategorySummaryResponses(output.Summaries),
	})
}

// Trend handles GET /statistics/trend requests. The month query parameter
// is YYYY-MM and defaults to the current month.
func (c *StatisticsController) Trend(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	targetMonth := time.Now().UTC()
	if monthStr := ctx.Query("month"); monthStr != "" {
		parsed, err := time.Parse("2006-01", monthStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month format, expected YYYY-MM",
				Code:  string(domainerror.ErrCodeInvalidStatsDateRange),
			})
			return
		}
		targetMonth = parsed
	}

	output, err := c.trendUseCase.Execute(ctx.Request.Context(), statistics.TrendAnalysisInput{
		UserID:      userID,
		TargetMonth: targetMonth,
	})
	if err != nil {
		c.handleStatisticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendResponse(output.Trend))
}

// resolveRangeRequest extracts the authenticated user and the date range
// query parameters, writing the error response itself on failure. Missing
// parameters parse to zero times so the use case reports them.
func (c *StatisticsController) resolveRangeRequest(ctx *gin.Context) (uuid.UUID, time.Time, time.Time, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, time.Time{}, time.Time{}, false
	}

	var startDate, endDate time.Time
	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		parsed, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid startDate format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidStatsDateRange),
			})
			return uuid.Nil, time.Time{}, time.Time{}, false
		}
		startDate = parsed
	}
	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		parsed, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid endDate format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidStatsDateRange),
			})
			return uuid.Nil, time.Time{}, time.Time{}, false
		}
		endDate = parsed
	}

	return userID, startDate, endDate, true
}

// handleStatisticsError handles statistics errors and returns appropriate HTTP responses.
func (c *StatisticsController) handleStatisticsError(ctx *gin.Context, err error) {
	var statsErr *domainerror.StatisticsError
	if errors.As(err, &statsErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: statsErr.Message,
			Code:  string(statsErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
