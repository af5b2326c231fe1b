// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moneybook/backend/internal/application/usecase/insights"
	domainerror "github.com/moneybook/backend/internal/domain/error"
	"github.com/moneybook/backend/internal/integration/entrypoint/dto"
	"github.com/moneybook/backend/internal/integration/entrypoint/middleware"
)

// InsightsController handles AI-assisted analysis endpoints.
type InsightsController struct {
	adviceUseCase *insights.SpendingAdviceUseCase
}

// NewInsightsController creates a new insights controller instance.
func NewInsightsController(adviceUseCase *insights.SpendingAdviceUseCase) *InsightsController {
	return &InsightsController{
		adviceUseCase: adviceUseCase,
	}
}

// SpendingAdvice handles GET /insights/advice requests. The month query
// parameter is YYYY-MM and defaults to the current month.
func (c *InsightsController) SpendingAdvice(ctx *gin.Context) {
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

	output, err := c.adviceUseCase.Execute(ctx.Request.Context(), insights.SpendingAdviceInput{
		UserID:      userID,
		TargetMonth: targetMonth,
	})
	if err != nil {
		c.handleInsightsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SpendingAdviceResponse{
		Advice:   output.Advice,
		Summary:  dto.ToMonthlySummaryResponse(output.Summary),
		TopSpend: dto.ToCategorySummaryResponses(output.TopSpend),
	})
}

// handleInsightsError handles insights errors and returns appropriate HTTP responses.
func (c *InsightsController) handleInsightsError(ctx *gin.Context, err error) {
	var statsErr *domainerror.StatisticsError
	if errors.As(err, &statsErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: statsErr.Message,
			Code:  string(statsErr.Code),
		})
		return
	}

	// Advice generation depends on an external model; its failures
	// surface as unavailability rather than a generic server error.
	ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
		Error: "Advice is temporarily unavailable",
	})
}
