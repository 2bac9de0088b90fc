package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/insights"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/dto"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/middleware"
)

// InsightController handles monthly insight evaluation HTTP requests.
type InsightController struct {
	evaluateMonthUseCase *insights.EvaluateMonthUseCase
}

// NewInsightController creates a new insight controller instance.
func NewInsightController(evaluateMonthUseCase *insights.EvaluateMonthUseCase) *InsightController {
	return &InsightController{
		evaluateMonthUseCase: evaluateMonthUseCase,
	}
}

// Evaluate handles GET /api/v1/insights. Month and year default to the
// current period when omitted.
func (c *InsightController) Evaluate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if rawMonth := ctx.Query("month"); rawMonth != "" {
		parsed, err := strconv.Atoi(rawMonth)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month parameter",
				Code:  string(domainerror.ErrCodeInvalidEvaluationInput),
			})
			return
		}
		month = parsed
	}

	if rawYear := ctx.Query("year"); rawYear != "" {
		parsed, err := strconv.Atoi(rawYear)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid year parameter",
				Code:  string(domainerror.ErrCodeInvalidEvaluationInput),
			})
			return
		}
		year = parsed
	}

	output, err := c.evaluateMonthUseCase.Execute(ctx.Request.Context(), insights.EvaluateMonthInput{
		UserID: userID,
		Month:  month,
		Year:   year,
	})
	if err != nil {
		handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightEvaluationResponse(month, year, output))
}
