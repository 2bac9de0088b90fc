package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/custominsight"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/dto"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/middleware"
)

// CustomInsightController handles custom insight rule HTTP requests.
type CustomInsightController struct {
	createUseCase    *custominsight.CreateCustomInsightUseCase
	listUseCase      *custominsight.ListCustomInsightsUseCase
	updateUseCase    *custominsight.UpdateCustomInsightUseCase
	toggleUseCase    *custominsight.ToggleCustomInsightUseCase
	duplicateUseCase *custominsight.DuplicateCustomInsightUseCase
	deleteUseCase    *custominsight.DeleteCustomInsightUseCase
}

// NewCustomInsightController creates a new custom insight controller instance.
func NewCustomInsightController(
	createUseCase *custominsight.CreateCustomInsightUseCase,
	listUseCase *custominsight.ListCustomInsightsUseCase,
	updateUseCase *custominsight.UpdateCustomInsightUseCase,
	toggleUseCase *custominsight.ToggleCustomInsightUseCase,
	duplicateUseCase *custominsight.DuplicateCustomInsightUseCase,
	deleteUseCase *custominsight.DeleteCustomInsightUseCase,
) *CustomInsightController {
	return &CustomInsightController{
		createUseCase:    createUseCase,
		listUseCase:      listUseCase,
		updateUseCase:    updateUseCase,
		toggleUseCase:    toggleUseCase,
		duplicateUseCase: duplicateUseCase,
		deleteUseCase:    deleteUseCase,
	}
}

// Create handles POST /api/v1/custom-insights.
func (c *CustomInsightController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateCustomInsightRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingInsightFields),
		})
		return
	}

	input := custominsight.CreateCustomInsightInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Severity:    entity.InsightSeverity(req.Severity),
		TemplateID:  req.TemplateID,
		Formula:     req.Formula,
	}
	if req.Condition != nil {
		input.Condition = req.Condition.ToCondition()
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustomInsightResponse(output.Insight))
}

// List handles GET /api/v1/custom-insights.
func (c *CustomInsightController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), custominsight.ListCustomInsightsInput{
		UserID: userID,
	})
	if err != nil {
		handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomInsightListResponse(output.Insights))
}

// ListTemplates handles GET /api/v1/custom-insights/templates.
func (c *CustomInsightController) ListTemplates(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToInsightTemplateListResponse(custominsight.Templates()))
}

// Update handles PATCH /api/v1/custom-insights/:id.
func (c *CustomInsightController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	insightID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid insight ID",
			Code:  string(domainerror.ErrCodeCustomInsightNotFound),
		})
		return
	}

	var req dto.UpdateCustomInsightRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingInsightFields),
		})
		return
	}

	input := custominsight.UpdateCustomInsightInput{
		InsightID:   insightID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Severity:    entity.InsightSeverity(req.Severity),
		Formula:     req.Formula,
	}
	if req.Condition != nil {
		input.Condition = req.Condition.ToCondition()
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomInsightResponse(output.Insight))
}

// Toggle handles PATCH /api/v1/custom-insights/:id/toggle.
func (c *CustomInsightController) Toggle(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	insightID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid insight ID",
			Code:  string(domainerror.ErrCodeCustomInsightNotFound),
		})
		return
	}

	output, err := c.toggleUseCase.Execute(ctx.Request.Context(), custominsight.ToggleCustomInsightInput{
		InsightID: insightID,
		UserID:    userID,
	})
	if err != nil {
		handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomInsightResponse(output.Insight))
}

// Duplicate handles POST /api/v1/custom-insights/:id/duplicate.
func (c *CustomInsightController) Duplicate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	insightID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid insight ID",
			Code:  string(domainerror.ErrCodeCustomInsightNotFound),
		})
		return
	}

	output, err := c.duplicateUseCase.Execute(ctx.Request.Context(), custominsight.DuplicateCustomInsightInput{
		InsightID: insightID,
		UserID:    userID,
	})
	if err != nil {
		handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustomInsightResponse(output.Insight))
}

// Delete handles DELETE /api/v1/custom-insights/:id.
func (c *CustomInsightController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	insightID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid insight ID",
			Code:  string(domainerror.ErrCodeCustomInsightNotFound),
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), custominsight.DeleteCustomInsightInput{
		InsightID: insightID,
		UserID:    userID,
	}); err != nil {
		handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Insight deleted successfully",
	})
}

// handleInsightError maps insight domain errors to HTTP responses.
func handleInsightError(ctx *gin.Context, err error) {
	var insightErr *domainerror.InsightError
	if errors.As(err, &insightErr) {
		ctx.JSON(getStatusCodeForInsightError(insightErr.Code), dto.ErrorResponse{
			Error: insightErr.Message,
			Code:  string(insightErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func getStatusCodeForInsightError(code domainerror.InsightErrorCode) int {
	switch code {
	case domainerror.ErrCodeCustomInsightNotFound,
		domainerror.ErrCodeTemplateNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInsightMissingRule,
		domainerror.ErrCodeMissingInsightFields,
		domainerror.ErrCodeUnsupportedField,
		domainerror.ErrCodeUnsupportedOperator,
		domainerror.ErrCodeUnsupportedFunction,
		domainerror.ErrCodeConditionCategory,
		domainerror.ErrCodeInvalidEvaluationInput:
		return http.StatusBadRequest
	case domainerror.ErrCodeNotAuthorizedInsight:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
