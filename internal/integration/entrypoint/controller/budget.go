package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/budget"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/dto"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget-related HTTP requests.
type BudgetController struct {
	createBudgetUseCase *budget.CreateBudgetUseCase
	listBudgetsUseCase  *budget.ListBudgetsUseCase
	updateBudgetUseCase *budget.UpdateBudgetUseCase
	deleteBudgetUseCase *budget.DeleteBudgetUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	createBudgetUseCase *budget.CreateBudgetUseCase,
	listBudgetsUseCase *budget.ListBudgetsUseCase,
	updateBudgetUseCase *budget.UpdateBudgetUseCase,
	deleteBudgetUseCase *budget.DeleteBudgetUseCase,
) *BudgetController {
	return &BudgetController{
		createBudgetUseCase: createBudgetUseCase,
		listBudgetsUseCase:  listBudgetsUseCase,
		updateBudgetUseCase: updateBudgetUseCase,
		deleteBudgetUseCase: deleteBudgetUseCase,
	}
}

// Create handles POST /api/v1/budgets.
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

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID",
			Code:  string(domainerror.ErrCodeBudgetCategoryUnknown),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidBudgetAmount),
		})
		return
	}

	output, err := c.createBudgetUseCase.Execute(ctx.Request.Context(), budget.CreateBudgetInput{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Month:      req.Month,
		Year:       req.Year,
	})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(output.Budget))
}

// List handles GET /api/v1/budgets. Month and year default to the current
// period when omitted.
func (c *BudgetController) List(ctx *gin.Context) {
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
				Code:  string(domainerror.ErrCodeInvalidBudgetPeriod),
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
				Code:  string(domainerror.ErrCodeInvalidBudgetPeriod),
			})
			return
		}
		year = parsed
	}

	output, err := c.listBudgetsUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{
		UserID: userID,
		Month:  month,
		Year:   year,
	})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Statistics))
}

// Update handles PATCH /api/v1/budgets/:id.
func (c *BudgetController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID",
			Code:  string(domainerror.ErrCodeBudgetNotFound),
		})
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

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidBudgetAmount),
		})
		return
	}

	output, err := c.updateBudgetUseCase.Execute(ctx.Request.Context(), budget.UpdateBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
		Amount:   amount,
	})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Delete handles DELETE /api/v1/budgets/:id.
func (c *BudgetController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID",
			Code:  string(domainerror.ErrCodeBudgetNotFound),
		})
		return
	}

	if err := c.deleteBudgetUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
	}); err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Budget deleted successfully",
	})
}

// handleBudgetError maps budget domain errors to HTTP responses.
func handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(getStatusCodeForBudgetError(budgetErr.Code), dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound,
		domainerror.ErrCodeBudgetCategoryUnknown:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidBudgetAmount,
		domainerror.ErrCodeInvalidBudgetPeriod,
		domainerror.ErrCodeMissingBudgetFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeBudgetAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrCodeNotAuthorizedBudget:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
