package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/transaction"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/dto"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/middleware"
)

const dateLayout = "2006-01-02"

// TransactionController handles transaction-related HTTP requests.
type TransactionController struct {
	createTransactionUseCase *transaction.CreateTransactionUseCase
	listTransactionsUseCase  *transaction.ListTransactionsUseCase
	updateTransactionUseCase *transaction.UpdateTransactionUseCase
	deleteTransactionUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createTransactionUseCase *transaction.CreateTransactionUseCase,
	listTransactionsUseCase *transaction.ListTransactionsUseCase,
	updateTransactionUseCase *transaction.UpdateTransactionUseCase,
	deleteTransactionUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		createTransactionUseCase: createTransactionUseCase,
		listTransactionsUseCase:  listTransactionsUseCase,
		updateTransactionUseCase: updateTransactionUseCase,
		deleteTransactionUseCase: deleteTransactionUseCase,
	}
}

// Create handles POST /api/v1/transactions.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	input, errResp := c.buildTransactionInput(userID, req.Date, req.Description, req.Amount, req.Type, req.CategoryID, req.AccountID)
	if errResp != nil {
		ctx.JSON(http.StatusBadRequest, *errResp)
		return
	}

	output, err := c.createTransactionUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:      input.UserID,
		Date:        input.Date,
		Description: input.Description,
		Amount:      input.Amount,
		Type:        input.Type,
		CategoryID:  input.CategoryID,
		AccountID:   input.AccountID,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// List handles GET /api/v1/transactions.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
		Search: ctx.Query("search"),
	}

	if startDate := ctx.Query("start_date"); startDate != "" {
		parsed, err := time.Parse(dateLayout, startDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start_date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidTransactionDate),
			})
			return
		}
		input.StartDate = &parsed
	}

	if endDate := ctx.Query("end_date"); endDate != "" {
		parsed, err := time.Parse(dateLayout, endDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidTransactionDate),
			})
			return
		}
		input.EndDate = &parsed
	}

	if categoryIDs := ctx.Query("category_ids"); categoryIDs != "" {
		for _, raw := range strings.Split(categoryIDs, ",") {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
					Error: "Invalid category_ids parameter",
					Code:  string(domainerror.ErrCodeTxnCategoryNotFound),
				})
				return
			}
			input.CategoryIDs = append(input.CategoryIDs, id)
		}
	}

	if accountID := ctx.Query("account_id"); accountID != "" {
		id, err := uuid.Parse(accountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid account_id parameter",
				Code:  string(domainerror.ErrCodeAccountNotFound),
			})
			return
		}
		input.AccountID = &id
	}

	if txnType := ctx.Query("type"); txnType != "" {
		parsed := entity.TransactionType(txnType)
		if parsed != entity.TransactionTypeIncome && parsed != entity.TransactionTypeExpense {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid type parameter, expected 'income' or 'expense'",
				Code:  string(domainerror.ErrCodeInvalidTransactionType),
			})
			return
		}
		input.Type = &parsed
	}

	if page := ctx.Query("page"); page != "" {
		parsed, err := strconv.Atoi(page)
		if err == nil {
			input.Page = parsed
		}
	}

	if limit := ctx.Query("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err == nil {
			input.Limit = parsed
		}
	}

	output, err := c.listTransactionsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Update handles PATCH /api/v1/transactions/:id.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	input, errResp := c.buildTransactionInput(userID, req.Date, req.Description, req.Amount, req.Type, req.CategoryID, req.AccountID)
	if errResp != nil {
		ctx.JSON(http.StatusBadRequest, *errResp)
		return
	}

	output, err := c.updateTransactionUseCase.Execute(ctx.Request.Context(), transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Date:          input.Date,
		Description:   input.Description,
		Amount:        input.Amount,
		Type:          input.Type,
		CategoryID:    input.CategoryID,
		AccountID:     input.AccountID,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /api/v1/transactions/:id.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return
	}

	if err := c.deleteTransactionUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	}); err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Transaction deleted successfully",
	})
}

// buildTransactionInput parses the request fields shared by create and update.
func (c *TransactionController) buildTransactionInput(
	userID uuid.UUID,
	rawDate, description, rawAmount, rawType string,
	categoryID, accountID *string,
) (*transaction.CreateTransactionInput, *dto.ErrorResponse) {
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return nil, &dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		}
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return nil, &dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidTransactionAmount),
		}
	}

	input := &transaction.CreateTransactionInput{
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        entity.TransactionType(rawType),
	}

	if categoryID != nil && *categoryID != "" {
		id, err := uuid.Parse(*categoryID)
		if err != nil {
			return nil, &dto.ErrorResponse{
				Error: "Invalid category ID",
				Code:  string(domainerror.ErrCodeTxnCategoryNotFound),
			}
		}
		input.CategoryID = &id
	}

	if accountID != nil && *accountID != "" {
		id, err := uuid.Parse(*accountID)
		if err != nil {
			return nil, &dto.ErrorResponse{
				Error: "Invalid account ID",
				Code:  string(domainerror.ErrCodeAccountNotFound),
			}
		}
		input.AccountID = &id
	}

	return input, nil
}

// handleTransactionError maps transaction domain errors to HTTP responses.
func handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeNotAuthorizedTransaction,
		domainerror.ErrCodeTxnCategoryNotOwned:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
