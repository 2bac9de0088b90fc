package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/account"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/dto"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/middleware"
)

// AccountController handles account-related HTTP requests.
type AccountController struct {
	createAccountUseCase *account.CreateAccountUseCase
	listAccountsUseCase  *account.ListAccountsUseCase
	updateAccountUseCase *account.UpdateAccountUseCase
	deleteAccountUseCase *account.DeleteAccountUseCase
	transferUseCase      *account.TransferUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	createAccountUseCase *account.CreateAccountUseCase,
	listAccountsUseCase *account.ListAccountsUseCase,
	updateAccountUseCase *account.UpdateAccountUseCase,
	deleteAccountUseCase *account.DeleteAccountUseCase,
	transferUseCase *account.TransferUseCase,
) *AccountController {
	return &AccountController{
		createAccountUseCase: createAccountUseCase,
		listAccountsUseCase:  listAccountsUseCase,
		updateAccountUseCase: updateAccountUseCase,
		deleteAccountUseCase: deleteAccountUseCase,
		transferUseCase:      transferUseCase,
	}
}

// Create handles POST /api/v1/accounts.
func (c *AccountController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingAccountFields),
		})
		return
	}

	output, err := c.createAccountUseCase.Execute(ctx.Request.Context(), account.CreateAccountInput{
		UserID: userID,
		Name:   req.Name,
		Type:   entity.AccountType(req.Type),
		Color:  req.Color,
		Icon:   req.Icon,
	})
	if err != nil {
		handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAccountResponse(output.Account))
}

// List handles GET /api/v1/accounts.
func (c *AccountController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listAccountsUseCase.Execute(ctx.Request.Context(), account.ListAccountsInput{
		UserID: userID,
	})
	if err != nil {
		handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountListResponse(output.Accounts))
}

// Update handles PATCH /api/v1/accounts/:id.
func (c *AccountController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID",
			Code:  string(domainerror.ErrCodeAccountNotFound),
		})
		return
	}

	var req dto.UpdateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingAccountFields),
		})
		return
	}

	output, err := c.updateAccountUseCase.Execute(ctx.Request.Context(), account.UpdateAccountInput{
		AccountID: accountID,
		UserID:    userID,
		Name:      req.Name,
		Type:      entity.AccountType(req.Type),
		Color:     req.Color,
		Icon:      req.Icon,
		IsActive:  req.IsActive,
	})
	if err != nil {
		handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output.Account))
}

// Delete handles DELETE /api/v1/accounts/:id.
func (c *AccountController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID",
			Code:  string(domainerror.ErrCodeAccountNotFound),
		})
		return
	}

	if err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), account.DeleteAccountInput{
		AccountID: accountID,
		UserID:    userID,
	}); err != nil {
		handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Account deleted successfully",
	})
}

// Transfer handles POST /api/v1/accounts/transfer.
func (c *AccountController) Transfer(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.TransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingAccountFields),
		})
		return
	}

	fromAccountID, err := uuid.Parse(req.FromAccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid source account ID",
			Code:  string(domainerror.ErrCodeAccountNotFound),
		})
		return
	}

	toAccountID, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid destination account ID",
			Code:  string(domainerror.ErrCodeAccountNotFound),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidTransferAmount),
		})
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidTransactionDate),
			})
			return
		}
		date = parsed
	}

	output, err := c.transferUseCase.Execute(ctx.Request.Context(), account.TransferUseCaseInput{
		UserID:        userID,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Description:   req.Description,
		Date:          date,
	})
	if err != nil {
		handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.TransferResponse{
		FromTransactionID: output.Transfer.FromTransactionID.String(),
		ToTransactionID:   output.Transfer.ToTransactionID.String(),
	})
}

// handleAccountError maps account domain errors to HTTP responses.
func handleAccountError(ctx *gin.Context, err error) {
	var accountErr *domainerror.AccountError
	if errors.As(err, &accountErr) {
		ctx.JSON(getStatusCodeForAccountError(accountErr.Code), dto.ErrorResponse{
			Error: accountErr.Message,
			Code:  string(accountErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func getStatusCodeForAccountError(code domainerror.AccountErrorCode) int {
	switch code {
	case domainerror.ErrCodeAccountNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidAccountType,
		domainerror.ErrCodeMissingAccountFields,
		domainerror.ErrCodeSameTransferAccounts,
		domainerror.ErrCodeInvalidTransferAmount,
		domainerror.ErrCodeAccountInactive:
		return http.StatusBadRequest
	case domainerror.ErrCodeAccountNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeNotAuthorizedAccount:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
