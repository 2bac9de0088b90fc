package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/statementimport"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/dto"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/middleware"
)

// StatementImportController handles bank statement CSV upload requests.
type StatementImportController struct {
	importStatementUseCase *statementimport.ImportStatementUseCase
}

// NewStatementImportController creates a new statement import controller instance.
func NewStatementImportController(importStatementUseCase *statementimport.ImportStatementUseCase) *StatementImportController {
	return &StatementImportController{
		importStatementUseCase: importStatementUseCase,
	}
}

// Import handles POST /api/v1/transactions/import. Expects a multipart form
// with a "file" field and an optional "account_id" field.
func (c *StatementImportController) Import(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "A statement file is required",
			Code:  string(domainerror.ErrCodeStatementEmpty),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Failed to read statement file",
			Code:  string(domainerror.ErrCodeStatementMalformed),
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Failed to read statement file",
			Code:  string(domainerror.ErrCodeStatementMalformed),
		})
		return
	}

	input := statementimport.ImportStatementInput{
		UserID:  userID,
		Content: content,
	}

	if rawAccountID := ctx.PostForm("account_id"); rawAccountID != "" {
		accountID, err := uuid.Parse(rawAccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid account ID",
				Code:  string(domainerror.ErrCodeAccountNotFound),
			})
			return
		}
		input.AccountID = &accountID
	}

	output, err := c.importStatementUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementImportResponse(output))
}

// handleImportError maps statement import domain errors to HTTP responses.
func handleImportError(ctx *gin.Context, err error) {
	var importErr *domainerror.ImportError
	if errors.As(err, &importErr) {
		ctx.JSON(getStatusCodeForImportError(importErr.Code), dto.ErrorResponse{
			Error: importErr.Message,
			Code:  string(importErr.Code),
		})
		return
	}

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

func getStatusCodeForImportError(code domainerror.ImportErrorCode) int {
	switch code {
	case domainerror.ErrCodeStatementTooLarge:
		return http.StatusRequestEntityTooLarge
	case domainerror.ErrCodeStatementTooManyRows,
		domainerror.ErrCodeStatementMissingHdr,
		domainerror.ErrCodeStatementEmpty,
		domainerror.ErrCodeStatementMalformed,
		domainerror.ErrCodeRowInvalidDate,
		domainerror.ErrCodeRowInvalidAmount,
		domainerror.ErrCodeRowInvalidType,
		domainerror.ErrCodeRowMissingField:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
