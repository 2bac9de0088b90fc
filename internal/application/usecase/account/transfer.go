// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

// TransferUseCaseInput represents the input for an account-to-account transfer.
type TransferUseCaseInput struct {
	UserID        uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
}

// TransferOutput represents the output of a transfer: the IDs of the paired
// expense and income transactions.
type TransferOutput struct {
	Transfer *entity.AccountTransfer
}

// TransferUseCase handles account-to-account transfers.
type TransferUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewTransferUseCase creates a new TransferUseCase instance.
func NewTransferUseCase(accountRepo adapter.AccountRepository) *TransferUseCase {
	return &TransferUseCase{accountRepo: accountRepo}
}

// Execute performs the transfer. Both legs are written atomically by the
// repository; a failure on either leaves no partial transfer behind.
func (uc *TransferUseCase) Execute(ctx context.Context, input TransferUseCaseInput) (*TransferOutput, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeSameTransferAccounts,
			"source and destination accounts must differ",
			domainerror.ErrSameTransferAccounts,
		)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidTransferAmount,
			"transfer amount must be greater than zero",
			domainerror.ErrInvalidTransferAmount,
		)
	}

	from, err := findOwnedAccount(ctx, uc.accountRepo, input.FromAccountID, input.UserID)
	if err != nil {
		return nil, err
	}
	to, err := findOwnedAccount(ctx, uc.accountRepo, input.ToAccountID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !from.IsActive || !to.IsActive {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountInactive,
			"both transfer accounts must be active",
			domainerror.ErrAccountInactive,
		)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	description := input.Description
	if description == "" {
		description = fmt.Sprintf("Transferência de %s para %s", from.Name, to.Name)
	}

	transfer, err := uc.accountRepo.CreateTransfer(ctx, adapter.TransferInput{
		UserID:        input.UserID,
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        input.Amount,
		Description:   description,
		Date:          date,
	})
	if err != nil {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeTransferFailed,
			"transfer could not be completed",
			err,
		)
	}

	return &TransferOutput{Transfer: transfer}, nil
}
