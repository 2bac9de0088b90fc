// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	UserID uuid.UUID
}

// ListAccountsOutput represents the output of listing accounts.
type ListAccountsOutput struct {
	Accounts []*entity.Account
}

// ListAccountsUseCase handles account listing logic.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{accountRepo: accountRepo}
}

// Execute performs the account listing.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	accounts, err := uc.accountRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return &ListAccountsOutput{Accounts: accounts}, nil
}

// UpdateAccountInput represents the input for account updates.
type UpdateAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      entity.AccountType
	Color     string
	Icon      string
	IsActive  bool
}

// UpdateAccountOutput represents the output of an account update.
type UpdateAccountOutput struct {
	Account *entity.Account
}

// UpdateAccountUseCase handles account update logic.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{accountRepo: accountRepo}
}

// Execute performs the account update.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountOutput, error) {
	account, err := findOwnedAccount(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > MaxAccountNameLength {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeMissingAccountFields,
			fmt.Sprintf("account name is required and must not exceed %d characters", MaxAccountNameLength),
			domainerror.ErrMissingAccountName,
		)
	}
	if !isValidAccountType(input.Type) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"account type must be one of checking, savings, credit, cash, investment",
			domainerror.ErrInvalidAccountType,
		)
	}

	if !strings.EqualFold(name, account.Name) {
		exists, err := uc.accountRepo.ExistsByNameAndUser(ctx, name, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check account name: %w", err)
		}
		if exists {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNameExists,
				"an account with this name already exists",
				domainerror.ErrAccountNameExists,
			)
		}
	}

	account.Name = name
	account.Type = input.Type
	account.Color = input.Color
	account.Icon = input.Icon
	account.IsActive = input.IsActive
	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return &UpdateAccountOutput{Account: account}, nil
}

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// DeleteAccountUseCase handles account deletion logic.
type DeleteAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(accountRepo adapter.AccountRepository) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{accountRepo: accountRepo}
}

// Execute soft-deletes the account. Its transactions keep their history; the
// account reference on them stays intact.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	account, err := findOwnedAccount(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.accountRepo.Delete(ctx, account.ID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}

// findOwnedAccount loads an account and enforces ownership.
func findOwnedAccount(ctx context.Context, repo adapter.AccountRepository, accountID, userID uuid.UUID) (*entity.Account, error) {
	account, err := repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}
	if account.UserID != userID {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeNotAuthorizedAccount,
			"account does not belong to user",
			domainerror.ErrNotAuthorizedToModifyAccount,
		)
	}
	return account, nil
}
