// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

// MaxAccountNameLength is the maximum allowed length for account names.
const MaxAccountNameLength = 100

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID uuid.UUID
	Name   string
	Type   entity.AccountType
	Color  string
	Icon   string
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{accountRepo: accountRepo}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
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

	account := entity.NewAccount(input.UserID, name, input.Type, input.Color, input.Icon)

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{Account: account}, nil
}

func isValidAccountType(t entity.AccountType) bool {
	switch t {
	case entity.AccountTypeChecking, entity.AccountTypeSavings, entity.AccountTypeCredit,
		entity.AccountTypeCash, entity.AccountTypeInvestment:
		return true
	}
	return false
}
