// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Type  string `json:"type" binding:"required,oneof=checking savings credit cash investment"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// UpdateAccountRequest represents the request body for account update.
type UpdateAccountRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Type     string `json:"type" binding:"required,oneof=checking savings credit cash investment"`
	Color    string `json:"color,omitempty"`
	Icon     string `json:"icon,omitempty"`
	IsActive bool   `json:"is_active"`
}

// TransferRequest represents the request body for an account-to-account transfer.
type TransferRequest struct {
	FromAccountID string `json:"from_account_id" binding:"required"`
	ToAccountID   string `json:"to_account_id" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	Description   string `json:"description,omitempty"`
	Date          string `json:"date,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	IsActive bool   `json:"is_active"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// TransferResponse represents the response for a completed transfer.
type TransferResponse struct {
	FromTransactionID string `json:"from_transaction_id"`
	ToTransactionID   string `json:"to_transaction_id"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:       account.ID.String(),
		Name:     account.Name,
		Type:     string(account.Type),
		Color:    account.Color,
		Icon:     account.Icon,
		IsActive: account.IsActive,
	}
}

// ToAccountListResponse converts a list of Account entities to an AccountListResponse DTO.
func ToAccountListResponse(accounts []*entity.Account) AccountListResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = ToAccountResponse(account)
	}
	return AccountListResponse{Accounts: responses}
}
