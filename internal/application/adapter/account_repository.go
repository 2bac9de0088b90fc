// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// TransferInput carries the parameters of an account-to-account transfer.
type TransferInput struct {
	UserID        uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
}

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUser retrieves all accounts for a user, ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// ExistsByNameAndUser checks if an account with the given name exists for the user.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error)

	// Update updates an existing account in the database.
	Update(ctx context.Context, account *entity.Account) error

	// Delete soft-deletes an account from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateTransfer atomically creates the paired debit/credit transactions
	// of a transfer inside one database transaction. Either both rows are
	// written or neither is.
	CreateTransfer(ctx context.Context, input TransferInput) (*entity.AccountTransfer, error)
}
