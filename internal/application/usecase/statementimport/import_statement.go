// Package statementimport contains the CSV statement import use cases.
package statementimport

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// ImportStatementInput represents the input for statement import.
type ImportStatementInput struct {
	UserID    uuid.UUID
	AccountID *uuid.UUID // Optional, attaches imported rows to an account
	Content   []byte
}

// ImportStatementOutput summarizes the import: how many rows were persisted
// and the per-row errors of the rejected ones.
type ImportStatementOutput struct {
	ImportedCount int
	RowErrors     []RowError
}

// ImportStatementUseCase parses a statement and persists its valid rows in
// one bulk write. Category names are resolved against the user's visible
// categories by case-insensitive name; unknown names leave the transaction
// uncategorized rather than failing the row.
type ImportStatementUseCase struct {
	parser          *ParseStatementUseCase
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewImportStatementUseCase creates a new ImportStatementUseCase instance.
func NewImportStatementUseCase(
	parser *ParseStatementUseCase,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *ImportStatementUseCase {
	return &ImportStatementUseCase{
		parser:          parser,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute performs the statement import.
func (uc *ImportStatementUseCase) Execute(ctx context.Context, input ImportStatementInput) (*ImportStatementOutput, error) {
	parsed, err := uc.parser.Execute(ParseStatementInput{Content: input.Content})
	if err != nil {
		return nil, err
	}

	// One lookup per distinct category name in the file.
	categoryIDs := make(map[string]*uuid.UUID)
	for _, row := range parsed.Rows {
		if row.CategoryName == "" {
			continue
		}
		if _, seen := categoryIDs[row.CategoryName]; seen {
			continue
		}

		category, err := uc.categoryRepo.FindByNameAndUser(ctx, row.CategoryName, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %q: %w", row.CategoryName, err)
		}
		if category == nil {
			categoryIDs[row.CategoryName] = nil
			continue
		}
		id := category.ID
		categoryIDs[row.CategoryName] = &id
	}

	transactions := make([]*entity.Transaction, 0, len(parsed.Rows))
	for _, row := range parsed.Rows {
		transactions = append(transactions, entity.NewTransaction(
			input.UserID,
			row.Date,
			row.Description,
			row.Amount,
			row.Type,
			categoryIDs[row.CategoryName],
			input.AccountID,
		))
	}

	if len(transactions) > 0 {
		if err := uc.transactionRepo.BulkCreate(ctx, transactions); err != nil {
			return nil, fmt.Errorf("failed to import transactions: %w", err)
		}
	}

	return &ImportStatementOutput{
		ImportedCount: len(transactions),
		RowErrors:     parsed.RowErrors,
	}, nil
}
