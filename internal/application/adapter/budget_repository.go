// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUserAndPeriod retrieves all budgets for a user in a month/year.
	FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, month, year int) ([]*entity.Budget, error)

	// ExistsForCategoryAndPeriod checks the (user, category, month, year)
	// uniqueness constraint before creation.
	ExistsForCategoryAndPeriod(ctx context.Context, userID, categoryID uuid.UUID, month, year int) (bool, error)

	// GetStatistics returns the budgets of a period joined with the amount
	// spent per category and the percentage of each limit used. The spent
	// amount is derived from expense transactions at read time; nothing is
	// cached or persisted.
	GetStatistics(ctx context.Context, userID uuid.UUID, month, year int) ([]*entity.BudgetStatistic, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByCategory counts budgets referencing a category.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
