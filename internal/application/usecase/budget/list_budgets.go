// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

// ListBudgetsInput represents the input for listing a period's budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
}

// ListBudgetsOutput carries the period's budgets joined with their spending
// statistics, computed at read time.
type ListBudgetsOutput struct {
	Statistics []*entity.BudgetStatistic
}

// ListBudgetsUseCase handles budget listing logic.
type ListBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{budgetRepo: budgetRepo}
}

// Execute performs the budget listing.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"month must be between 1 and 12",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}
	if input.Year < 1970 || input.Year > 2999 {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"year out of range",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	statistics, err := uc.budgetRepo.GetStatistics(ctx, input.UserID, input.Month, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budget statistics: %w", err)
	}

	return &ListBudgetsOutput{Statistics: statistics}, nil
}
