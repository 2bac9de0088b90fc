// Package insights contains the monthly insights evaluation engine.
package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

// EvaluateMonthInput represents the input for a monthly insights evaluation.
type EvaluateMonthInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
}

// CategoryBreakdownItem is one slice of the expense breakdown exposed to
// presentation alongside the insights.
type CategoryBreakdownItem struct {
	Name       string  `json:"name"`
	Value      string  `json:"value"`
	Color      string  `json:"color"`
	Icon       string  `json:"icon"`
	Percentage float64 `json:"percentage"`
}

// EvaluateMonthOutput represents the result of a monthly insights evaluation.
// Automatic and custom insights are kept in separate lists; merging is a
// presentation concern.
type EvaluateMonthOutput struct {
	Automatic         []entity.MonthlyInsight
	Custom            []entity.MonthlyInsight
	Analytics         *ComparativeAnalytics
	CategoryBreakdown []CategoryBreakdownItem
}

// EvaluateMonthUseCase performs one self-contained insights evaluation:
// fetch the period's data, build the snapshot once, run every automatic rule
// and active custom insight against it, return. Nothing is cached between
// requests; a concurrent identical request simply redoes the work.
type EvaluateMonthUseCase struct {
	transactionRepo   adapter.TransactionRepository
	budgetRepo        adapter.BudgetRepository
	customInsightRepo adapter.CustomInsightRepository
}

// NewEvaluateMonthUseCase creates a new EvaluateMonthUseCase instance.
func NewEvaluateMonthUseCase(
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	customInsightRepo adapter.CustomInsightRepository,
) *EvaluateMonthUseCase {
	return &EvaluateMonthUseCase{
		transactionRepo:   transactionRepo,
		budgetRepo:        budgetRepo,
		customInsightRepo: customInsightRepo,
	}
}

// Execute evaluates the month's insights for the user.
// Fetch-phase errors abort the whole call: no partial snapshot is usable
// since every rule depends on it. Per-insight evaluation errors never do.
func (uc *EvaluateMonthUseCase) Execute(ctx context.Context, input EvaluateMonthInput) (*EvaluateMonthOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	ref := MonthReference{Month: input.Month, Year: input.Year}
	prev := ref.PreviousMonth()

	currentStart, currentEnd := monthBounds(ref)
	previousStart, previousEnd := monthBounds(prev)

	current, err := uc.transactionRepo.FindByPeriod(ctx, input.UserID, currentStart, currentEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current month transactions: %w", err)
	}

	previous, err := uc.transactionRepo.FindByPeriod(ctx, input.UserID, previousStart, previousEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch previous month transactions: %w", err)
	}

	budgets, err := uc.budgetRepo.GetStatistics(ctx, input.UserID, input.Month, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budget statistics: %w", err)
	}

	customInsights, err := uc.customInsightRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch custom insights: %w", err)
	}

	// One snapshot for the whole pass: every rule and custom insight below
	// sees the same consistent view of the period.
	data := NewPeriodData(ref, current, previous, budgets)

	return &EvaluateMonthOutput{
		Automatic:         EvaluateAutomaticRules(data),
		Custom:            EvaluateCustomInsights(customInsights, data),
		Analytics:         data.Analytics,
		CategoryBreakdown: buildCategoryBreakdown(data.Current),
	}, nil
}

// validateInput validates the evaluation period.
func (uc *EvaluateMonthUseCase) validateInput(input EvaluateMonthInput) error {
	if input.Month < 1 || input.Month > 12 {
		return domainerror.NewInsightError(
			domainerror.ErrCodeInvalidEvaluationInput,
			"month must be between 1 and 12",
			domainerror.ErrInvalidEvaluationPeriod,
		)
	}
	if input.Year < 1970 || input.Year > 2999 {
		return domainerror.NewInsightError(
			domainerror.ErrCodeInvalidEvaluationInput,
			"year out of range",
			domainerror.ErrInvalidEvaluationPeriod,
		)
	}
	return nil
}

// monthBounds returns the inclusive [first day, last day] window of a month.
func monthBounds(ref MonthReference) (start, end time.Time) {
	start = time.Date(ref.Year, time.Month(ref.Month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// buildCategoryBreakdown converts the aggregate's category analytics into the
// presentation breakdown.
func buildCategoryBreakdown(agg *PeriodAggregate) []CategoryBreakdownItem {
	items := make([]CategoryBreakdownItem, 0, len(agg.Categories))
	for _, c := range agg.Categories {
		items = append(items, CategoryBreakdownItem{
			Name:       c.Name,
			Value:      c.Amount.String(),
			Color:      c.Color,
			Icon:       c.Icon,
			Percentage: c.PercentageOfTotal,
		})
	}
	return items
}
