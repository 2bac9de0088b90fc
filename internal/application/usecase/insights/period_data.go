// Package insights contains the monthly insights evaluation engine.
package insights

import (
	"strings"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// PeriodData is the aggregate snapshot one evaluation pass runs against.
// It is built exactly once per request and shared, read-only, by every
// automatic rule and custom insight, so all insights produced in one call
// see a consistent view of the period.
type PeriodData struct {
	Reference MonthReference
	Current   *PeriodAggregate
	Previous  *PeriodAggregate
	Budgets   []*entity.BudgetStatistic
	Analytics *ComparativeAnalytics
}

// NewPeriodData builds the evaluation snapshot from the raw period fetches.
func NewPeriodData(
	ref MonthReference,
	current, previous []*entity.TransactionWithCategory,
	budgets []*entity.BudgetStatistic,
) *PeriodData {
	currentAgg := Aggregate(current)
	previousAgg := Aggregate(previous)

	return &PeriodData{
		Reference: ref,
		Current:   currentAgg,
		Previous:  previousAgg,
		Budgets:   budgets,
		Analytics: Compare(ref, currentAgg, previousAgg),
	}
}

// BudgetStatistic finds the budget statistic for a category by
// case-insensitive name match. The second return is false when the period has
// no budget for that category.
func (p *PeriodData) BudgetStatistic(categoryName string) (*entity.BudgetStatistic, bool) {
	for _, b := range p.Budgets {
		if strings.EqualFold(b.CategoryName, categoryName) {
			return b, true
		}
	}
	return nil, false
}
