// Package insights contains the monthly insights evaluation engine.
package insights

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// UncategorizedName is the bucket name for expense transactions without a category.
const UncategorizedName = "Sem categoria"

// UncategorizedColor is the color used for the uncategorized bucket.
const UncategorizedColor = "#6B7280"

// UncategorizedIcon is the icon used for the uncategorized bucket.
const UncategorizedIcon = "question-mark"

// CategoryAnalytics is one category's share of the period's expenses.
type CategoryAnalytics struct {
	CategoryID        *uuid.UUID
	Name              string
	Color             string
	Icon              string
	Amount            decimal.Decimal
	PercentageOfTotal float64
	TransactionCount  int
}

// PeriodAggregate holds the totals of one calendar month computed in a single
// pass over its transactions. Sums keep full decimal precision; rounding only
// happens at presentation time.
type PeriodAggregate struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
	Categories       []CategoryAnalytics
}

// Aggregate computes the period aggregate for a list of transactions already
// restricted to one [startOfMonth, endOfMonth] window. An empty list yields an
// all-zero aggregate with no categories.
func Aggregate(transactions []*entity.TransactionWithCategory) *PeriodAggregate {
	agg := &PeriodAggregate{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Balance:       decimal.Zero,
	}

	type bucket struct {
		analytics CategoryAnalytics
		order     int
	}
	buckets := make(map[string]*bucket)

	for _, twc := range transactions {
		txn := twc.Transaction
		agg.TransactionCount++

		switch txn.Type {
		case entity.TransactionTypeIncome:
			agg.TotalIncome = agg.TotalIncome.Add(txn.Amount)
			continue
		case entity.TransactionTypeExpense:
			agg.TotalExpenses = agg.TotalExpenses.Add(txn.Amount)
		default:
			continue
		}

		// Category breakdown groups expense transactions only.
		key := UncategorizedName
		analytics := CategoryAnalytics{
			Name:  UncategorizedName,
			Color: UncategorizedColor,
			Icon:  UncategorizedIcon,
		}
		if txn.CategoryID != nil {
			key = txn.CategoryID.String()
			analytics.CategoryID = txn.CategoryID
			if twc.Category != nil {
				analytics.Name = twc.Category.Name
				analytics.Color = twc.Category.Color
				analytics.Icon = twc.Category.Icon
			} else {
				analytics.Name = key
				analytics.Color = entity.DefaultCategoryColor
				analytics.Icon = entity.DefaultCategoryIcon
			}
		}

		b, ok := buckets[key]
		if !ok {
			analytics.Amount = decimal.Zero
			b = &bucket{analytics: analytics, order: len(buckets)}
			buckets[key] = b
		}
		b.analytics.Amount = b.analytics.Amount.Add(txn.Amount)
		b.analytics.TransactionCount++
	}

	agg.Balance = agg.TotalIncome.Sub(agg.TotalExpenses)

	agg.Categories = make([]CategoryAnalytics, 0, len(buckets))
	for _, b := range buckets {
		if !agg.TotalExpenses.IsZero() {
			pct := b.analytics.Amount.Mul(decimal.NewFromInt(100)).Div(agg.TotalExpenses)
			b.analytics.PercentageOfTotal, _ = pct.Float64()
		}
		agg.Categories = append(agg.Categories, b.analytics)
	}

	// Descending by amount, name as a stable tie-breaker.
	sort.Slice(agg.Categories, func(i, j int) bool {
		if agg.Categories[i].Amount.Equal(agg.Categories[j].Amount) {
			return agg.Categories[i].Name < agg.Categories[j].Name
		}
		return agg.Categories[i].Amount.GreaterThan(agg.Categories[j].Amount)
	})

	return agg
}

// TopCategory returns the largest expense category of the aggregate, or nil
// when there are no expense transactions.
func (a *PeriodAggregate) TopCategory() *CategoryAnalytics {
	if len(a.Categories) == 0 {
		return nil
	}
	return &a.Categories[0]
}

// CategoryAmount returns the period expense total of a category by name,
// matched case-insensitively. The zero value is returned for categories
// absent from the period.
func (a *PeriodAggregate) CategoryAmount(name string) decimal.Decimal {
	for _, c := range a.Categories {
		if strings.EqualFold(c.Name, name) {
			return c.Amount
		}
	}
	return decimal.Zero
}
