// Package insights contains the monthly insights evaluation engine.
package insights

import (
	"github.com/shopspring/decimal"
)

// MonthReference identifies one calendar month.
type MonthReference struct {
	Month int
	Year  int
}

// PreviousMonth returns the calendar month before ref, rolling the year over
// at the January boundary.
func (ref MonthReference) PreviousMonth() MonthReference {
	if ref.Month == 1 {
		return MonthReference{Month: 12, Year: ref.Year - 1}
	}
	return MonthReference{Month: ref.Month - 1, Year: ref.Year}
}

// ComparisonDeltas holds the signed single-step deltas between two months.
// Positive values mean an increase over the previous month.
type ComparisonDeltas struct {
	IncomeChange      decimal.Decimal
	ExpensesChange    decimal.Decimal
	BalanceChange     decimal.Decimal
	SavingsDifference decimal.Decimal
}

// ComparativeAnalytics pairs the aggregates of month M and M-1 with their deltas.
type ComparativeAnalytics struct {
	CurrentMonth  MonthReference
	PreviousMonth MonthReference
	Current       *PeriodAggregate
	Previous      *PeriodAggregate
	Comparison    ComparisonDeltas
}

// Compare derives month-over-month deltas from two period aggregates.
// There is no smoothing or multi-period trend, strictly current minus previous.
func Compare(ref MonthReference, current, previous *PeriodAggregate) *ComparativeAnalytics {
	return &ComparativeAnalytics{
		CurrentMonth:  ref,
		PreviousMonth: ref.PreviousMonth(),
		Current:       current,
		Previous:      previous,
		Comparison: ComparisonDeltas{
			IncomeChange:      current.TotalIncome.Sub(previous.TotalIncome),
			ExpensesChange:    current.TotalExpenses.Sub(previous.TotalExpenses),
			BalanceChange:     current.Balance.Sub(previous.Balance),
			SavingsDifference: current.Balance.Sub(previous.Balance),
		},
	}
}

// ExpensesChangePercentage returns the expenses delta as a percentage of the
// previous month's expenses. The second return is false when the previous
// month had no expenses, in which case no percentage is defined.
func (ca *ComparativeAnalytics) ExpensesChangePercentage() (decimal.Decimal, bool) {
	if ca.Previous.TotalExpenses.IsZero() {
		return decimal.Zero, false
	}
	pct := ca.Comparison.ExpensesChange.
		Mul(decimal.NewFromInt(100)).
		Div(ca.Previous.TotalExpenses)
	return pct, true
}

// TransactionCountChange returns the signed difference in transaction counts.
func (ca *ComparativeAnalytics) TransactionCountChange() int {
	return ca.Current.TransactionCount - ca.Previous.TransactionCount
}
