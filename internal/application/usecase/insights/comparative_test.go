// Package insights contains the monthly insights evaluation engine.
package insights

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

func TestMonthReference_PreviousMonth(t *testing.T) {
	tests := []struct {
		name string
		ref  MonthReference
		want MonthReference
	}{
		{"mid year", MonthReference{Month: 6, Year: 2025}, MonthReference{Month: 5, Year: 2025}},
		{"january rolls year over", MonthReference{Month: 1, Year: 2025}, MonthReference{Month: 12, Year: 2024}},
		{"december", MonthReference{Month: 12, Year: 2025}, MonthReference{Month: 11, Year: 2025}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.PreviousMonth(); got != tt.want {
				t.Errorf("PreviousMonth() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompare_DeltaSymmetry(t *testing.T) {
	current := Aggregate([]*entity.TransactionWithCategory{
		txn(t, entity.TransactionTypeIncome, "3000", ""),
		txn(t, entity.TransactionTypeExpense, "2500", "Food"),
	})
	previous := Aggregate([]*entity.TransactionWithCategory{
		txn(t, entity.TransactionTypeIncome, "2800", ""),
		txn(t, entity.TransactionTypeExpense, "2000", "Food"),
	})

	ca := Compare(MonthReference{Month: 3, Year: 2025}, current, previous)

	if !ca.Comparison.IncomeChange.Equal(current.TotalIncome.Sub(previous.TotalIncome)) {
		t.Errorf("income change %s != current - previous", ca.Comparison.IncomeChange)
	}
	if !ca.Comparison.ExpensesChange.Equal(current.TotalExpenses.Sub(previous.TotalExpenses)) {
		t.Errorf("expenses change %s != current - previous", ca.Comparison.ExpensesChange)
	}
	if !ca.Comparison.BalanceChange.Equal(current.Balance.Sub(previous.Balance)) {
		t.Errorf("balance change %s != current - previous", ca.Comparison.BalanceChange)
	}
	if !ca.Comparison.SavingsDifference.Equal(current.Balance.Sub(previous.Balance)) {
		t.Errorf("savings difference %s != current savings - previous savings", ca.Comparison.SavingsDifference)
	}
	if ca.PreviousMonth != (MonthReference{Month: 2, Year: 2025}) {
		t.Errorf("previous month = %+v", ca.PreviousMonth)
	}
}

func TestExpensesChangePercentage(t *testing.T) {
	tests := []struct {
		name         string
		current      string
		previous     string
		wantPct      string
		wantDefined  bool
	}{
		{"25 percent increase", "2500", "2000", "25", true},
		{"20 percent decrease", "1600", "2000", "-20", true},
		{"previous zero is undefined", "500", "0", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := &PeriodAggregate{TotalExpenses: decimal.RequireFromString(tt.current)}
			previous := &PeriodAggregate{TotalExpenses: decimal.RequireFromString(tt.previous)}
			ca := Compare(MonthReference{Month: 5, Year: 2025}, current, previous)

			pct, defined := ca.ExpensesChangePercentage()
			if defined != tt.wantDefined {
				t.Fatalf("defined = %v, want %v", defined, tt.wantDefined)
			}
			if defined && !pct.Equal(decimal.RequireFromString(tt.wantPct)) {
				t.Errorf("pct = %s, want %s", pct, tt.wantPct)
			}
		})
	}
}
