package insights

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// snapshotFromAggregates builds a PeriodData directly from aggregates,
// bypassing transaction lists, for rule threshold tests.
func snapshotFromAggregates(current, previous *PeriodAggregate, budgets []*entity.BudgetStatistic) *PeriodData {
	ref := MonthReference{Month: 6, Year: 2025}
	return &PeriodData{
		Reference: ref,
		Current:   current,
		Previous:  previous,
		Budgets:   budgets,
		Analytics: Compare(ref, current, previous),
	}
}

func findInsight(insights []entity.MonthlyInsight, insightType string) *entity.MonthlyInsight {
	for i := range insights {
		if insights[i].Type == insightType {
			return &insights[i]
		}
	}
	return nil
}

func TestExpenseComparisonRule_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		name         string
		current      string
		previous     string
		wantFire     bool
		wantSeverity entity.InsightSeverity
	}{
		{"exactly 5 percent does not fire", "1050", "1000", false, ""},
		{"just above 5 percent fires", "1050.1", "1000", true, entity.InsightSeverityWarning},
		{"5.01 percent fires as warning", "2100.21", "2000", true, entity.InsightSeverityWarning},
		{"decrease beyond 5 percent fires as success", "900", "1000", true, entity.InsightSeveritySuccess},
		{"exactly minus 5 percent does not fire", "950", "1000", false, ""},
		{"previous zero skips the rule", "500", "0", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := snapshotFromAggregates(
				&PeriodAggregate{TotalExpenses: decimal.RequireFromString(tt.current)},
				&PeriodAggregate{TotalExpenses: decimal.RequireFromString(tt.previous)},
				nil,
			)

			insights := expenseComparisonRule(data)
			if tt.wantFire && len(insights) != 1 {
				t.Fatalf("expected rule to fire, got %d insights", len(insights))
			}
			if !tt.wantFire {
				if len(insights) != 0 {
					t.Fatalf("expected rule not to fire, got %+v", insights)
				}
				return
			}
			if insights[0].Severity != tt.wantSeverity {
				t.Errorf("severity = %s, want %s", insights[0].Severity, tt.wantSeverity)
			}
		})
	}
}

func TestTopCategoryRule_ActionableThreshold(t *testing.T) {
	tests := []struct {
		name           string
		topAmount      string
		totalExpenses  string
		wantActionable bool
	}{
		{"above 40 percent is actionable", "600", "1000", true},
		{"exactly 40 percent is not actionable", "400", "1000", false},
		{"below 40 percent is not actionable", "200", "1000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := decimal.RequireFromString(tt.topAmount)
			total := decimal.RequireFromString(tt.totalExpenses)
			pct, _ := top.Mul(decimal.NewFromInt(100)).Div(total).Float64()

			data := snapshotFromAggregates(
				&PeriodAggregate{
					TotalExpenses: total,
					Categories: []CategoryAnalytics{
						{Name: "Food", Amount: top, PercentageOfTotal: pct},
					},
				},
				&PeriodAggregate{},
				nil,
			)

			insights := topCategoryRule(data)
			if len(insights) != 1 {
				t.Fatalf("expected top category rule to fire, got %d insights", len(insights))
			}
			if insights[0].Actionable != tt.wantActionable {
				t.Errorf("actionable = %v, want %v", insights[0].Actionable, tt.wantActionable)
			}
		})
	}
}

func TestTopCategoryRule_NoExpenses(t *testing.T) {
	data := snapshotFromAggregates(&PeriodAggregate{}, &PeriodAggregate{}, nil)
	if insights := topCategoryRule(data); len(insights) != 0 {
		t.Errorf("expected no insight without expenses, got %+v", insights)
	}
}

func TestSavingsRule(t *testing.T) {
	tests := []struct {
		name         string
		income       string
		expenses     string
		wantFire     bool
		wantSeverity entity.InsightSeverity
	}{
		{"positive balance is success", "3000", "2500", true, entity.InsightSeveritySuccess},
		{"negative balance is error", "2000", "2500", true, entity.InsightSeverityError},
		{"exactly zero balance fires nothing", "2500", "2500", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			income := decimal.RequireFromString(tt.income)
			expenses := decimal.RequireFromString(tt.expenses)
			data := snapshotFromAggregates(
				&PeriodAggregate{
					TotalIncome:   income,
					TotalExpenses: expenses,
					Balance:       income.Sub(expenses),
				},
				&PeriodAggregate{},
				nil,
			)

			insights := savingsRule(data)
			if tt.wantFire != (len(insights) == 1) {
				t.Fatalf("fire = %v, want %v", len(insights) == 1, tt.wantFire)
			}
			if tt.wantFire && insights[0].Severity != tt.wantSeverity {
				t.Errorf("severity = %s, want %s", insights[0].Severity, tt.wantSeverity)
			}
		})
	}
}

func TestBudgetThresholdRule_Boundaries(t *testing.T) {
	tests := []struct {
		name         string
		percentage   float64
		wantFire     bool
		wantSeverity entity.InsightSeverity
	}{
		{"79.9 percent does not fire", 79.9, false, ""},
		{"exactly 80 percent fires as warning", 80, true, entity.InsightSeverityWarning},
		{"99 percent fires as warning", 99, true, entity.InsightSeverityWarning},
		{"exactly 100 percent fires as error", 100, true, entity.InsightSeverityError},
		{"130 percent fires as error", 130, true, entity.InsightSeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := &entity.BudgetStatistic{
				BudgetID:       uuid.New(),
				CategoryID:     uuid.New(),
				CategoryName:   "Food",
				Amount:         decimal.NewFromInt(1000),
				SpentAmount:    decimal.NewFromFloat(tt.percentage * 10),
				PercentageUsed: tt.percentage,
			}

			data := snapshotFromAggregates(&PeriodAggregate{}, &PeriodAggregate{}, []*entity.BudgetStatistic{budget})

			insights := budgetThresholdRule(data)
			if tt.wantFire != (len(insights) == 1) {
				t.Fatalf("fire = %v, want %v", len(insights) == 1, tt.wantFire)
			}
			if tt.wantFire && insights[0].Severity != tt.wantSeverity {
				t.Errorf("severity = %s, want %s", insights[0].Severity, tt.wantSeverity)
			}
		})
	}
}

func TestBudgetThresholdRule_OneInsightPerBudget(t *testing.T) {
	budgets := []*entity.BudgetStatistic{
		{CategoryName: "Food", Amount: decimal.NewFromInt(1000), SpentAmount: decimal.NewFromInt(1200), PercentageUsed: 120},
		{CategoryName: "Transport", Amount: decimal.NewFromInt(500), SpentAmount: decimal.NewFromInt(450), PercentageUsed: 90},
		{CategoryName: "Leisure", Amount: decimal.NewFromInt(300), SpentAmount: decimal.NewFromInt(30), PercentageUsed: 10},
	}

	data := snapshotFromAggregates(&PeriodAggregate{}, &PeriodAggregate{}, budgets)

	insights := budgetThresholdRule(data)
	if len(insights) != 2 {
		t.Fatalf("expected 2 budget insights, got %d", len(insights))
	}
	if insights[0].Severity != entity.InsightSeverityError {
		t.Errorf("first budget insight severity = %s, want error", insights[0].Severity)
	}
	if insights[1].Severity != entity.InsightSeverityWarning {
		t.Errorf("second budget insight severity = %s, want warning", insights[1].Severity)
	}
}

func TestTransactionCountRule_SwingBoundary(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		previous int
		wantFire bool
	}{
		{"swing of 4 does not fire", 14, 10, false},
		{"swing of exactly 5 fires", 15, 10, true},
		{"negative swing of 5 fires", 5, 10, true},
		{"no swing", 10, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := snapshotFromAggregates(
				&PeriodAggregate{TransactionCount: tt.current},
				&PeriodAggregate{TransactionCount: tt.previous},
				nil,
			)

			insights := transactionCountRule(data)
			if tt.wantFire != (len(insights) == 1) {
				t.Fatalf("fire = %v, want %v", len(insights) == 1, tt.wantFire)
			}
			if tt.wantFire {
				if insights[0].Severity != entity.InsightSeverityInfo {
					t.Errorf("severity = %s, want info", insights[0].Severity)
				}
				if insights[0].Actionable {
					t.Error("transaction count insight must not be actionable")
				}
			}
		})
	}
}

func TestEvaluateAutomaticRules_OrderAndOmission(t *testing.T) {
	// Expenses up 25%, Food at 60% of expenses, positive balance,
	// one budget at 85%, count swing below threshold.
	current := &PeriodAggregate{
		TotalIncome:      decimal.NewFromInt(3000),
		TotalExpenses:    decimal.NewFromInt(2500),
		Balance:          decimal.NewFromInt(500),
		TransactionCount: 3,
		Categories: []CategoryAnalytics{
			{Name: "Food", Amount: decimal.NewFromInt(1500), PercentageOfTotal: 60},
			{Name: "Transport", Amount: decimal.NewFromInt(1000), PercentageOfTotal: 40},
		},
	}
	previous := &PeriodAggregate{
		TotalExpenses:    decimal.NewFromInt(2000),
		Balance:          decimal.NewFromInt(0),
		TransactionCount: 2,
	}
	budgets := []*entity.BudgetStatistic{
		{CategoryName: "Food", Amount: decimal.NewFromInt(2000), SpentAmount: decimal.NewFromInt(1700), PercentageUsed: 85},
	}

	insights := EvaluateAutomaticRules(snapshotFromAggregates(current, previous, budgets))

	wantOrder := []string{
		InsightTypeExpenseComparison,
		InsightTypeTopCategory,
		InsightTypeSavings,
		InsightTypeBudgetThreshold,
	}
	if len(insights) != len(wantOrder) {
		t.Fatalf("expected %d insights, got %d: %+v", len(wantOrder), len(insights), insights)
	}
	for i, wantType := range wantOrder {
		if insights[i].Type != wantType {
			t.Errorf("insight[%d].Type = %s, want %s", i, insights[i].Type, wantType)
		}
	}

	if findInsight(insights, InsightTypeTransactionCount) != nil {
		t.Error("transaction count rule should not have fired")
	}
}
