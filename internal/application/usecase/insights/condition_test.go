package insights

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

func decPtr(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func fnPtr(fn entity.ConditionFunction) *entity.ConditionFunction {
	return &fn
}

func conditionSnapshot() *PeriodData {
	ref := MonthReference{Month: 6, Year: 2025}
	current := &PeriodAggregate{
		TotalIncome:      decimal.NewFromInt(3000),
		TotalExpenses:    decimal.NewFromInt(2500),
		Balance:          decimal.NewFromInt(500),
		TransactionCount: 12,
		Categories: []CategoryAnalytics{
			{Name: "Food", Amount: decimal.NewFromInt(1500), PercentageOfTotal: 60},
			{Name: "Transport", Amount: decimal.NewFromInt(1000), PercentageOfTotal: 40},
		},
	}
	previous := &PeriodAggregate{
		TotalIncome:      decimal.NewFromInt(2800),
		TotalExpenses:    decimal.NewFromInt(2000),
		Balance:          decimal.NewFromInt(800),
		TransactionCount: 10,
		Categories: []CategoryAnalytics{
			{Name: "Food", Amount: decimal.NewFromInt(1200), PercentageOfTotal: 60},
		},
	}
	budgets := []*entity.BudgetStatistic{
		{CategoryName: "Food", Amount: decimal.NewFromInt(2000), SpentAmount: decimal.NewFromInt(1500), PercentageUsed: 75},
	}
	return &PeriodData{
		Reference: ref,
		Current:   current,
		Previous:  previous,
		Budgets:   budgets,
		Analytics: Compare(ref, current, previous),
	}
}

func TestEvaluateCondition_Operators(t *testing.T) {
	tests := []struct {
		name          string
		cond          entity.InsightCondition
		wantTriggered bool
	}{
		{
			"greater than at the boundary is false",
			entity.InsightCondition{Field: entity.FieldTotalExpenses, Operator: entity.OperatorGreaterThan, Value: decPtr("2500")},
			false,
		},
		{
			"greater than just above the boundary is true",
			entity.InsightCondition{Field: entity.FieldTotalExpenses, Operator: entity.OperatorGreaterThan, Value: decPtr("2499.99")},
			true,
		},
		{
			"less than",
			entity.InsightCondition{Field: entity.FieldBalance, Operator: entity.OperatorLessThan, Value: decPtr("1000")},
			true,
		},
		{
			"greater or equal includes the boundary",
			entity.InsightCondition{Field: entity.FieldTotalIncome, Operator: entity.OperatorGreaterEqual, Value: decPtr("3000")},
			true,
		},
		{
			"less or equal includes the boundary",
			entity.InsightCondition{Field: entity.FieldTransactionCount, Operator: entity.OperatorLessEqual, Value: decPtr("12")},
			true,
		},
		{
			"equality compares values not representations",
			entity.InsightCondition{Field: entity.FieldBalance, Operator: entity.OperatorEqual, Value: decPtr("500.00")},
			true,
		},
		{
			"not equal",
			entity.InsightCondition{Field: entity.FieldBalance, Operator: entity.OperatorNotEqual, Value: decPtr("500")},
			false,
		},
		{
			"contains on canonical string form",
			entity.InsightCondition{Field: entity.FieldTotalExpenses, Operator: entity.OperatorContains, Value: decPtr("25")},
			true,
		},
		{
			"not contains",
			entity.InsightCondition{Field: entity.FieldTotalExpenses, Operator: entity.OperatorNotContains, Value: decPtr("99")},
			true,
		},
	}

	data := conditionSnapshot()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := evaluateCondition(&tt.cond, data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if eval.Triggered != tt.wantTriggered {
				t.Errorf("triggered = %v, want %v", eval.Triggered, tt.wantTriggered)
			}
			if eval.Message == "" {
				t.Error("expected a synthesized message")
			}
		})
	}
}

func TestEvaluateCondition_Fields(t *testing.T) {
	tests := []struct {
		name          string
		cond          entity.InsightCondition
		wantTriggered bool
	}{
		{
			"monthly savings aliases balance",
			entity.InsightCondition{Field: entity.FieldMonthlySavings, Operator: entity.OperatorEqual, Value: decPtr("500")},
			true,
		},
		{
			"expenses change percentage",
			entity.InsightCondition{Field: entity.FieldExpensesChange, Operator: entity.OperatorGreaterThan, Value: decPtr("20")},
			true,
		},
		{
			"category amount",
			entity.InsightCondition{Field: entity.FieldCategoryAmount, Operator: entity.OperatorGreaterEqual, Value: decPtr("1500"), Category: "Food"},
			true,
		},
		{
			"category amount is case insensitive on the name",
			entity.InsightCondition{Field: entity.FieldCategoryAmount, Operator: entity.OperatorEqual, Value: decPtr("1000"), Category: "transport"},
			true,
		},
		{
			"unknown category resolves to zero",
			entity.InsightCondition{Field: entity.FieldCategoryAmount, Operator: entity.OperatorEqual, Value: decPtr("0"), Category: "Viagens"},
			true,
		},
		{
			"budget percentage",
			entity.InsightCondition{Field: entity.FieldBudgetPercentage, Operator: entity.OperatorLessThan, Value: decPtr("80"), Category: "Food"},
			true,
		},
		{
			"budget percentage without a budget is zero",
			entity.InsightCondition{Field: entity.FieldBudgetPercentage, Operator: entity.OperatorEqual, Value: decPtr("0"), Category: "Transport"},
			true,
		},
	}

	data := conditionSnapshot()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := evaluateCondition(&tt.cond, data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if eval.Triggered != tt.wantTriggered {
				t.Errorf("triggered = %v, want %v", eval.Triggered, tt.wantTriggered)
			}
		})
	}
}

func TestEvaluateCondition_ExpensesChangeUndefined(t *testing.T) {
	ref := MonthReference{Month: 1, Year: 2025}
	current := &PeriodAggregate{TotalExpenses: decimal.NewFromInt(900)}
	previous := &PeriodAggregate{}
	data := &PeriodData{
		Reference: ref,
		Current:   current,
		Previous:  previous,
		Analytics: Compare(ref, current, previous),
	}

	cond := entity.InsightCondition{
		Field:    entity.FieldExpensesChange,
		Operator: entity.OperatorEqual,
		Value:    decPtr("0"),
	}

	eval, err := evaluateCondition(&cond, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eval.Triggered {
		t.Error("undefined change should compare as zero")
	}
}

func TestEvaluateCondition_PreviousMonthFunction(t *testing.T) {
	data := conditionSnapshot()

	// Current expenses (2500) > previous month's expenses (2000).
	cond := entity.InsightCondition{
		Field:    entity.FieldTotalExpenses,
		Operator: entity.OperatorGreaterThan,
		Function: fnPtr(entity.FunctionPreviousMonth),
	}

	eval, err := evaluateCondition(&cond, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eval.Triggered {
		t.Error("expected condition against previous month to trigger")
	}
}

func TestEvaluateCondition_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cond    entity.InsightCondition
		wantErr error
	}{
		{
			"unsupported field",
			entity.InsightCondition{Field: "net_worth", Operator: entity.OperatorGreaterThan, Value: decPtr("1")},
			domainerror.ErrUnsupportedConditionField,
		},
		{
			"unsupported operator",
			entity.InsightCondition{Field: entity.FieldBalance, Operator: "matches", Value: decPtr("1")},
			domainerror.ErrUnsupportedConditionOperator,
		},
		{
			"unsupported function",
			entity.InsightCondition{Field: entity.FieldBalance, Operator: entity.OperatorGreaterThan, Function: fnPtr("median")},
			domainerror.ErrUnsupportedConditionFunction,
		},
		{
			"statistical function needs history",
			entity.InsightCondition{Field: entity.FieldTotalExpenses, Operator: entity.OperatorGreaterThan, Function: fnPtr(entity.FunctionAverage)},
			domainerror.ErrStatisticUnavailable,
		},
		{
			"average plus stddev needs history",
			entity.InsightCondition{Field: entity.FieldTotalExpenses, Operator: entity.OperatorGreaterThan, Function: fnPtr(entity.FunctionAveragePlusStddev)},
			domainerror.ErrStatisticUnavailable,
		},
		{
			"category amount without category",
			entity.InsightCondition{Field: entity.FieldCategoryAmount, Operator: entity.OperatorGreaterThan, Value: decPtr("1")},
			domainerror.ErrConditionCategoryRequired,
		},
		{
			"previous month of budget percentage is unavailable",
			entity.InsightCondition{Field: entity.FieldBudgetPercentage, Operator: entity.OperatorGreaterThan, Function: fnPtr(entity.FunctionPreviousMonth), Category: "Food"},
			domainerror.ErrStatisticUnavailable,
		},
		{
			"neither value nor function",
			entity.InsightCondition{Field: entity.FieldBalance, Operator: entity.OperatorGreaterThan},
			domainerror.ErrInsightMissingRule,
		},
	}

	data := conditionSnapshot()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evaluateCondition(&tt.cond, data)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want wrapped %v", err, tt.wantErr)
			}
		})
	}
}
