// Package insights contains the monthly insights evaluation engine.
package insights

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

// Evaluation is the outcome of evaluating one custom insight: whether it
// triggered and, if so, the synthesized user-facing message.
type Evaluation struct {
	Triggered bool
	Message   string
	Data      map[string]any
}

// evaluateCondition decides trigger/no-trigger for a structured condition
// against the period snapshot. Unsupported fields, operators or functions are
// configuration errors surfaced as typed InsightErrors scoped to this one
// condition; they never abort the batch.
func evaluateCondition(cond *entity.InsightCondition, data *PeriodData) (*Evaluation, error) {
	left, err := resolveField(cond, data)
	if err != nil {
		return nil, err
	}

	right, err := resolveRightHandSide(cond, data)
	if err != nil {
		return nil, err
	}

	triggered, err := applyOperator(cond.Operator, left, right)
	if err != nil {
		return nil, err
	}

	actual, _ := left.Float64()
	expected, _ := right.Float64()

	return &Evaluation{
		Triggered: triggered,
		Message: fmt.Sprintf("%s %s %s (valor atual: %s)",
			fieldLabel(cond.Field, cond.Category),
			operatorLabel(cond.Operator),
			formatConditionValue(right),
			formatConditionValue(left),
		),
		Data: map[string]any{
			"field":    string(cond.Field),
			"operator": string(cond.Operator),
			"actual":   actual,
			"expected": expected,
		},
	}, nil
}

// resolveField maps the condition field to its value in the snapshot.
// The switch is exhaustive over the closed field enum.
func resolveField(cond *entity.InsightCondition, data *PeriodData) (decimal.Decimal, error) {
	switch cond.Field {
	case entity.FieldTotalIncome:
		return data.Current.TotalIncome, nil
	case entity.FieldTotalExpenses:
		return data.Current.TotalExpenses, nil
	case entity.FieldBalance, entity.FieldMonthlySavings:
		return data.Current.Balance, nil
	case entity.FieldTransactionCount:
		return decimal.NewFromInt(int64(data.Current.TransactionCount)), nil
	case entity.FieldExpensesChange:
		pct, ok := data.Analytics.ExpensesChangePercentage()
		if !ok {
			// No previous expenses: the change is defined as zero rather
			// than an error, so conditions on it simply compare against 0.
			return decimal.Zero, nil
		}
		return pct, nil
	case entity.FieldCategoryAmount:
		if cond.Category == "" {
			return decimal.Zero, domainerror.NewInsightError(
				domainerror.ErrCodeConditionCategory,
				"category_amount requires a category",
				domainerror.ErrConditionCategoryRequired,
			)
		}
		return data.Current.CategoryAmount(cond.Category), nil
	case entity.FieldBudgetPercentage:
		if cond.Category == "" {
			return decimal.Zero, domainerror.NewInsightError(
				domainerror.ErrCodeConditionCategory,
				"budget_percentage requires a category",
				domainerror.ErrConditionCategoryRequired,
			)
		}
		stat, ok := data.BudgetStatistic(cond.Category)
		if !ok {
			// No budget defined for the category in this period: usage is 0.
			return decimal.Zero, nil
		}
		return decimal.NewFromFloat(stat.PercentageUsed), nil
	default:
		return decimal.Zero, domainerror.NewInsightError(
			domainerror.ErrCodeUnsupportedField,
			fmt.Sprintf("unsupported condition field %q", cond.Field),
			domainerror.ErrUnsupportedConditionField,
		)
	}
}

// resolveRightHandSide resolves the comparison target: a literal value or a
// derived-statistic function. The historical statistics (average, stddev,
// max, min) need multi-month data the engine does not keep and resolve to a
// typed error instead of a misleading constant.
func resolveRightHandSide(cond *entity.InsightCondition, data *PeriodData) (decimal.Decimal, error) {
	if cond.Function == nil {
		if cond.Value == nil {
			return decimal.Zero, domainerror.NewInsightError(
				domainerror.ErrCodeInsightMissingRule,
				"condition has neither value nor function",
				domainerror.ErrInsightMissingRule,
			)
		}
		return *cond.Value, nil
	}

	switch *cond.Function {
	case entity.FunctionPreviousMonth:
		return resolvePreviousMonthField(cond, data)
	case entity.FunctionAverage, entity.FunctionAveragePlusStddev,
		entity.FunctionMax, entity.FunctionMin:
		return decimal.Zero, domainerror.NewInsightError(
			domainerror.ErrCodeStatisticUnavailable,
			fmt.Sprintf("function %q requires multi-month history", *cond.Function),
			domainerror.ErrStatisticUnavailable,
		)
	default:
		return decimal.Zero, domainerror.NewInsightError(
			domainerror.ErrCodeUnsupportedFunction,
			fmt.Sprintf("unsupported condition function %q", *cond.Function),
			domainerror.ErrUnsupportedConditionFunction,
		)
	}
}

// resolvePreviousMonthField resolves the condition field against the
// previous month's aggregate.
func resolvePreviousMonthField(cond *entity.InsightCondition, data *PeriodData) (decimal.Decimal, error) {
	switch cond.Field {
	case entity.FieldTotalIncome:
		return data.Previous.TotalIncome, nil
	case entity.FieldTotalExpenses:
		return data.Previous.TotalExpenses, nil
	case entity.FieldBalance, entity.FieldMonthlySavings:
		return data.Previous.Balance, nil
	case entity.FieldTransactionCount:
		return decimal.NewFromInt(int64(data.Previous.TransactionCount)), nil
	case entity.FieldCategoryAmount:
		if cond.Category == "" {
			return decimal.Zero, domainerror.NewInsightError(
				domainerror.ErrCodeConditionCategory,
				"category_amount requires a category",
				domainerror.ErrConditionCategoryRequired,
			)
		}
		return data.Previous.CategoryAmount(cond.Category), nil
	default:
		// previous_month makes no sense for change percentages or budget
		// usage; only the current period's budgets are fetched.
		return decimal.Zero, domainerror.NewInsightError(
			domainerror.ErrCodeStatisticUnavailable,
			fmt.Sprintf("previous_month is not available for field %q", cond.Field),
			domainerror.ErrStatisticUnavailable,
		)
	}
}

// applyOperator evaluates the comparison. Numeric operators compare decimals;
// contains/not_contains compare the canonical string forms case-insensitively.
func applyOperator(op entity.ConditionOperator, left, right decimal.Decimal) (bool, error) {
	switch op {
	case entity.OperatorGreaterThan:
		return left.GreaterThan(right), nil
	case entity.OperatorLessThan:
		return left.LessThan(right), nil
	case entity.OperatorGreaterEqual:
		return left.GreaterThanOrEqual(right), nil
	case entity.OperatorLessEqual:
		return left.LessThanOrEqual(right), nil
	case entity.OperatorEqual:
		return left.Equal(right), nil
	case entity.OperatorNotEqual:
		return !left.Equal(right), nil
	case entity.OperatorContains:
		return strings.Contains(strings.ToLower(left.String()), strings.ToLower(right.String())), nil
	case entity.OperatorNotContains:
		return !strings.Contains(strings.ToLower(left.String()), strings.ToLower(right.String())), nil
	default:
		return false, domainerror.NewInsightError(
			domainerror.ErrCodeUnsupportedOperator,
			fmt.Sprintf("unsupported condition operator %q", op),
			domainerror.ErrUnsupportedConditionOperator,
		)
	}
}
