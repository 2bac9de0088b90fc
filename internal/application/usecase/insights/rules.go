// Package insights contains the monthly insights evaluation engine.
package insights

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// Insight type identifiers for the automatic rules. Their declaration order
// here is also the presentation order.
const (
	InsightTypeExpenseComparison = "expense_comparison"
	InsightTypeTopCategory       = "top_category"
	InsightTypeSavings           = "savings"
	InsightTypeBudgetThreshold   = "budget_threshold"
	InsightTypeTransactionCount  = "transaction_count"
	InsightTypeCustom            = "custom_insight"
)

const (
	// expenseSwingThresholdPct is the minimum absolute month-over-month
	// expense change, in percent, for the expense comparison rule to fire.
	expenseSwingThresholdPct = 5
	// topCategoryActionablePct marks the top category actionable when it
	// concentrates more than this share of the period's expenses.
	topCategoryActionablePct = 40
	// budgetWarningPct is the usage percentage at which a budget insight fires.
	budgetWarningPct = 80
	// budgetExceededPct is the usage percentage at which severity becomes error.
	budgetExceededPct = 100
	// countSwingThreshold is the minimum absolute transaction count change
	// for the transaction count rule to fire.
	countSwingThreshold = 5
)

// automaticRule produces zero or more insights from the period snapshot.
// Every rule except the budget threshold rule emits at most one.
type automaticRule func(data *PeriodData) []entity.MonthlyInsight

// automaticRules is the fixed, ordered rule set. A rule that does not fire
// contributes nothing to the final list.
var automaticRules = []automaticRule{
	expenseComparisonRule,
	topCategoryRule,
	savingsRule,
	budgetThresholdRule,
	transactionCountRule,
}

// EvaluateAutomaticRules runs every automatic rule over the same snapshot and
// returns the insights that fired, in rule order.
func EvaluateAutomaticRules(data *PeriodData) []entity.MonthlyInsight {
	out := make([]entity.MonthlyInsight, 0, len(automaticRules))
	for _, rule := range automaticRules {
		out = append(out, rule(data)...)
	}
	return out
}

// single wraps one insight as a rule result.
func single(insight entity.MonthlyInsight) []entity.MonthlyInsight {
	return []entity.MonthlyInsight{insight}
}

// expenseComparisonRule fires when expenses moved more than 5% against the
// previous month. It is skipped entirely when the previous month had no
// expenses, since no percentage is defined.
func expenseComparisonRule(data *PeriodData) []entity.MonthlyInsight {
	pct, ok := data.Analytics.ExpensesChangePercentage()
	if !ok {
		return nil
	}
	if !pct.Abs().GreaterThan(decimal.NewFromInt(expenseSwingThresholdPct)) {
		return nil
	}

	pctValue, _ := pct.Float64()
	increased := pct.IsPositive()

	severity := entity.InsightSeveritySuccess
	description := fmt.Sprintf(
		"Seus gastos diminuíram %.1f%% em relação ao mês anterior (%s).",
		-pctValue, formatCurrency(data.Previous.TotalExpenses),
	)
	if increased {
		severity = entity.InsightSeverityWarning
		description = fmt.Sprintf(
			"Seus gastos aumentaram %.1f%% em relação ao mês anterior (%s).",
			pctValue, formatCurrency(data.Previous.TotalExpenses),
		)
	}

	return single(entity.MonthlyInsight{
		Type:        InsightTypeExpenseComparison,
		Severity:    severity,
		Title:       "Comparação de gastos",
		Description: description,
		Actionable:  increased,
		Data: map[string]any{
			"change_percentage": pctValue,
			"current_expenses":  data.Current.TotalExpenses.String(),
			"previous_expenses": data.Previous.TotalExpenses.String(),
		},
		Source: entity.InsightSourceAutomatic,
	})
}

// topCategoryRule fires whenever the largest expense category is non-zero.
// The insight is actionable when that category concentrates more than 40% of
// the period's expenses.
func topCategoryRule(data *PeriodData) []entity.MonthlyInsight {
	top := data.Current.TopCategory()
	if top == nil || top.Amount.IsZero() {
		return nil
	}

	actionable := top.Amount.
		Mul(decimal.NewFromInt(100)).
		GreaterThan(data.Current.TotalExpenses.Mul(decimal.NewFromInt(topCategoryActionablePct)))

	return single(entity.MonthlyInsight{
		Type:     InsightTypeTopCategory,
		Severity: entity.InsightSeverityInfo,
		Title:    "Maior categoria de gastos",
		Description: fmt.Sprintf(
			"%s concentrou %.1f%% dos seus gastos do mês (%s).",
			top.Name, top.PercentageOfTotal, formatCurrency(top.Amount),
		),
		Actionable: actionable,
		Data: map[string]any{
			"category_name": top.Name,
			"amount":        top.Amount.String(),
			"percentage":    top.PercentageOfTotal,
		},
		Source: entity.InsightSourceAutomatic,
	})
}

// savingsRule fires on any non-zero balance: success with a comparison to the
// previous month's savings when positive, error when negative. A balance of
// exactly zero produces nothing.
func savingsRule(data *PeriodData) []entity.MonthlyInsight {
	balance := data.Current.Balance
	if balance.IsZero() {
		return nil
	}

	if balance.IsNegative() {
		return single(entity.MonthlyInsight{
			Type:     InsightTypeSavings,
			Severity: entity.InsightSeverityError,
			Title:    "Déficit mensal",
			Description: fmt.Sprintf(
				"Seus gastos superaram as receitas em %s este mês.",
				formatCurrency(balance.Abs()),
			),
			Actionable: true,
			Data: map[string]any{
				"balance": balance.String(),
			},
			Source: entity.InsightSourceAutomatic,
		})
	}

	diff := data.Analytics.Comparison.SavingsDifference
	comparison := fmt.Sprintf("%s a mais que no mês anterior", formatCurrency(diff))
	if diff.IsNegative() {
		comparison = fmt.Sprintf("%s a menos que no mês anterior", formatCurrency(diff.Abs()))
	}

	return single(entity.MonthlyInsight{
		Type:     InsightTypeSavings,
		Severity: entity.InsightSeveritySuccess,
		Title:    "Economia do mês",
		Description: fmt.Sprintf(
			"Você economizou %s este mês, %s.",
			formatCurrency(balance), comparison,
		),
		Actionable: false,
		Data: map[string]any{
			"balance":            balance.String(),
			"savings_difference": diff.String(),
		},
		Source: entity.InsightSourceAutomatic,
	})
}

// budgetThresholdRule fires once per budget whose usage reached 80%, with
// severity error from 100% on. It relies on the budget statistics attached to
// the snapshot; the engine never recomputes spent amounts itself.
func budgetThresholdRule(data *PeriodData) []entity.MonthlyInsight {
	var insights []entity.MonthlyInsight
	for _, b := range data.Budgets {
		if b.PercentageUsed < budgetWarningPct {
			continue
		}

		severity := entity.InsightSeverityWarning
		title := "Orçamento quase no limite"
		description := fmt.Sprintf(
			"Você já usou %.0f%% do orçamento de %s (%s de %s).",
			b.PercentageUsed, b.CategoryName,
			formatCurrency(b.SpentAmount), formatCurrency(b.Amount),
		)
		if b.PercentageUsed >= budgetExceededPct {
			severity = entity.InsightSeverityError
			title = "Orçamento estourado"
			description = fmt.Sprintf(
				"O orçamento de %s foi excedido: %s de %s (%.0f%%).",
				b.CategoryName,
				formatCurrency(b.SpentAmount), formatCurrency(b.Amount),
				b.PercentageUsed,
			)
		}

		insights = append(insights, entity.MonthlyInsight{
			Type:        InsightTypeBudgetThreshold,
			Severity:    severity,
			Title:       title,
			Description: description,
			Actionable:  true,
			Data: map[string]any{
				"category_name":   b.CategoryName,
				"budget_amount":   b.Amount.String(),
				"spent_amount":    b.SpentAmount.String(),
				"percentage_used": b.PercentageUsed,
			},
			Source: entity.InsightSourceAutomatic,
		})
	}

	return insights
}

// transactionCountRule fires when the number of transactions swung by five or
// more against the previous month. Informational only, never actionable.
func transactionCountRule(data *PeriodData) []entity.MonthlyInsight {
	change := data.Analytics.TransactionCountChange()
	abs := change
	if abs < 0 {
		abs = -abs
	}
	if abs < countSwingThreshold {
		return nil
	}

	direction := "mais"
	if change < 0 {
		direction = "menos"
	}

	return single(entity.MonthlyInsight{
		Type:     InsightTypeTransactionCount,
		Severity: entity.InsightSeverityInfo,
		Title:    "Movimentação atípica",
		Description: fmt.Sprintf(
			"Você registrou %d transações %s que no mês anterior.",
			abs, direction,
		),
		Actionable: false,
		Data: map[string]any{
			"count_change":   change,
			"current_count":  data.Current.TransactionCount,
			"previous_count": data.Previous.TransactionCount,
		},
		Source: entity.InsightSourceAutomatic,
	})
}
