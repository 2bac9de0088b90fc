// Package insights contains the monthly insights evaluation engine.
package insights

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// currencyFormatThreshold decides when a condition value is rendered as
// currency instead of a plain number. Values above it read as money amounts,
// smaller ones as counts or percentages.
const currencyFormatThreshold = 10

// formatCurrency renders a decimal as a BRL amount with two decimal places.
func formatCurrency(v decimal.Decimal) string {
	return "R$ " + v.StringFixed(2)
}

// formatConditionValue renders a condition's right-hand side for messages.
func formatConditionValue(v decimal.Decimal) string {
	if v.GreaterThan(decimal.NewFromInt(currencyFormatThreshold)) {
		return formatCurrency(v)
	}
	return v.StringFixed(2)
}

// fieldLabel returns the Portuguese label of a condition field for messages.
// Category-scoped fields interpolate the category name.
func fieldLabel(field entity.ConditionField, category string) string {
	switch field {
	case entity.FieldTotalIncome:
		return "Receitas totais"
	case entity.FieldTotalExpenses:
		return "Gastos totais"
	case entity.FieldBalance:
		return "Saldo"
	case entity.FieldMonthlySavings:
		return "Economia mensal"
	case entity.FieldTransactionCount:
		return "Número de transações"
	case entity.FieldExpensesChange:
		return "Variação de gastos"
	case entity.FieldCategoryAmount:
		return fmt.Sprintf("Gastos em %s", category)
	case entity.FieldBudgetPercentage:
		return fmt.Sprintf("Orçamento de %s", category)
	default:
		return string(field)
	}
}

// operatorLabel returns the Portuguese label of a condition operator.
func operatorLabel(op entity.ConditionOperator) string {
	switch op {
	case entity.OperatorGreaterThan:
		return "acima de"
	case entity.OperatorLessThan:
		return "abaixo de"
	case entity.OperatorGreaterEqual:
		return "a partir de"
	case entity.OperatorLessEqual:
		return "até"
	case entity.OperatorEqual:
		return "igual a"
	case entity.OperatorNotEqual:
		return "diferente de"
	case entity.OperatorContains:
		return "contém"
	case entity.OperatorNotContains:
		return "não contém"
	default:
		return string(op)
	}
}
