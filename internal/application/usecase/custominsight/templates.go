// Package custominsight contains use cases for managing user-authored insights.
package custominsight

import (
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// InsightTemplate is a predefined insight the user can instantiate and then
// tune. Templates carry a structured condition, never a formula.
type InsightTemplate struct {
	ID          string
	Name        string
	Description string
	Severity    entity.InsightSeverity
	Condition   entity.InsightCondition
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func fn(f entity.ConditionFunction) *entity.ConditionFunction {
	return &f
}

// insightTemplates is the catalog of predefined insights, keyed by ID in
// Templates(). The thresholds are starting points the user adjusts after
// instantiating.
var insightTemplates = []InsightTemplate{
	{
		ID:          "high-expenses",
		Name:        "Gastos elevados",
		Description: "Alerta quando os gastos do mês passam de um teto definido.",
		Severity:    entity.InsightSeverityWarning,
		Condition: entity.InsightCondition{
			Field:    entity.FieldTotalExpenses,
			Operator: entity.OperatorGreaterThan,
			Value:    dec(5000),
		},
	},
	{
		ID:          "negative-balance",
		Name:        "Saldo negativo",
		Description: "Alerta quando os gastos superam as receitas do mês.",
		Severity:    entity.InsightSeverityError,
		Condition: entity.InsightCondition{
			Field:    entity.FieldBalance,
			Operator: entity.OperatorLessThan,
			Value:    dec(0),
		},
	},
	{
		ID:          "savings-goal",
		Name:        "Meta de economia",
		Description: "Comemora quando a economia do mês atinge um valor mínimo.",
		Severity:    entity.InsightSeveritySuccess,
		Condition: entity.InsightCondition{
			Field:    entity.FieldMonthlySavings,
			Operator: entity.OperatorGreaterEqual,
			Value:    dec(500),
		},
	},
	{
		ID:          "expenses-growth",
		Name:        "Crescimento de gastos",
		Description: "Alerta quando os gastos sobem mais de 10% sobre o mês anterior.",
		Severity:    entity.InsightSeverityWarning,
		Condition: entity.InsightCondition{
			Field:    entity.FieldExpensesChange,
			Operator: entity.OperatorGreaterThan,
			Value:    dec(10),
		},
	},
	{
		ID:          "expenses-above-previous",
		Name:        "Gastos acima do mês anterior",
		Description: "Alerta quando os gastos do mês superam os do mês anterior.",
		Severity:    entity.InsightSeverityInfo,
		Condition: entity.InsightCondition{
			Field:    entity.FieldTotalExpenses,
			Operator: entity.OperatorGreaterThan,
			Function: fn(entity.FunctionPreviousMonth),
		},
	},
}

// Templates returns the template catalog.
func Templates() []InsightTemplate {
	out := make([]InsightTemplate, len(insightTemplates))
	copy(out, insightTemplates)
	return out
}

// TemplateByID returns the template with the given ID, or false.
func TemplateByID(id string) (InsightTemplate, bool) {
	for _, t := range insightTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return InsightTemplate{}, false
}
