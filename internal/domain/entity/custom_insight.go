// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InsightSeverity classifies how an insight should be presented.
type InsightSeverity string

const (
	InsightSeverityInfo    InsightSeverity = "info"
	InsightSeveritySuccess InsightSeverity = "success"
	InsightSeverityWarning InsightSeverity = "warning"
	InsightSeverityError   InsightSeverity = "error"
)

// CustomInsightType selects which evaluation mode a custom insight uses.
type CustomInsightType string

const (
	// CustomInsightTypeTemplate means the insight was instantiated from a
	// predefined template and carries a structured condition.
	CustomInsightTypeTemplate CustomInsightType = "template"
	// CustomInsightTypeCustom means the insight was authored directly,
	// either as a structured condition or as a restricted formula.
	CustomInsightTypeCustom CustomInsightType = "custom"
)

// ConditionField is the closed set of metrics a structured condition can
// reference. Adding a field is a compile-time-checked change in the evaluator.
type ConditionField string

const (
	FieldTotalIncome      ConditionField = "total_income"
	FieldTotalExpenses    ConditionField = "total_expenses"
	FieldBalance          ConditionField = "balance"
	FieldMonthlySavings   ConditionField = "monthly_savings" // alias of balance
	FieldTransactionCount ConditionField = "transaction_count"
	FieldExpensesChange   ConditionField = "expenses_change_percentage"
	FieldCategoryAmount   ConditionField = "category_amount"   // requires Category
	FieldBudgetPercentage ConditionField = "budget_percentage" // requires Category
)

// ConditionOperator is the closed set of supported comparison operators.
type ConditionOperator string

const (
	OperatorGreaterThan  ConditionOperator = ">"
	OperatorLessThan     ConditionOperator = "<"
	OperatorGreaterEqual ConditionOperator = ">="
	OperatorLessEqual    ConditionOperator = "<="
	OperatorEqual        ConditionOperator = "=="
	OperatorNotEqual     ConditionOperator = "!="
	OperatorContains     ConditionOperator = "contains"
	OperatorNotContains  ConditionOperator = "not_contains"
)

// ConditionFunction names a derived statistic usable as the right-hand side
// of a structured condition instead of a literal value.
type ConditionFunction string

const (
	FunctionAverage           ConditionFunction = "average"
	FunctionAveragePlusStddev ConditionFunction = "average_plus_stddev"
	FunctionPreviousMonth     ConditionFunction = "previous_month"
	FunctionMax               ConditionFunction = "max"
	FunctionMin               ConditionFunction = "min"
)

// InsightCondition is a structured, user-authored trigger condition.
// Exactly one of Value/Function is meaningful as the right-hand side.
type InsightCondition struct {
	Field    ConditionField
	Operator ConditionOperator
	Value    *decimal.Decimal
	Function *ConditionFunction
	Category string // category name, required by FieldCategoryAmount and FieldBudgetPercentage
}

// CustomInsight is a user-authored rule evaluated against monthly period data.
// Exactly one of Condition/Formula is populated, selected by InsightType and
// how the insight was authored.
type CustomInsight struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	Severity    InsightSeverity
	IsActive    bool
	InsightType CustomInsightType
	TemplateID  string
	Condition   *InsightCondition
	Formula     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCustomInsight creates a new CustomInsight entity.
func NewCustomInsight(
	userID uuid.UUID,
	name, description string,
	severity InsightSeverity,
	insightType CustomInsightType,
	templateID string,
	condition *InsightCondition,
	formula string,
) *CustomInsight {
	now := time.Now().UTC()

	return &CustomInsight{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Severity:    severity,
		IsActive:    true,
		InsightType: insightType,
		TemplateID:  templateID,
		Condition:   condition,
		Formula:     formula,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Duplicate returns a copy of the insight owned by the same user with a new
// identity and a name marked as a copy. The copy starts inactive so the user
// can review it before it fires.
func (ci *CustomInsight) Duplicate() *CustomInsight {
	now := time.Now().UTC()

	copied := *ci
	copied.ID = uuid.New()
	copied.Name = ci.Name + " (cópia)"
	copied.IsActive = false
	copied.CreatedAt = now
	copied.UpdatedAt = now

	if ci.Condition != nil {
		cond := *ci.Condition
		copied.Condition = &cond
	}

	return &copied
}
