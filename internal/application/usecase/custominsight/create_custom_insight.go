// Package custominsight contains use cases for managing user-authored insights.
package custominsight

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

// MaxInsightNameLength is the maximum allowed length for insight names.
const MaxInsightNameLength = 100

// CreateCustomInsightInput represents the input for custom insight creation.
// TemplateID instantiates a predefined insight; otherwise exactly one of
// Condition/Formula must be given.
type CreateCustomInsightInput struct {
	UserID      uuid.UUID
	Name        string
	Description string
	Severity    entity.InsightSeverity
	TemplateID  string
	Condition   *entity.InsightCondition
	Formula     string
}

// CreateCustomInsightOutput represents the output of custom insight creation.
type CreateCustomInsightOutput struct {
	Insight *entity.CustomInsight
}

// CreateCustomInsightUseCase handles custom insight creation logic.
type CreateCustomInsightUseCase struct {
	customInsightRepo adapter.CustomInsightRepository
}

// NewCreateCustomInsightUseCase creates a new CreateCustomInsightUseCase instance.
func NewCreateCustomInsightUseCase(customInsightRepo adapter.CustomInsightRepository) *CreateCustomInsightUseCase {
	return &CreateCustomInsightUseCase{customInsightRepo: customInsightRepo}
}

// Execute performs the custom insight creation.
func (uc *CreateCustomInsightUseCase) Execute(ctx context.Context, input CreateCustomInsightInput) (*CreateCustomInsightOutput, error) {
	if input.TemplateID != "" {
		return uc.createFromTemplate(ctx, input)
	}

	name := strings.TrimSpace(input.Name)
	severity := input.Severity
	if severity == "" {
		severity = entity.InsightSeverityInfo
	}

	if err := validateInsightFields(name, severity); err != nil {
		return nil, err
	}

	if (input.Condition == nil) == (input.Formula == "") {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeInsightMissingRule,
			"exactly one of condition or formula is required",
			domainerror.ErrInsightMissingRule,
		)
	}

	if input.Condition != nil {
		if err := validateCondition(input.Condition); err != nil {
			return nil, err
		}
	}

	insight := entity.NewCustomInsight(
		input.UserID,
		name,
		input.Description,
		severity,
		entity.CustomInsightTypeCustom,
		"",
		input.Condition,
		input.Formula,
	)

	if err := uc.customInsightRepo.Create(ctx, insight); err != nil {
		return nil, fmt.Errorf("failed to create custom insight: %w", err)
	}

	return &CreateCustomInsightOutput{Insight: insight}, nil
}

// createFromTemplate instantiates a predefined insight. The template supplies
// the condition and defaults; the caller may override name and description.
func (uc *CreateCustomInsightUseCase) createFromTemplate(ctx context.Context, input CreateCustomInsightInput) (*CreateCustomInsightOutput, error) {
	template, ok := TemplateByID(input.TemplateID)
	if !ok {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeTemplateNotFound,
			fmt.Sprintf("insight template %q not found", input.TemplateID),
			domainerror.ErrInsightTemplateNotFound,
		)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = template.Name
	}
	description := input.Description
	if description == "" {
		description = template.Description
	}
	severity := input.Severity
	if severity == "" {
		severity = template.Severity
	}

	if err := validateInsightFields(name, severity); err != nil {
		return nil, err
	}

	condition := template.Condition

	insight := entity.NewCustomInsight(
		input.UserID,
		name,
		description,
		severity,
		entity.CustomInsightTypeTemplate,
		template.ID,
		&condition,
		"",
	)

	if err := uc.customInsightRepo.Create(ctx, insight); err != nil {
		return nil, fmt.Errorf("failed to create custom insight: %w", err)
	}

	return &CreateCustomInsightOutput{Insight: insight}, nil
}

// validateInsightFields applies the shared create/update validation.
func validateInsightFields(name string, severity entity.InsightSeverity) error {
	if name == "" || len(name) > MaxInsightNameLength {
		return domainerror.NewInsightError(
			domainerror.ErrCodeMissingInsightFields,
			fmt.Sprintf("insight name is required and must not exceed %d characters", MaxInsightNameLength),
			domainerror.ErrInsightMissingRule,
		)
	}

	switch severity {
	case entity.InsightSeverityInfo, entity.InsightSeveritySuccess,
		entity.InsightSeverityWarning, entity.InsightSeverityError:
		return nil
	}
	return domainerror.NewInsightError(
		domainerror.ErrCodeMissingInsightFields,
		"severity must be one of info, success, warning, error",
		domainerror.ErrInsightMissingRule,
	)
}

// validateCondition rejects conditions that would only fail at evaluation
// time: unknown fields and operators, and category-scoped fields without a
// category. The evaluator re-checks these, but failing at authoring time
// gives the user a correctable error instead of a silent dead insight.
func validateCondition(cond *entity.InsightCondition) error {
	switch cond.Field {
	case entity.FieldTotalIncome, entity.FieldTotalExpenses, entity.FieldBalance,
		entity.FieldMonthlySavings, entity.FieldTransactionCount, entity.FieldExpensesChange:
	case entity.FieldCategoryAmount, entity.FieldBudgetPercentage:
		if cond.Category == "" {
			return domainerror.NewInsightError(
				domainerror.ErrCodeConditionCategory,
				fmt.Sprintf("field %q requires a category", cond.Field),
				domainerror.ErrConditionCategoryRequired,
			)
		}
	default:
		return domainerror.NewInsightError(
			domainerror.ErrCodeUnsupportedField,
			fmt.Sprintf("unsupported condition field %q", cond.Field),
			domainerror.ErrUnsupportedConditionField,
		)
	}

	switch cond.Operator {
	case entity.OperatorGreaterThan, entity.OperatorLessThan, entity.OperatorGreaterEqual,
		entity.OperatorLessEqual, entity.OperatorEqual, entity.OperatorNotEqual,
		entity.OperatorContains, entity.OperatorNotContains:
	default:
		return domainerror.NewInsightError(
			domainerror.ErrCodeUnsupportedOperator,
			fmt.Sprintf("unsupported condition operator %q", cond.Operator),
			domainerror.ErrUnsupportedConditionOperator,
		)
	}

	if cond.Value == nil && cond.Function == nil {
		return domainerror.NewInsightError(
			domainerror.ErrCodeInsightMissingRule,
			"condition requires a value or a function",
			domainerror.ErrInsightMissingRule,
		)
	}

	if cond.Function != nil {
		switch *cond.Function {
		case entity.FunctionAverage, entity.FunctionAveragePlusStddev,
			entity.FunctionPreviousMonth, entity.FunctionMax, entity.FunctionMin:
		default:
			return domainerror.NewInsightError(
				domainerror.ErrCodeUnsupportedFunction,
				fmt.Sprintf("unsupported condition function %q", *cond.Function),
				domainerror.ErrUnsupportedConditionFunction,
			)
		}
	}

	return nil
}
