// Package error defines domain-specific errors for the Dimdim application.
package error

import "errors"

// Insight domain errors.
var (
	// ErrCustomInsightNotFound is returned when a custom insight is not found in the system.
	ErrCustomInsightNotFound = errors.New("custom insight not found")

	// ErrNotAuthorizedToModifyInsight is returned when user is not authorized to modify a custom insight.
	ErrNotAuthorizedToModifyInsight = errors.New("not authorized to modify custom insight")

	// ErrInsightTemplateNotFound is returned when the referenced insight template does not exist.
	ErrInsightTemplateNotFound = errors.New("insight template not found")

	// ErrInsightMissingRule is returned when a custom insight has neither a
	// condition nor a formula.
	ErrInsightMissingRule = errors.New("custom insight requires a condition or a formula")

	// ErrUnsupportedConditionField is returned when a structured condition
	// references a field outside the supported set.
	ErrUnsupportedConditionField = errors.New("unsupported condition field")

	// ErrUnsupportedConditionOperator is returned when a structured condition
	// uses an operator outside the supported set.
	ErrUnsupportedConditionOperator = errors.New("unsupported condition operator")

	// ErrUnsupportedConditionFunction is returned when a condition references
	// an unknown derived-statistic function.
	ErrUnsupportedConditionFunction = errors.New("unsupported condition function")

	// ErrStatisticUnavailable is returned when a condition function needs
	// multi-month history that the engine does not keep.
	ErrStatisticUnavailable = errors.New("statistic requires historical data not available")

	// ErrConditionCategoryRequired is returned when a category-scoped field is
	// used without naming a category.
	ErrConditionCategoryRequired = errors.New("condition field requires a category")

	// ErrInvalidEvaluationPeriod is returned when the requested month or year
	// is out of range.
	ErrInvalidEvaluationPeriod = errors.New("invalid evaluation period")
)

// InsightErrorCode defines error codes for insight errors.
// Format: INS-XXYYYY where XX is category and YYYY is specific error.
type InsightErrorCode string

const (
	// CRUD errors (01XXXX)
	ErrCodeCustomInsightNotFound InsightErrorCode = "INS-010001"
	ErrCodeNotAuthorizedInsight  InsightErrorCode = "INS-010002"
	ErrCodeTemplateNotFound      InsightErrorCode = "INS-010003"
	ErrCodeInsightMissingRule    InsightErrorCode = "INS-010004"
	ErrCodeMissingInsightFields  InsightErrorCode = "INS-010005"

	// Evaluation errors (02XXXX)
	ErrCodeUnsupportedField       InsightErrorCode = "INS-020001"
	ErrCodeUnsupportedOperator    InsightErrorCode = "INS-020002"
	ErrCodeUnsupportedFunction    InsightErrorCode = "INS-020003"
	ErrCodeStatisticUnavailable   InsightErrorCode = "INS-020004"
	ErrCodeConditionCategory      InsightErrorCode = "INS-020005"
	ErrCodeInvalidEvaluationInput InsightErrorCode = "INS-020006"
)

// InsightError represents an insight error with code and message.
type InsightError struct {
	Code    InsightErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InsightError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InsightError) Unwrap() error {
	return e.Err
}

// NewInsightError creates a new InsightError with the given code and message.
func NewInsightError(code InsightErrorCode, message string, err error) *InsightError {
	return &InsightError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
