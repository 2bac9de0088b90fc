// Package error defines domain-specific errors for the Dimdim application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when a budget already exists for the
	// same user, category, month and year.
	ErrBudgetAlreadyExists = errors.New("budget already exists for this category and period")

	// ErrInvalidBudgetAmount is returned when the budget amount is not positive.
	ErrInvalidBudgetAmount = errors.New("budget amount must be positive")

	// ErrInvalidBudgetPeriod is returned when month or year are out of range.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")

	// ErrNotAuthorizedToModifyBudget is returned when user is not authorized to modify a budget.
	ErrNotAuthorizedToModifyBudget = errors.New("not authorized to modify budget")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetAmount  BudgetErrorCode = "BDG-010001"
	ErrCodeInvalidBudgetPeriod  BudgetErrorCode = "BDG-010002"
	ErrCodeBudgetNotFound       BudgetErrorCode = "BDG-010003"
	ErrCodeBudgetAlreadyExists  BudgetErrorCode = "BDG-010004"
	ErrCodeNotAuthorizedBudget  BudgetErrorCode = "BDG-010005"
	ErrCodeMissingBudgetFields  BudgetErrorCode = "BDG-010006"
	ErrCodeBudgetCategoryUnknown BudgetErrorCode = "BDG-010007"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
