// Package error defines domain-specific errors for the Dimdim application.
package error

import "errors"

// Statement import domain errors.
var (
	// ErrStatementTooLarge is returned when the uploaded file exceeds the size limit.
	ErrStatementTooLarge = errors.New("statement file too large")

	// ErrStatementTooManyRows is returned when the statement exceeds the row limit.
	ErrStatementTooManyRows = errors.New("statement has too many rows")

	// ErrStatementMissingHeader is returned when required columns are absent.
	ErrStatementMissingHeader = errors.New("statement is missing required columns")

	// ErrStatementEmpty is returned when the statement has no data rows.
	ErrStatementEmpty = errors.New("statement has no data rows")

	// ErrStatementMalformed is returned when the file cannot be read as CSV at all.
	ErrStatementMalformed = errors.New("statement is not valid CSV")
)

// ImportErrorCode defines error codes for statement import errors.
// Format: IMP-XXYYYY where XX is category and YYYY is specific error.
type ImportErrorCode string

const (
	// File-level errors (01XXXX)
	ErrCodeStatementTooLarge    ImportErrorCode = "IMP-010001"
	ErrCodeStatementTooManyRows ImportErrorCode = "IMP-010002"
	ErrCodeStatementMissingHdr  ImportErrorCode = "IMP-010003"
	ErrCodeStatementEmpty       ImportErrorCode = "IMP-010004"
	ErrCodeStatementMalformed   ImportErrorCode = "IMP-010005"

	// Row-level errors (02XXXX) - collected, never abort the batch
	ErrCodeRowInvalidDate   ImportErrorCode = "IMP-020001"
	ErrCodeRowInvalidAmount ImportErrorCode = "IMP-020002"
	ErrCodeRowInvalidType   ImportErrorCode = "IMP-020003"
	ErrCodeRowMissingField  ImportErrorCode = "IMP-020004"
)

// ImportError represents a statement import error with code and message.
type ImportError struct {
	Code    ImportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError with the given code and message.
func NewImportError(code ImportErrorCode, message string, err error) *ImportError {
	return &ImportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
