// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/statementimport"
)

// StatementRowErrorResponse represents one rejected statement row in API responses.
type StatementRowErrorResponse struct {
	Line    int    `json:"line"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatementImportResponse represents the response of a statement import.
type StatementImportResponse struct {
	ImportedCount int                         `json:"imported_count"`
	RowErrors     []StatementRowErrorResponse `json:"row_errors"`
}

// ToStatementImportResponse converts an ImportStatementOutput to a
// StatementImportResponse DTO.
func ToStatementImportResponse(output *statementimport.ImportStatementOutput) StatementImportResponse {
	rowErrors := make([]StatementRowErrorResponse, len(output.RowErrors))
	for i, rowErr := range output.RowErrors {
		rowErrors[i] = StatementRowErrorResponse{
			Line:    rowErr.Line,
			Code:    string(rowErr.Code),
			Message: rowErr.Message,
		}
	}
	return StatementImportResponse{
		ImportedCount: output.ImportedCount,
		RowErrors:     rowErrors,
	}
}
