// Package statementimport contains the CSV statement import use cases.
package statementimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

const (
	// MaxStatementSize is the maximum accepted file size in bytes.
	MaxStatementSize = 5 * 1024 * 1024
	// MaxStatementRows is the maximum number of data rows per statement.
	MaxStatementRows = 1000
)

// dateLayouts are tried in order. DD/MM/YYYY wins over MM/DD/YYYY for
// ambiguous dates, matching the Brazilian bank statements this importer
// targets.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"01/02/2006",
}

// ParsedRow is one valid statement row ready for import.
type ParsedRow struct {
	Line         int // 1-based line number in the file, header included
	Date         time.Time
	Description  string
	Amount       decimal.Decimal
	Type         entity.TransactionType
	CategoryName string // empty when the row had no category
}

// RowError is one rejected statement row. Row errors are collected, never
// aborting the parse.
type RowError struct {
	Line    int
	Code    domainerror.ImportErrorCode
	Message string
}

// ParseStatementInput represents the input for statement parsing.
type ParseStatementInput struct {
	Content []byte
}

// ParseStatementOutput carries the parse result: valid rows plus the
// per-row errors of the rejected ones.
type ParseStatementOutput struct {
	Rows      []ParsedRow
	RowErrors []RowError
}

// ParseStatementUseCase parses an uploaded CSV statement. It is pure: no
// repositories, no persistence.
type ParseStatementUseCase struct{}

// NewParseStatementUseCase creates a new ParseStatementUseCase instance.
func NewParseStatementUseCase() *ParseStatementUseCase {
	return &ParseStatementUseCase{}
}

// Execute parses the statement. File-level problems (size, shape, header)
// fail the whole call; row-level problems are collected in RowErrors.
func (uc *ParseStatementUseCase) Execute(input ParseStatementInput) (*ParseStatementOutput, error) {
	if len(input.Content) > MaxStatementSize {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeStatementTooLarge,
			fmt.Sprintf("statement exceeds %d bytes", MaxStatementSize),
			domainerror.ErrStatementTooLarge,
		)
	}

	reader := csv.NewReader(bytes.NewReader(input.Content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeStatementMalformed,
			"statement could not be read as CSV",
			domainerror.ErrStatementMalformed,
		)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	out := &ParseStatementOutput{}
	line := 1 // header consumed

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			out.RowErrors = append(out.RowErrors, RowError{
				Line:    line,
				Code:    domainerror.ErrCodeRowMissingField,
				Message: "linha malformada",
			})
			continue
		}

		if len(out.Rows)+len(out.RowErrors) >= MaxStatementRows {
			return nil, domainerror.NewImportError(
				domainerror.ErrCodeStatementTooManyRows,
				fmt.Sprintf("statement exceeds %d rows", MaxStatementRows),
				domainerror.ErrStatementTooManyRows,
			)
		}

		row, rowErr := parseRow(line, record, columns)
		if rowErr != nil {
			out.RowErrors = append(out.RowErrors, *rowErr)
			continue
		}
		out.Rows = append(out.Rows, *row)
	}

	if len(out.Rows) == 0 && len(out.RowErrors) == 0 {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeStatementEmpty,
			"statement has no data rows",
			domainerror.ErrStatementEmpty,
		)
	}

	return out, nil
}

// columnIndexes holds the positions of the recognized columns. Category is
// optional; -1 means absent.
type columnIndexes struct {
	date        int
	description int
	amount      int
	txnType     int
	category    int
}

// mapColumns resolves the header to column positions, case-insensitively and
// accepting the Portuguese column names produced by exported spreadsheets.
func mapColumns(header []string) (columnIndexes, error) {
	columns := columnIndexes{date: -1, description: -1, amount: -1, txnType: -1, category: -1}

	for i, name := range header {
		switch normalizeHeader(name) {
		case "date", "data":
			columns.date = i
		case "description", "descricao":
			columns.description = i
		case "amount", "valor":
			columns.amount = i
		case "type", "tipo":
			columns.txnType = i
		case "category", "categoria":
			columns.category = i
		}
	}

	if columns.date < 0 || columns.description < 0 || columns.amount < 0 || columns.txnType < 0 {
		return columns, domainerror.NewImportError(
			domainerror.ErrCodeStatementMissingHdr,
			"statement requires date, description, amount and type columns",
			domainerror.ErrStatementMissingHeader,
		)
	}

	return columns, nil
}

// normalizeHeader lowercases a header cell and strips the accents and BOM
// spreadsheet exports tend to carry.
func normalizeHeader(name string) string {
	s := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
	replacer := strings.NewReplacer("ç", "c", "ã", "a", "á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")
	return replacer.Replace(s)
}

// parseRow validates one data row against the statement contract.
func parseRow(line int, record []string, columns columnIndexes) (*ParsedRow, *RowError) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	description := field(columns.description)
	if description == "" {
		return nil, &RowError{Line: line, Code: domainerror.ErrCodeRowMissingField, Message: "descrição é obrigatória"}
	}

	date, ok := parseDate(field(columns.date))
	if !ok {
		return nil, &RowError{Line: line, Code: domainerror.ErrCodeRowInvalidDate, Message: "data inválida"}
	}

	amount, ok := parseAmount(field(columns.amount))
	if !ok {
		return nil, &RowError{Line: line, Code: domainerror.ErrCodeRowInvalidAmount, Message: "valor inválido"}
	}

	txnType, ok := parseType(field(columns.txnType))
	if !ok {
		return nil, &RowError{Line: line, Code: domainerror.ErrCodeRowInvalidType, Message: "tipo inválido"}
	}

	return &ParsedRow{
		Line:         line,
		Date:         date,
		Description:  description,
		Amount:       amount,
		Type:         txnType,
		CategoryName: field(columns.category),
	}, nil
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount accepts dot or comma decimal separators. A value with both is
// read as thousands-separated ("1.234,56").
func parseAmount(value string) (decimal.Decimal, bool) {
	s := strings.ReplaceAll(value, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil || !amount.IsPositive() {
		return decimal.Decimal{}, false
	}
	return amount, true
}

func parseType(value string) (entity.TransactionType, bool) {
	switch strings.ToLower(value) {
	case "income", "receita":
		return entity.TransactionTypeIncome, true
	case "expense", "despesa":
		return entity.TransactionTypeExpense, true
	}
	return "", false
}
