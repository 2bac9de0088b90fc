// Package insights contains the monthly insights evaluation engine.
package insights

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// The formula evaluator accepts exactly two shapes:
//
//	<num> <op> <num>
//	<num> <op> <num> (AND|OR) <num> <op> <num>
//
// after variable substitution, with <op> one of > < >= <= == = !=.
// Anything else never triggers and is reported as unrecognized rather than
// as an error. The evaluator is a closed lexer/parser over numbers and the
// six comparison operators; it never hands user text to a general-purpose
// expression interpreter.

// categoryAccessorPattern matches the single supported indexed accessor,
// category_amount['Category Name'].
var categoryAccessorPattern = regexp.MustCompile(`category_amount\['([^']*)'\]`)

// formulaVariables lists the supported variable names. Longer names first so
// substitution never clips a longer identifier with a shorter one.
var formulaVariables = []string{
	"transaction_count",
	"total_expenses",
	"total_income",
	"balance",
}

// formulaComparison is one evaluated comparison of the restricted grammar.
type formulaComparison struct {
	left  decimal.Decimal
	op    entity.ConditionOperator
	right decimal.Decimal
}

func (c formulaComparison) evaluate() bool {
	switch c.op {
	case entity.OperatorGreaterThan:
		return c.left.GreaterThan(c.right)
	case entity.OperatorLessThan:
		return c.left.LessThan(c.right)
	case entity.OperatorGreaterEqual:
		return c.left.GreaterThanOrEqual(c.right)
	case entity.OperatorLessEqual:
		return c.left.LessThanOrEqual(c.right)
	case entity.OperatorEqual:
		return c.left.Equal(c.right)
	case entity.OperatorNotEqual:
		return !c.left.Equal(c.right)
	}
	return false
}

// formulaExpr is the parsed formula: one comparison, optionally joined with a
// second by a single AND/OR.
type formulaExpr struct {
	first   formulaComparison
	logical string // "", "AND" or "OR"
	second  formulaComparison
}

func (e formulaExpr) evaluate() bool {
	switch e.logical {
	case "AND":
		return e.first.evaluate() && e.second.evaluate()
	case "OR":
		return e.first.evaluate() || e.second.evaluate()
	default:
		return e.first.evaluate()
	}
}

// evaluateFormula substitutes the snapshot's values into the formula and
// evaluates it. The second return is false when the formula does not match
// the restricted grammar; such formulas are defined as non-triggering.
func evaluateFormula(formula string, data *PeriodData) (triggered, recognized bool) {
	substituted := substituteVariables(formula, data)

	expr, ok := parseFormula(substituted)
	if !ok {
		return false, false
	}
	return expr.evaluate(), true
}

// substituteVariables replaces the category accessor and the plain variable
// names with their numeric values from the snapshot.
func substituteVariables(formula string, data *PeriodData) string {
	out := categoryAccessorPattern.ReplaceAllStringFunc(formula, func(match string) string {
		name := categoryAccessorPattern.FindStringSubmatch(match)[1]
		return data.Current.CategoryAmount(name).String()
	})

	for _, name := range formulaVariables {
		var value decimal.Decimal
		switch name {
		case "total_expenses":
			value = data.Current.TotalExpenses
		case "total_income":
			value = data.Current.TotalIncome
		case "balance":
			value = data.Current.Balance
		case "transaction_count":
			value = decimal.NewFromInt(int64(data.Current.TransactionCount))
		}
		out = strings.ReplaceAll(out, name, value.String())
	}

	return out
}

// token kinds for the formula lexer.
type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenOperator
	tokenLogical
)

type formulaToken struct {
	kind  tokenKind
	text  string
	value decimal.Decimal
	op    entity.ConditionOperator
}

// tokenize splits the substituted formula into numbers, comparison operators
// and logical joins. Any unexpected character makes the whole formula
// unrecognized.
func tokenize(input string) ([]formulaToken, bool) {
	var tokens []formulaToken
	runes := []rune(input)
	i := 0

	for i < len(runes) {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case r == '>' || r == '<' || r == '=' || r == '!':
			op, width, ok := scanOperator(runes[i:])
			if !ok {
				return nil, false
			}
			tokens = append(tokens, formulaToken{kind: tokenOperator, op: op})
			i += width

		case unicode.IsDigit(r) || r == '-' || r == '.':
			start := i
			if r == '-' {
				i++
			}
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			text := string(runes[start:i])
			value, err := decimal.NewFromString(text)
			if err != nil {
				return nil, false
			}
			tokens = append(tokens, formulaToken{kind: tokenNumber, text: text, value: value})

		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			word := strings.ToUpper(string(runes[start:i]))
			if word != "AND" && word != "OR" {
				return nil, false
			}
			tokens = append(tokens, formulaToken{kind: tokenLogical, text: word})

		default:
			return nil, false
		}
	}

	return tokens, true
}

// scanOperator reads one comparison operator from the head of the input.
func scanOperator(runes []rune) (entity.ConditionOperator, int, bool) {
	two := ""
	if len(runes) >= 2 {
		two = string(runes[:2])
	}
	switch two {
	case ">=":
		return entity.OperatorGreaterEqual, 2, true
	case "<=":
		return entity.OperatorLessEqual, 2, true
	case "==":
		return entity.OperatorEqual, 2, true
	case "!=":
		return entity.OperatorNotEqual, 2, true
	}
	switch runes[0] {
	case '>':
		return entity.OperatorGreaterThan, 1, true
	case '<':
		return entity.OperatorLessThan, 1, true
	case '=':
		// Single '=' is accepted as equality.
		return entity.OperatorEqual, 1, true
	}
	return "", 0, false
}

// parseFormula matches the token stream against the two supported shapes.
func parseFormula(input string) (formulaExpr, bool) {
	tokens, ok := tokenize(input)
	if !ok {
		return formulaExpr{}, false
	}

	first, ok := parseComparison(tokens)
	if !ok {
		return formulaExpr{}, false
	}

	if len(tokens) == 3 {
		return formulaExpr{first: first}, true
	}

	if len(tokens) != 7 || tokens[3].kind != tokenLogical {
		return formulaExpr{}, false
	}

	second, ok := parseComparison(tokens[4:])
	if !ok {
		return formulaExpr{}, false
	}

	return formulaExpr{
		first:   first,
		logical: tokens[3].text,
		second:  second,
	}, true
}

// parseComparison reads NUM OP NUM from the head of the token stream.
func parseComparison(tokens []formulaToken) (formulaComparison, bool) {
	if len(tokens) < 3 {
		return formulaComparison{}, false
	}
	if tokens[0].kind != tokenNumber || tokens[1].kind != tokenOperator || tokens[2].kind != tokenNumber {
		return formulaComparison{}, false
	}
	return formulaComparison{
		left:  tokens[0].value,
		op:    tokens[1].op,
		right: tokens[2].value,
	}, true
}
