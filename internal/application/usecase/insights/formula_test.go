package insights

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

func formulaSnapshot() *PeriodData {
	ref := MonthReference{Month: 6, Year: 2025}
	current := &PeriodAggregate{
		TotalIncome:      decimal.NewFromInt(3000),
		TotalExpenses:    decimal.NewFromInt(2500),
		Balance:          decimal.NewFromInt(500),
		TransactionCount: 12,
		Categories: []CategoryAnalytics{
			{Name: "Alimentação", Amount: decimal.NewFromInt(1500)},
			{Name: "Transport", Amount: decimal.NewFromInt(1000)},
		},
	}
	previous := &PeriodAggregate{}
	return &PeriodData{
		Reference: ref,
		Current:   current,
		Previous:  previous,
		Analytics: Compare(ref, current, previous),
	}
}

func TestEvaluateFormula(t *testing.T) {
	tests := []struct {
		name           string
		formula        string
		wantTriggered  bool
		wantRecognized bool
	}{
		{"literal comparison true", "500 > 100", true, true},
		{"literal comparison false", "100 > 500", false, true},
		{"and short-circuits to false", "500 > 100 AND 10 < 5", false, true},
		{"or with one true branch", "500 > 100 OR 10 < 5", true, true},
		{"lowercase logical join", "1 > 2 or 3 > 2", true, true},
		{"variable substitution", "total_expenses > 2000", true, true},
		{"balance against income", "balance < total_income", true, true},
		{"transaction count", "transaction_count >= 12", true, true},
		{"category accessor", "category_amount['Alimentação'] > 1000", true, true},
		{"category accessor with absent category", "category_amount['Viagens'] > 0", false, true},
		{"single equals means equality", "balance = 500", true, true},
		{"not equal", "balance != 500", false, true},
		{"decimal literals", "2500.00 <= total_expenses", true, true},
		{"negative literal", "-100 < 0", true, true},

		{"sql injection never parses", "DROP TABLE transactions", false, false},
		{"semicolon is rejected", "1 > 0; DELETE", false, false},
		{"arithmetic is rejected", "total_income - total_expenses > 0", false, false},
		{"parentheses are rejected", "(1 > 0)", false, false},
		{"unknown identifier is rejected", "net_worth > 0", false, false},
		{"dangling operator", "500 >", false, false},
		{"two logical joins", "1 > 0 AND 2 > 1 AND 3 > 2", false, false},
		{"bare word join", "1 > 0 XOR 2 > 1", false, false},
		{"empty formula", "", false, false},
		{"lone number", "42", false, false},
	}

	data := formulaSnapshot()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triggered, recognized := evaluateFormula(tt.formula, data)
			if recognized != tt.wantRecognized {
				t.Fatalf("recognized = %v, want %v", recognized, tt.wantRecognized)
			}
			if triggered != tt.wantTriggered {
				t.Errorf("triggered = %v, want %v", triggered, tt.wantTriggered)
			}
		})
	}
}

func TestSubstituteVariables(t *testing.T) {
	data := formulaSnapshot()

	tests := []struct {
		name    string
		formula string
		want    string
	}{
		{"plain variable", "total_expenses > 2000", "2500 > 2000"},
		{"longest name wins", "transaction_count > 10", "12 > 10"},
		{"category accessor", "category_amount['Transport'] > 900", "1000 > 900"},
		{"absent category becomes zero", "category_amount['Viagens'] = 0", "0 = 0"},
		{"literals untouched", "100 > 50", "100 > 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := substituteVariables(tt.formula, data); got != tt.want {
				t.Errorf("substituteVariables(%q) = %q, want %q", tt.formula, got, tt.want)
			}
		})
	}
}

func TestScanOperator(t *testing.T) {
	tests := []struct {
		input     string
		wantOp    entity.ConditionOperator
		wantWidth int
	}{
		{">=", entity.OperatorGreaterEqual, 2},
		{"<=", entity.OperatorLessEqual, 2},
		{"==", entity.OperatorEqual, 2},
		{"!=", entity.OperatorNotEqual, 2},
		{"> 1", entity.OperatorGreaterThan, 1},
		{"< 1", entity.OperatorLessThan, 1},
		{"= 1", entity.OperatorEqual, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			op, width, ok := scanOperator([]rune(tt.input))
			if !ok {
				t.Fatal("expected operator")
			}
			if op != tt.wantOp || width != tt.wantWidth {
				t.Errorf("got (%s, %d), want (%s, %d)", op, width, tt.wantOp, tt.wantWidth)
			}
		})
	}

	if _, _, ok := scanOperator([]rune("!x")); ok {
		t.Error("lone '!' must not scan as an operator")
	}
}
