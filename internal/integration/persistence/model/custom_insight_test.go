package model

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

func TestInsightConditionJSON_ValueScanRoundTrip(t *testing.T) {
	threshold := decimal.RequireFromString("3000")
	condition := InsightConditionJSON{
		Field:    "total_expenses",
		Operator: ">",
		Literal:  &threshold,
		Category: "Mercado",
	}

	raw, err := condition.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	encoded, ok := raw.([]byte)
	if !ok {
		t.Fatalf("driver value = %T, want []byte", raw)
	}
	if !strings.Contains(string(encoded), `"value":"3000"`) {
		t.Errorf("encoded condition %s, want threshold under the value key", encoded)
	}

	t.Run("scans bytes", func(t *testing.T) {
		var decoded InsightConditionJSON
		if err := decoded.Scan(encoded); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decoded.Literal == nil || !decoded.Literal.Equal(threshold) {
			t.Errorf("literal = %v, want %s", decoded.Literal, threshold)
		}
	})

	t.Run("scans string", func(t *testing.T) {
		var decoded InsightConditionJSON
		if err := decoded.Scan(string(encoded)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decoded.Operator != ">" || decoded.Category != "Mercado" {
			t.Errorf("decoded = %+v", decoded)
		}
	})

	t.Run("scans nil", func(t *testing.T) {
		var decoded InsightConditionJSON
		if err := decoded.Scan(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestCustomInsightModel_ConditionRoundTrip(t *testing.T) {
	threshold := decimal.RequireFromString("250.50")
	fn := entity.FunctionPreviousMonth
	insight := entity.NewCustomInsight(
		uuid.New(),
		"Gastos acima do mês anterior",
		"",
		entity.InsightSeverityWarning,
		entity.CustomInsightTypeCustom,
		"",
		&entity.InsightCondition{
			Field:    entity.FieldTotalExpenses,
			Operator: entity.OperatorGreaterThan,
			Value:    &threshold,
			Function: &fn,
		},
		"",
	)

	got := CustomInsightFromEntity(insight).ToEntity()

	if got.Condition == nil {
		t.Fatal("condition lost in round trip")
	}
	if got.Condition.Value == nil || !got.Condition.Value.Equal(threshold) {
		t.Errorf("value = %v, want %s", got.Condition.Value, threshold)
	}
	if got.Condition.Operator != entity.OperatorGreaterThan {
		t.Errorf("operator = %q", got.Condition.Operator)
	}
	if got.Condition.Function == nil || *got.Condition.Function != entity.FunctionPreviousMonth {
		t.Errorf("function = %v", got.Condition.Function)
	}
}
