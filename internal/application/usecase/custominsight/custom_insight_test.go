package custominsight

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

type fakeInsightRepo struct {
	byID    map[uuid.UUID]*entity.CustomInsight
	created *entity.CustomInsight
	updated *entity.CustomInsight
	deleted *uuid.UUID
}

func newFakeInsightRepo(insights ...*entity.CustomInsight) *fakeInsightRepo {
	byID := make(map[uuid.UUID]*entity.CustomInsight, len(insights))
	for _, i := range insights {
		byID[i.ID] = i
	}
	return &fakeInsightRepo{byID: byID}
}

func (f *fakeInsightRepo) Create(_ context.Context, i *entity.CustomInsight) error {
	f.created = i
	return nil
}
func (f *fakeInsightRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.CustomInsight, error) {
	if i, ok := f.byID[id]; ok {
		return i, nil
	}
	return nil, errors.New("record not found")
}
func (f *fakeInsightRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.CustomInsight, error) {
	out := make([]*entity.CustomInsight, 0, len(f.byID))
	for _, i := range f.byID {
		out = append(out, i)
	}
	return out, nil
}
func (f *fakeInsightRepo) Update(_ context.Context, i *entity.CustomInsight) error {
	f.updated = i
	return nil
}
func (f *fakeInsightRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = &id
	return nil
}

func TestCreateCustomInsight(t *testing.T) {
	userID := uuid.New()
	threshold := decimal.NewFromInt(1000)

	tests := []struct {
		name    string
		input   CreateCustomInsightInput
		wantErr error
	}{
		{
			"valid condition insight",
			CreateCustomInsightInput{
				UserID:   userID,
				Name:     "Gastos altos",
				Severity: entity.InsightSeverityWarning,
				Condition: &entity.InsightCondition{
					Field:    entity.FieldTotalExpenses,
					Operator: entity.OperatorGreaterThan,
					Value:    &threshold,
				},
			},
			nil,
		},
		{
			"valid formula insight",
			CreateCustomInsightInput{
				UserID:  userID,
				Name:    "Saldo positivo",
				Formula: "balance > 0",
			},
			nil,
		},
		{
			"neither condition nor formula",
			CreateCustomInsightInput{UserID: userID, Name: "Vazio"},
			domainerror.ErrInsightMissingRule,
		},
		{
			"both condition and formula",
			CreateCustomInsightInput{
				UserID:    userID,
				Name:      "Ambos",
				Condition: &entity.InsightCondition{Field: entity.FieldBalance, Operator: entity.OperatorGreaterThan, Value: &threshold},
				Formula:   "balance > 0",
			},
			domainerror.ErrInsightMissingRule,
		},
		{
			"unsupported field is rejected at authoring time",
			CreateCustomInsightInput{
				UserID:    userID,
				Name:      "Inválido",
				Condition: &entity.InsightCondition{Field: "net_worth", Operator: entity.OperatorGreaterThan, Value: &threshold},
			},
			domainerror.ErrUnsupportedConditionField,
		},
		{
			"word-form operator is rejected, only symbolic tokens are accepted",
			CreateCustomInsightInput{
				UserID:    userID,
				Name:      "Operador",
				Condition: &entity.InsightCondition{Field: entity.FieldTotalExpenses, Operator: "gt", Value: &threshold},
			},
			domainerror.ErrUnsupportedConditionOperator,
		},
		{
			"category field without category",
			CreateCustomInsightInput{
				UserID:    userID,
				Name:      "Categoria",
				Condition: &entity.InsightCondition{Field: entity.FieldCategoryAmount, Operator: entity.OperatorGreaterThan, Value: &threshold},
			},
			domainerror.ErrConditionCategoryRequired,
		},
		{
			"empty name",
			CreateCustomInsightInput{UserID: userID, Name: "  ", Formula: "balance > 0"},
			domainerror.ErrInsightMissingRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeInsightRepo()
			uc := NewCreateCustomInsightUseCase(repo)

			out, err := uc.Execute(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want wrapped %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !out.Insight.IsActive {
				t.Error("new insights start active")
			}
			if out.Insight.InsightType != entity.CustomInsightTypeCustom {
				t.Errorf("insight type = %s, want custom", out.Insight.InsightType)
			}
		})
	}
}

func TestCreateCustomInsight_FromTemplate(t *testing.T) {
	userID := uuid.New()
	repo := newFakeInsightRepo()
	uc := NewCreateCustomInsightUseCase(repo)

	out, err := uc.Execute(context.Background(), CreateCustomInsightInput{
		UserID:     userID,
		TemplateID: "negative-balance",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Insight.InsightType != entity.CustomInsightTypeTemplate {
		t.Errorf("insight type = %s, want template", out.Insight.InsightType)
	}
	if out.Insight.TemplateID != "negative-balance" {
		t.Errorf("template ID = %s", out.Insight.TemplateID)
	}
	if out.Insight.Condition == nil || out.Insight.Condition.Field != entity.FieldBalance {
		t.Error("expected the template's condition to be copied")
	}
	if out.Insight.Name == "" {
		t.Error("expected the template's name as default")
	}

	if _, err := uc.Execute(context.Background(), CreateCustomInsightInput{
		UserID:     userID,
		TemplateID: "does-not-exist",
	}); !errors.Is(err, domainerror.ErrInsightTemplateNotFound) {
		t.Errorf("error = %v, want wrapped ErrInsightTemplateNotFound", err)
	}
}

func TestToggleCustomInsight(t *testing.T) {
	userID := uuid.New()
	insight := entity.NewCustomInsight(userID, "Teste", "", entity.InsightSeverityInfo,
		entity.CustomInsightTypeCustom, "", nil, "balance > 0")

	repo := newFakeInsightRepo(insight)
	uc := NewToggleCustomInsightUseCase(repo)

	out, err := uc.Execute(context.Background(), ToggleCustomInsightInput{InsightID: insight.ID, UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Insight.IsActive {
		t.Error("expected the insight to be deactivated")
	}

	out, err = uc.Execute(context.Background(), ToggleCustomInsightInput{InsightID: insight.ID, UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Insight.IsActive {
		t.Error("expected the insight to be reactivated")
	}

	if _, err := uc.Execute(context.Background(), ToggleCustomInsightInput{InsightID: insight.ID, UserID: uuid.New()}); !errors.Is(err, domainerror.ErrNotAuthorizedToModifyInsight) {
		t.Errorf("error = %v, want wrapped ErrNotAuthorizedToModifyInsight", err)
	}
}

func TestDuplicateCustomInsight(t *testing.T) {
	userID := uuid.New()
	threshold := decimal.NewFromInt(1000)
	insight := entity.NewCustomInsight(userID, "Gastos altos", "desc", entity.InsightSeverityWarning,
		entity.CustomInsightTypeCustom, "",
		&entity.InsightCondition{Field: entity.FieldTotalExpenses, Operator: entity.OperatorGreaterThan, Value: &threshold},
		"")

	repo := newFakeInsightRepo(insight)
	uc := NewDuplicateCustomInsightUseCase(repo)

	out, err := uc.Execute(context.Background(), DuplicateCustomInsightInput{InsightID: insight.ID, UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	copied := out.Insight
	if copied.ID == insight.ID {
		t.Error("copy must have a new identity")
	}
	if copied.Name != "Gastos altos (cópia)" {
		t.Errorf("name = %q, want marked copy", copied.Name)
	}
	if copied.IsActive {
		t.Error("copy must start inactive")
	}
	if copied.Condition == insight.Condition {
		t.Error("condition must be deep-copied")
	}
	if copied.Condition.Field != insight.Condition.Field {
		t.Error("condition content must match the original")
	}
}

func TestTemplates(t *testing.T) {
	templates := Templates()
	if len(templates) == 0 {
		t.Fatal("expected a non-empty template catalog")
	}

	seen := make(map[string]bool, len(templates))
	for _, tpl := range templates {
		if seen[tpl.ID] {
			t.Errorf("duplicate template ID %q", tpl.ID)
		}
		seen[tpl.ID] = true

		if err := validateCondition(&tpl.Condition); err != nil {
			t.Errorf("template %q has an invalid condition: %v", tpl.ID, err)
		}
	}
}
