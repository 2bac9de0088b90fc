package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

// fakeTransactionRepository serves FindByPeriod from a keyed map; the
// remaining methods are not exercised by the evaluation flow.
type fakeTransactionRepository struct {
	byPeriod map[string][]*entity.TransactionWithCategory
	err      error
}

func periodKey(start time.Time) string {
	return start.Format("2006-01")
}

func (f *fakeTransactionRepository) FindByPeriod(_ context.Context, _ uuid.UUID, startDate, _ time.Time) ([]*entity.TransactionWithCategory, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byPeriod[periodKey(startDate)], nil
}

func (f *fakeTransactionRepository) Create(context.Context, *entity.Transaction) error { return nil }
func (f *fakeTransactionRepository) BulkCreate(context.Context, []*entity.Transaction) error {
	return nil
}
func (f *fakeTransactionRepository) FindByID(context.Context, uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}
func (f *fakeTransactionRepository) FindByFilter(context.Context, adapter.TransactionFilter, adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return nil, nil
}
func (f *fakeTransactionRepository) GetTotals(context.Context, adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	return nil, nil
}
func (f *fakeTransactionRepository) Update(context.Context, *entity.Transaction) error { return nil }
func (f *fakeTransactionRepository) Delete(context.Context, uuid.UUID) error           { return nil }
func (f *fakeTransactionRepository) CountByCategory(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeBudgetRepository struct {
	statistics []*entity.BudgetStatistic
	err        error
}

func (f *fakeBudgetRepository) GetStatistics(context.Context, uuid.UUID, int, int) ([]*entity.BudgetStatistic, error) {
	return f.statistics, f.err
}

func (f *fakeBudgetRepository) Create(context.Context, *entity.Budget) error { return nil }
func (f *fakeBudgetRepository) FindByID(context.Context, uuid.UUID) (*entity.Budget, error) {
	return nil, nil
}
func (f *fakeBudgetRepository) FindByUserAndPeriod(context.Context, uuid.UUID, int, int) ([]*entity.Budget, error) {
	return nil, nil
}
func (f *fakeBudgetRepository) ExistsForCategoryAndPeriod(context.Context, uuid.UUID, uuid.UUID, int, int) (bool, error) {
	return false, nil
}
func (f *fakeBudgetRepository) Update(context.Context, *entity.Budget) error { return nil }
func (f *fakeBudgetRepository) Delete(context.Context, uuid.UUID) error      { return nil }
func (f *fakeBudgetRepository) CountByCategory(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeCustomInsightRepository struct {
	insights []*entity.CustomInsight
	err      error
}

func (f *fakeCustomInsightRepository) FindByUser(context.Context, uuid.UUID) ([]*entity.CustomInsight, error) {
	return f.insights, f.err
}

func (f *fakeCustomInsightRepository) Create(context.Context, *entity.CustomInsight) error {
	return nil
}
func (f *fakeCustomInsightRepository) FindByID(context.Context, uuid.UUID) (*entity.CustomInsight, error) {
	return nil, nil
}
func (f *fakeCustomInsightRepository) Update(context.Context, *entity.CustomInsight) error {
	return nil
}
func (f *fakeCustomInsightRepository) Delete(context.Context, uuid.UUID) error { return nil }

// evaluationFixture wires the use case over a June 2025 scenario: income
// 3000, expenses 2500 (Food 1500, Transport 1000) against May expenses 2000.
func evaluationFixture(customInsights []*entity.CustomInsight) *EvaluateMonthUseCase {
	current := []*entity.TransactionWithCategory{
		txnOn(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), entity.TransactionTypeIncome, "3000", ""),
		txnOn(time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), entity.TransactionTypeExpense, "1500", "Food"),
		txnOn(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), entity.TransactionTypeExpense, "1000", "Transport"),
	}
	previous := []*entity.TransactionWithCategory{
		txnOn(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), entity.TransactionTypeIncome, "3000", ""),
		txnOn(time.Date(2025, 5, 7, 0, 0, 0, 0, time.UTC), entity.TransactionTypeExpense, "2000", "Food"),
	}

	return NewEvaluateMonthUseCase(
		&fakeTransactionRepository{byPeriod: map[string][]*entity.TransactionWithCategory{
			"2025-06": current,
			"2025-05": previous,
		}},
		&fakeBudgetRepository{},
		&fakeCustomInsightRepository{insights: customInsights},
	)
}

func txnOn(date time.Time, txnType entity.TransactionType, amount, categoryName string) *entity.TransactionWithCategory {
	userID := uuid.New()
	var category *entity.Category
	var categoryID *uuid.UUID
	if categoryName != "" {
		category = entity.NewCategory(categoryName, entity.DefaultCategoryColor, entity.DefaultCategoryIcon, userID)
		categoryID = &category.ID
	}
	return &entity.TransactionWithCategory{
		Transaction: entity.NewTransaction(userID, date, "fixture", decimal.RequireFromString(amount), txnType, categoryID, nil),
		Category:    category,
	}
}

func TestEvaluateMonth_AutomaticInsights(t *testing.T) {
	uc := evaluationFixture(nil)

	out, err := uc.Execute(context.Background(), EvaluateMonthInput{UserID: uuid.New(), Month: 6, Year: 2025})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expense := findInsight(out.Automatic, InsightTypeExpenseComparison)
	if expense == nil {
		t.Fatal("expected an expense comparison insight")
	}
	if expense.Severity != entity.InsightSeverityWarning {
		t.Errorf("expense comparison severity = %s, want warning", expense.Severity)
	}
	if pct, ok := expense.Data["change_percentage"].(float64); !ok || pct != 25 {
		t.Errorf("change_percentage = %v, want 25", expense.Data["change_percentage"])
	}

	top := findInsight(out.Automatic, InsightTypeTopCategory)
	if top == nil {
		t.Fatal("expected a top category insight")
	}
	if top.Data["category_name"] != "Food" {
		t.Errorf("top category = %v, want Food", top.Data["category_name"])
	}
	if !top.Actionable {
		t.Error("Food holds 60% of expenses, insight must be actionable")
	}

	savings := findInsight(out.Automatic, InsightTypeSavings)
	if savings == nil {
		t.Fatal("expected a savings insight")
	}
	if savings.Severity != entity.InsightSeveritySuccess {
		t.Errorf("savings severity = %s, want success", savings.Severity)
	}
	if savings.Data["balance"] != "500" {
		t.Errorf("savings balance = %v, want 500", savings.Data["balance"])
	}

	if findInsight(out.Automatic, InsightTypeBudgetThreshold) != nil {
		t.Error("no budgets given, budget rule should not have fired")
	}

	if len(out.CategoryBreakdown) != 2 {
		t.Fatalf("expected 2 breakdown items, got %d", len(out.CategoryBreakdown))
	}
	if out.CategoryBreakdown[0].Name != "Food" || out.CategoryBreakdown[0].Value != "1500" {
		t.Errorf("breakdown[0] = %+v, want Food/1500", out.CategoryBreakdown[0])
	}
}

func TestEvaluateMonth_CustomInsights(t *testing.T) {
	userID := uuid.New()
	threshold := decimal.NewFromInt(2000)

	triggering := entity.NewCustomInsight(userID, "Gastos altos", "Gastos acima do planejado",
		entity.InsightSeverityWarning, entity.CustomInsightTypeCustom, "",
		&entity.InsightCondition{Field: entity.FieldTotalExpenses, Operator: entity.OperatorGreaterThan, Value: &threshold},
		"")
	inactive := entity.NewCustomInsight(userID, "Desativado", "",
		entity.InsightSeverityInfo, entity.CustomInsightTypeCustom, "",
		&entity.InsightCondition{Field: entity.FieldTotalExpenses, Operator: entity.OperatorGreaterThan, Value: &threshold},
		"")
	inactive.IsActive = false
	malformed := entity.NewCustomInsight(userID, "Quebrado", "",
		entity.InsightSeverityError, entity.CustomInsightTypeCustom, "",
		&entity.InsightCondition{Field: "net_worth", Operator: entity.OperatorGreaterThan, Value: &threshold},
		"")
	formula := entity.NewCustomInsight(userID, "Saldo positivo", "",
		entity.InsightSeveritySuccess, entity.CustomInsightTypeCustom, "",
		nil, "balance > 0")

	uc := evaluationFixture([]*entity.CustomInsight{triggering, inactive, malformed, formula})

	out, err := uc.Execute(context.Background(), EvaluateMonthInput{UserID: userID, Month: 6, Year: 2025})
	if err != nil {
		t.Fatalf("one malformed insight must not abort the evaluation: %v", err)
	}

	if len(out.Custom) != 2 {
		t.Fatalf("expected 2 custom insights, got %d: %+v", len(out.Custom), out.Custom)
	}

	first := out.Custom[0]
	if first.Title != "Gastos altos" {
		t.Errorf("title = %s, want Gastos altos", first.Title)
	}
	if first.Description != "Gastos acima do planejado" {
		t.Errorf("description = %s, want the insight's own description", first.Description)
	}
	if !first.Actionable {
		t.Error("warning severity custom insight must be actionable")
	}
	if first.Source != entity.InsightSourceCustom {
		t.Errorf("source = %s, want custom", first.Source)
	}
	if first.CustomInsightID == nil || *first.CustomInsightID != triggering.ID {
		t.Error("insight must reference its originating custom insight")
	}

	second := out.Custom[1]
	if second.Title != "Saldo positivo" {
		t.Errorf("title = %s, want Saldo positivo", second.Title)
	}
	if second.Actionable {
		t.Error("success severity custom insight must not be actionable")
	}
}

func TestEvaluateMonth_InputValidation(t *testing.T) {
	uc := evaluationFixture(nil)

	tests := []struct {
		name  string
		month int
		year  int
	}{
		{"month zero", 0, 2025},
		{"month thirteen", 13, 2025},
		{"year before epoch", 6, 1969},
		{"year too far", 6, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), EvaluateMonthInput{UserID: uuid.New(), Month: tt.month, Year: tt.year})
			if !errors.Is(err, domainerror.ErrInvalidEvaluationPeriod) {
				t.Errorf("error = %v, want wrapped ErrInvalidEvaluationPeriod", err)
			}
		})
	}
}

func TestEvaluateMonth_FetchErrorsAbort(t *testing.T) {
	repoErr := errors.New("connection refused")

	uc := NewEvaluateMonthUseCase(
		&fakeTransactionRepository{err: repoErr},
		&fakeBudgetRepository{},
		&fakeCustomInsightRepository{},
	)

	_, err := uc.Execute(context.Background(), EvaluateMonthInput{UserID: uuid.New(), Month: 6, Year: 2025})
	if !errors.Is(err, repoErr) {
		t.Errorf("error = %v, want wrapped repository error", err)
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := monthBounds(MonthReference{Month: 2, Year: 2024})
	if !start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v, want leap day", end)
	}
}
