// Package insights contains the monthly insights evaluation engine.
package insights

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// txn builds a transaction with an optional named category for tests.
func txn(t *testing.T, txnType entity.TransactionType, amount string, categoryName string) *entity.TransactionWithCategory {
	t.Helper()

	value, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", amount, err)
	}

	userID := uuid.New()
	var category *entity.Category
	var categoryID *uuid.UUID
	if categoryName != "" {
		category = entity.NewCategory(categoryName, entity.DefaultCategoryColor, entity.DefaultCategoryIcon, userID)
		categoryID = &category.ID
	}

	return &entity.TransactionWithCategory{
		Transaction: entity.NewTransaction(
			userID,
			time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			"test transaction",
			value,
			txnType,
			categoryID,
			nil,
		),
		Category: category,
	}
}

func TestAggregate_EmptyList(t *testing.T) {
	agg := Aggregate(nil)

	if !agg.TotalIncome.IsZero() {
		t.Errorf("expected zero income, got %s", agg.TotalIncome)
	}
	if !agg.TotalExpenses.IsZero() {
		t.Errorf("expected zero expenses, got %s", agg.TotalExpenses)
	}
	if !agg.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", agg.Balance)
	}
	if agg.TransactionCount != 0 {
		t.Errorf("expected zero count, got %d", agg.TransactionCount)
	}
	if len(agg.Categories) != 0 {
		t.Errorf("expected no categories, got %d", len(agg.Categories))
	}
}

func TestAggregate_BalanceIdentity(t *testing.T) {
	transactions := []*entity.TransactionWithCategory{
		txn(t, entity.TransactionTypeIncome, "3000", ""),
		txn(t, entity.TransactionTypeExpense, "1500", "Food"),
		txn(t, entity.TransactionTypeExpense, "1000", "Transport"),
		txn(t, entity.TransactionTypeIncome, "250.50", ""),
	}

	agg := Aggregate(transactions)

	if !agg.TotalIncome.Sub(agg.TotalExpenses).Equal(agg.Balance) {
		t.Errorf("balance identity violated: income %s - expenses %s != balance %s",
			agg.TotalIncome, agg.TotalExpenses, agg.Balance)
	}
	if agg.TransactionCount != 4 {
		t.Errorf("expected count 4, got %d", agg.TransactionCount)
	}

	// Category amounts must sum back to total expenses.
	sum := decimal.Zero
	for _, c := range agg.Categories {
		sum = sum.Add(c.Amount)
	}
	if !sum.Equal(agg.TotalExpenses) {
		t.Errorf("category sum %s != total expenses %s", sum, agg.TotalExpenses)
	}
}

func TestAggregate_PercentageInvariant(t *testing.T) {
	transactions := []*entity.TransactionWithCategory{
		txn(t, entity.TransactionTypeExpense, "333.33", "A"),
		txn(t, entity.TransactionTypeExpense, "333.33", "B"),
		txn(t, entity.TransactionTypeExpense, "333.34", "C"),
	}

	agg := Aggregate(transactions)

	total := 0.0
	for _, c := range agg.Categories {
		total += c.PercentageOfTotal
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("percentages sum to %f, want ~100", total)
	}
}

func TestAggregate_ZeroExpensesMeansZeroPercentages(t *testing.T) {
	transactions := []*entity.TransactionWithCategory{
		txn(t, entity.TransactionTypeIncome, "1000", ""),
	}

	agg := Aggregate(transactions)

	for _, c := range agg.Categories {
		if c.PercentageOfTotal != 0 {
			t.Errorf("expected zero percentage when expenses are zero, got %f", c.PercentageOfTotal)
		}
	}
}

func TestAggregate_UncategorizedBucket(t *testing.T) {
	transactions := []*entity.TransactionWithCategory{
		txn(t, entity.TransactionTypeExpense, "100", ""),
		txn(t, entity.TransactionTypeExpense, "50", ""),
		txn(t, entity.TransactionTypeExpense, "25", "Food"),
	}

	agg := Aggregate(transactions)

	if len(agg.Categories) != 2 {
		t.Fatalf("expected 2 category buckets, got %d", len(agg.Categories))
	}

	// Sorted descending by amount: uncategorized (150) first.
	top := agg.Categories[0]
	if top.Name != UncategorizedName {
		t.Errorf("expected %q as top bucket, got %q", UncategorizedName, top.Name)
	}
	if !top.Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected uncategorized amount 150, got %s", top.Amount)
	}
	if top.TransactionCount != 2 {
		t.Errorf("expected 2 uncategorized transactions, got %d", top.TransactionCount)
	}
}

func TestAggregate_SortedDescendingByAmount(t *testing.T) {
	transactions := []*entity.TransactionWithCategory{
		txn(t, entity.TransactionTypeExpense, "10", "Small"),
		txn(t, entity.TransactionTypeExpense, "500", "Big"),
		txn(t, entity.TransactionTypeExpense, "100", "Medium"),
	}

	agg := Aggregate(transactions)

	for i := 1; i < len(agg.Categories); i++ {
		if agg.Categories[i].Amount.GreaterThan(agg.Categories[i-1].Amount) {
			t.Errorf("categories not sorted descending at index %d", i)
		}
	}
	if top := agg.TopCategory(); top == nil || top.Name != "Big" {
		t.Errorf("expected Big as top category, got %+v", top)
	}
}

func TestCategoryAmount_AbsentCategory(t *testing.T) {
	agg := Aggregate([]*entity.TransactionWithCategory{
		txn(t, entity.TransactionTypeExpense, "100", "Food"),
	})

	if !agg.CategoryAmount("Travel").IsZero() {
		t.Error("expected zero amount for absent category")
	}
	if !agg.CategoryAmount("Food").Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected 100 for Food, got %s", agg.CategoryAmount("Food"))
	}
}
