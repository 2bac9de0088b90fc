// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a monthly spending limit for one category.
// There is at most one budget per (user, category, month, year).
type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Month      int // 1-12
	Year       int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(userID, categoryID uuid.UUID, amount decimal.Decimal, month, year int) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Month:      month,
		Year:       year,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// BudgetStatistic is the read model of a budget joined with the amount
// already spent in the period and the percentage of the limit used.
type BudgetStatistic struct {
	BudgetID       uuid.UUID
	CategoryID     uuid.UUID
	CategoryName   string
	CategoryColor  string
	CategoryIcon   string
	Amount         decimal.Decimal
	SpentAmount    decimal.Decimal
	PercentageUsed float64
}
