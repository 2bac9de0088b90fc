// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	CategoryID string `json:"category_id" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Year       int    `json:"year" binding:"required"`
}

// UpdateBudgetRequest represents the request body for budget update.
// Only the amount is mutable; period and category changes are a delete
// followed by a create.
type UpdateBudgetRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Amount     string `json:"amount"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

// BudgetStatisticResponse represents a budget joined with its spending
// statistics in API responses.
type BudgetStatisticResponse struct {
	BudgetID       string  `json:"budget_id"`
	CategoryID     string  `json:"category_id"`
	CategoryName   string  `json:"category_name"`
	CategoryColor  string  `json:"category_color"`
	CategoryIcon   string  `json:"category_icon"`
	Amount         string  `json:"amount"`
	SpentAmount    string  `json:"spent_amount"`
	PercentageUsed float64 `json:"percentage_used"`
}

// BudgetListResponse represents the response for listing budgets with statistics.
type BudgetListResponse struct {
	Budgets []BudgetStatisticResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(budget *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:         budget.ID.String(),
		CategoryID: budget.CategoryID.String(),
		Amount:     budget.Amount.String(),
		Month:      budget.Month,
		Year:       budget.Year,
	}
}

// ToBudgetListResponse converts budget statistics to a BudgetListResponse DTO.
func ToBudgetListResponse(statistics []*entity.BudgetStatistic) BudgetListResponse {
	budgets := make([]BudgetStatisticResponse, len(statistics))
	for i, stat := range statistics {
		budgets[i] = BudgetStatisticResponse{
			BudgetID:       stat.BudgetID.String(),
			CategoryID:     stat.CategoryID.String(),
			CategoryName:   stat.CategoryName,
			CategoryColor:  stat.CategoryColor,
			CategoryIcon:   stat.CategoryIcon,
			Amount:         stat.Amount.String(),
			SpentAmount:    stat.SpentAmount.String(),
			PercentageUsed: stat.PercentageUsed,
		}
	}
	return BudgetListResponse{Budgets: budgets}
}
