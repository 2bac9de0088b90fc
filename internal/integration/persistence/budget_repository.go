// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
	"github.com/ddduartediego/dimdim-backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget in the database.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	result := r.db.WithContext(ctx).Create(budgetModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a budget by its ID.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByUserAndPeriod retrieves all budgets for a user in a month/year.
func (r *budgetRepository) FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, month, year int) ([]*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i, bm := range budgetModels {
		budgets[i] = bm.ToEntity()
	}
	return budgets, nil
}

// ExistsForCategoryAndPeriod checks the (user, category, month, year)
// uniqueness constraint before creation.
func (r *budgetRepository) ExistsForCategoryAndPeriod(ctx context.Context, userID, categoryID uuid.UUID, month, year int) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.BudgetModel{}).
		Where("user_id = ? AND category_id = ? AND month = ? AND year = ?", userID, categoryID, month, year).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// GetStatistics returns the budgets of a period joined with the amount
// spent per category. The spent amount is derived from non-deleted expense
// transactions at read time; nothing is cached.
func (r *budgetRepository) GetStatistics(ctx context.Context, userID uuid.UUID, month, year int) ([]*entity.BudgetStatistic, error) {
	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)

	var rows []struct {
		BudgetID      uuid.UUID
		CategoryID    uuid.UUID
		CategoryName  string
		CategoryColor string
		CategoryIcon  string
		Amount        decimal.Decimal
		SpentAmount   decimal.Decimal
	}

	result := r.db.WithContext(ctx).
		Table("budgets").
		Select(`budgets.id as budget_id,
			budgets.category_id as category_id,
			categories.name as category_name,
			categories.color as category_color,
			categories.icon as category_icon,
			budgets.amount as amount,
			COALESCE(SUM(transactions.amount), 0) as spent_amount`).
		Joins("JOIN categories ON categories.id = budgets.category_id").
		Joins(`LEFT JOIN transactions ON transactions.category_id = budgets.category_id
			AND transactions.user_id = budgets.user_id
			AND transactions.type = ?
			AND transactions.date >= ? AND transactions.date <= ?
			AND transactions.deleted_at IS NULL`,
			string(entity.TransactionTypeExpense), startDate, endDate).
		Where("budgets.user_id = ? AND budgets.month = ? AND budgets.year = ?", userID, month, year).
		Group("budgets.id, budgets.category_id, categories.name, categories.color, categories.icon, budgets.amount").
		Order("categories.name ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	statistics := make([]*entity.BudgetStatistic, len(rows))
	for i, row := range rows {
		percentage := 0.0
		if row.Amount.IsPositive() {
			percentage, _ = row.SpentAmount.Div(row.Amount).Mul(decimal.NewFromInt(100)).Float64()
		}

		statistics[i] = &entity.BudgetStatistic{
			BudgetID:       row.BudgetID,
			CategoryID:     row.CategoryID,
			CategoryName:   row.CategoryName,
			CategoryColor:  row.CategoryColor,
			CategoryIcon:   row.CategoryIcon,
			Amount:         row.Amount,
			SpentAmount:    row.SpentAmount,
			PercentageUsed: percentage,
		}
	}
	return statistics, nil
}

// Update updates an existing budget in the database.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	result := r.db.WithContext(ctx).Save(budgetModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a budget from the database.
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.BudgetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CountByCategory counts budgets referencing a category.
func (r *budgetRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.BudgetModel{}).
		Where("category_id = ?", categoryID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
