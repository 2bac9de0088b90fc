package budget

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

type fakeBudgetRepo struct {
	byID    map[uuid.UUID]*entity.Budget
	exists  bool
	created *entity.Budget
	updated *entity.Budget
	deleted *uuid.UUID
}

func newFakeBudgetRepo(budgets ...*entity.Budget) *fakeBudgetRepo {
	byID := make(map[uuid.UUID]*entity.Budget, len(budgets))
	for _, b := range budgets {
		byID[b.ID] = b
	}
	return &fakeBudgetRepo{byID: byID}
}

func (f *fakeBudgetRepo) Create(_ context.Context, b *entity.Budget) error {
	f.created = b
	return nil
}
func (f *fakeBudgetRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, errors.New("record not found")
}
func (f *fakeBudgetRepo) FindByUserAndPeriod(context.Context, uuid.UUID, int, int) ([]*entity.Budget, error) {
	return nil, nil
}
func (f *fakeBudgetRepo) ExistsForCategoryAndPeriod(context.Context, uuid.UUID, uuid.UUID, int, int) (bool, error) {
	return f.exists, nil
}
func (f *fakeBudgetRepo) GetStatistics(context.Context, uuid.UUID, int, int) ([]*entity.BudgetStatistic, error) {
	return nil, nil
}
func (f *fakeBudgetRepo) Update(_ context.Context, b *entity.Budget) error {
	f.updated = b
	return nil
}
func (f *fakeBudgetRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = &id
	return nil
}
func (f *fakeBudgetRepo) CountByCategory(context.Context, uuid.UUID) (int64, error) { return 0, nil }

type fixedCategoryRepo struct {
	adapter.CategoryRepository
	category *entity.Category
}

func (f *fixedCategoryRepo) FindByID(context.Context, uuid.UUID) (*entity.Category, error) {
	if f.category == nil {
		return nil, errors.New("record not found")
	}
	return f.category, nil
}

func TestCreateBudget(t *testing.T) {
	userID := uuid.New()
	category := entity.NewCategory("Alimentação", entity.DefaultCategoryColor, entity.DefaultCategoryIcon, userID)

	valid := CreateBudgetInput{
		UserID:     userID,
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(800),
		Month:      6,
		Year:       2025,
	}

	tests := []struct {
		name     string
		mutate   func(*CreateBudgetInput)
		category *entity.Category
		exists   bool
		wantErr  error
	}{
		{"valid", func(*CreateBudgetInput) {}, category, false, nil},
		{
			"zero amount",
			func(in *CreateBudgetInput) { in.Amount = decimal.Zero },
			category, false, domainerror.ErrInvalidBudgetAmount,
		},
		{
			"month out of range",
			func(in *CreateBudgetInput) { in.Month = 13 },
			category, false, domainerror.ErrInvalidBudgetPeriod,
		},
		{
			"unknown category",
			func(*CreateBudgetInput) {},
			nil, false, domainerror.ErrCategoryNotFound,
		},
		{
			"duplicate period",
			func(*CreateBudgetInput) {},
			category, true, domainerror.ErrBudgetAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBudgetRepo()
			repo.exists = tt.exists
			uc := NewCreateBudgetUseCase(repo, &fixedCategoryRepo{category: tt.category})

			input := valid
			tt.mutate(&input)

			out, err := uc.Execute(context.Background(), input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want wrapped %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.created == nil || out.Budget.CategoryID != category.ID {
				t.Error("expected the budget to be persisted with its category")
			}
		})
	}
}

func TestUpdateBudget_Ownership(t *testing.T) {
	userID := uuid.New()
	budget := entity.NewBudget(userID, uuid.New(), decimal.NewFromInt(500), 6, 2025)
	repo := newFakeBudgetRepo(budget)
	uc := NewUpdateBudgetUseCase(repo)

	if _, err := uc.Execute(context.Background(), UpdateBudgetInput{
		BudgetID: budget.ID,
		UserID:   uuid.New(),
		Amount:   decimal.NewFromInt(900),
	}); !errors.Is(err, domainerror.ErrNotAuthorizedToModifyBudget) {
		t.Errorf("error = %v, want wrapped ErrNotAuthorizedToModifyBudget", err)
	}

	out, err := uc.Execute(context.Background(), UpdateBudgetInput{
		BudgetID: budget.ID,
		UserID:   userID,
		Amount:   decimal.NewFromInt(900),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Budget.Amount.Equal(decimal.NewFromInt(900)) {
		t.Errorf("amount = %s, want 900", out.Budget.Amount)
	}
}

func TestDeleteBudget(t *testing.T) {
	userID := uuid.New()
	budget := entity.NewBudget(userID, uuid.New(), decimal.NewFromInt(500), 6, 2025)
	repo := newFakeBudgetRepo(budget)
	uc := NewDeleteBudgetUseCase(repo)

	if err := uc.Execute(context.Background(), DeleteBudgetInput{BudgetID: uuid.New(), UserID: userID}); !errors.Is(err, domainerror.ErrBudgetNotFound) {
		t.Errorf("error = %v, want wrapped ErrBudgetNotFound", err)
	}

	if err := uc.Execute(context.Background(), DeleteBudgetInput{BudgetID: budget.ID, UserID: userID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deleted == nil || *repo.deleted != budget.ID {
		t.Error("expected the budget to be deleted")
	}
}
