package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
	"github.com/ddduartediego/dimdim-backend/internal/domain/entity"
	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
)

type stubTransactionRepo struct {
	created *entity.Transaction
}

func (s *stubTransactionRepo) Create(_ context.Context, txn *entity.Transaction) error {
	s.created = txn
	return nil
}
func (s *stubTransactionRepo) BulkCreate(context.Context, []*entity.Transaction) error { return nil }
func (s *stubTransactionRepo) FindByID(context.Context, uuid.UUID) (*entity.Transaction, error) {
	return nil, errors.New("not found")
}
func (s *stubTransactionRepo) FindByFilter(context.Context, adapter.TransactionFilter, adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return nil, nil
}
func (s *stubTransactionRepo) FindByPeriod(context.Context, uuid.UUID, time.Time, time.Time) ([]*entity.TransactionWithCategory, error) {
	return nil, nil
}
func (s *stubTransactionRepo) GetTotals(context.Context, adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	return nil, nil
}
func (s *stubTransactionRepo) Update(context.Context, *entity.Transaction) error { return nil }
func (s *stubTransactionRepo) Delete(context.Context, uuid.UUID) error           { return nil }
func (s *stubTransactionRepo) CountByCategory(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

type stubCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func (s *stubCategoryRepo) Create(context.Context, *entity.Category) error { return nil }
func (s *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if c, ok := s.categories[id]; ok {
		return c, nil
	}
	return nil, errors.New("record not found")
}
func (s *stubCategoryRepo) FindVisibleToUser(context.Context, uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}
func (s *stubCategoryRepo) FindByNameAndUser(context.Context, string, uuid.UUID) (*entity.Category, error) {
	return nil, nil
}
func (s *stubCategoryRepo) Update(context.Context, *entity.Category) error { return nil }
func (s *stubCategoryRepo) Delete(context.Context, uuid.UUID) error        { return nil }
func (s *stubCategoryRepo) ExistsByNameAndUser(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}

type stubAccountRepo struct {
	accounts map[uuid.UUID]*entity.Account
}

func (s *stubAccountRepo) Create(context.Context, *entity.Account) error { return nil }
func (s *stubAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	if a, ok := s.accounts[id]; ok {
		return a, nil
	}
	return nil, errors.New("record not found")
}
func (s *stubAccountRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.Account, error) {
	return nil, nil
}
func (s *stubAccountRepo) ExistsByNameAndUser(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}
func (s *stubAccountRepo) Update(context.Context, *entity.Account) error { return nil }
func (s *stubAccountRepo) Delete(context.Context, uuid.UUID) error       { return nil }
func (s *stubAccountRepo) CreateTransfer(context.Context, adapter.TransferInput) (*entity.AccountTransfer, error) {
	return nil, nil
}

func newCreateFixture(categories map[uuid.UUID]*entity.Category) (*CreateTransactionUseCase, *stubTransactionRepo) {
	txnRepo := &stubTransactionRepo{}
	uc := NewCreateTransactionUseCase(txnRepo, &stubCategoryRepo{categories: categories}, &stubAccountRepo{})
	return uc, txnRepo
}

func validInput(userID uuid.UUID) CreateTransactionInput {
	return CreateTransactionInput{
		UserID:      userID,
		Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Description: "Mercado",
		Amount:      decimal.NewFromInt(120),
		Type:        entity.TransactionTypeExpense,
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	userID := uuid.New()
	uc, repo := newCreateFixture(nil)

	out, err := uc.Execute(context.Background(), validInput(userID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created == nil {
		t.Fatal("expected the transaction to be persisted")
	}
	if out.Transaction.ID == uuid.Nil {
		t.Error("expected a generated transaction ID")
	}
	if out.Transaction.Category != nil {
		t.Error("uncategorized transaction must not carry category output")
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		mutate  func(*CreateTransactionInput)
		wantErr error
	}{
		{
			"description too long",
			func(in *CreateTransactionInput) { in.Description = strings.Repeat("a", MaxDescriptionLength+1) },
			domainerror.ErrDescriptionTooLong,
		},
		{
			"invalid type",
			func(in *CreateTransactionInput) { in.Type = "transfer" },
			domainerror.ErrInvalidTransactionType,
		},
		{
			"zero amount",
			func(in *CreateTransactionInput) { in.Amount = decimal.Zero },
			domainerror.ErrInvalidTransactionAmount,
		},
		{
			"negative amount",
			func(in *CreateTransactionInput) { in.Amount = decimal.NewFromInt(-10) },
			domainerror.ErrInvalidTransactionAmount,
		},
		{
			"zero date",
			func(in *CreateTransactionInput) { in.Date = time.Time{} },
			domainerror.ErrInvalidTransactionDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newCreateFixture(nil)
			input := validInput(userID)
			tt.mutate(&input)

			_, err := uc.Execute(context.Background(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want wrapped %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateTransaction_CategoryOwnership(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()

	own := entity.NewCategory("Alimentação", entity.DefaultCategoryColor, entity.DefaultCategoryIcon, userID)
	foreign := entity.NewCategory("Transporte", entity.DefaultCategoryColor, entity.DefaultCategoryIcon, otherID)
	global := &entity.Category{ID: uuid.New(), Name: "Moradia", OwnerType: entity.OwnerTypeGlobal}

	categories := map[uuid.UUID]*entity.Category{
		own.ID:     own,
		foreign.ID: foreign,
		global.ID:  global,
	}

	tests := []struct {
		name       string
		categoryID uuid.UUID
		wantErr    error
	}{
		{"own category is accepted", own.ID, nil},
		{"global category is accepted", global.ID, nil},
		{"foreign category is rejected", foreign.ID, domainerror.ErrCategoryNotOwnedByUser},
		{"unknown category is rejected", uuid.New(), domainerror.ErrCategoryNotFoundForTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newCreateFixture(categories)
			input := validInput(userID)
			id := tt.categoryID
			input.CategoryID = &id

			_, err := uc.Execute(context.Background(), input)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want wrapped %v", err, tt.wantErr)
			}
		})
	}
}
