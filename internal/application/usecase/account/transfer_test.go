package account

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

type fakeAccountRepo struct {
	byID         map[uuid.UUID]*entity.Account
	transferIn   *adapter.TransferInput
	transferErr  error
	nameExists   bool
	created      *entity.Account
	deleted      *uuid.UUID
}

func newFakeAccountRepo(accounts ...*entity.Account) *fakeAccountRepo {
	byID := make(map[uuid.UUID]*entity.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &fakeAccountRepo{byID: byID}
}

func (f *fakeAccountRepo) Create(_ context.Context, a *entity.Account) error {
	f.created = a
	return nil
}
func (f *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, errors.New("record not found")
}
func (f *fakeAccountRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.Account, error) {
	return nil, nil
}
func (f *fakeAccountRepo) ExistsByNameAndUser(context.Context, string, uuid.UUID) (bool, error) {
	return f.nameExists, nil
}
func (f *fakeAccountRepo) Update(context.Context, *entity.Account) error { return nil }
func (f *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = &id
	return nil
}
func (f *fakeAccountRepo) CreateTransfer(_ context.Context, input adapter.TransferInput) (*entity.AccountTransfer, error) {
	if f.transferErr != nil {
		return nil, f.transferErr
	}
	f.transferIn = &input
	return &entity.AccountTransfer{
		FromTransactionID: uuid.New(),
		ToTransactionID:   uuid.New(),
	}, nil
}

func TestTransfer(t *testing.T) {
	userID := uuid.New()
	from := entity.NewAccount(userID, "Corrente", entity.AccountTypeChecking, "", "")
	to := entity.NewAccount(userID, "Poupança", entity.AccountTypeSavings, "", "")
	inactive := entity.NewAccount(userID, "Antiga", entity.AccountTypeChecking, "", "")
	inactive.IsActive = false
	foreign := entity.NewAccount(uuid.New(), "Alheia", entity.AccountTypeChecking, "", "")

	valid := TransferUseCaseInput{
		UserID:        userID,
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        decimal.NewFromInt(250),
		Date:          time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		mutate  func(*TransferUseCaseInput)
		wantErr error
	}{
		{"valid transfer", func(*TransferUseCaseInput) {}, nil},
		{
			"same account",
			func(in *TransferUseCaseInput) { in.ToAccountID = in.FromAccountID },
			domainerror.ErrSameTransferAccounts,
		},
		{
			"zero amount",
			func(in *TransferUseCaseInput) { in.Amount = decimal.Zero },
			domainerror.ErrInvalidTransferAmount,
		},
		{
			"unknown source",
			func(in *TransferUseCaseInput) { in.FromAccountID = uuid.New() },
			domainerror.ErrAccountNotFound,
		},
		{
			"foreign destination",
			func(in *TransferUseCaseInput) { in.ToAccountID = foreign.ID },
			domainerror.ErrNotAuthorizedToModifyAccount,
		},
		{
			"inactive destination",
			func(in *TransferUseCaseInput) { in.ToAccountID = inactive.ID },
			domainerror.ErrAccountInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAccountRepo(from, to, inactive, foreign)
			uc := NewTransferUseCase(repo)

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
			if out.Transfer.FromTransactionID == out.Transfer.ToTransactionID {
				t.Error("transfer legs must be distinct transactions")
			}
			if repo.transferIn.Description == "" {
				t.Error("expected a default description")
			}
		})
	}
}

func TestTransfer_RepositoryFailure(t *testing.T) {
	userID := uuid.New()
	from := entity.NewAccount(userID, "Corrente", entity.AccountTypeChecking, "", "")
	to := entity.NewAccount(userID, "Poupança", entity.AccountTypeSavings, "", "")

	repo := newFakeAccountRepo(from, to)
	repo.transferErr = errors.New("deadlock detected")
	uc := NewTransferUseCase(repo)

	_, err := uc.Execute(context.Background(), TransferUseCaseInput{
		UserID:        userID,
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        decimal.NewFromInt(10),
	})
	if !errors.Is(err, repo.transferErr) {
		t.Errorf("error = %v, want wrapped repository error", err)
	}
}

func TestCreateAccount(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		input      CreateAccountInput
		nameExists bool
		wantErr    error
	}{
		{"valid", CreateAccountInput{UserID: userID, Name: "Corrente", Type: entity.AccountTypeChecking}, false, nil},
		{"empty name", CreateAccountInput{UserID: userID, Name: "  "}, false, domainerror.ErrMissingAccountName},
		{"invalid type", CreateAccountInput{UserID: userID, Name: "Corrente", Type: "wallet"}, false, domainerror.ErrInvalidAccountType},
		{"duplicate name", CreateAccountInput{UserID: userID, Name: "Corrente", Type: entity.AccountTypeChecking}, true, domainerror.ErrAccountNameExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAccountRepo()
			repo.nameExists = tt.nameExists
			uc := NewCreateAccountUseCase(repo)

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
			if !out.Account.IsActive {
				t.Error("new accounts start active")
			}
		})
	}
}
