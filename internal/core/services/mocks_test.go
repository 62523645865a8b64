package services_test

import (
	"context"
	"time"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
	portsrepo "github.com/dafatir/dafatir_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// MockCurrencyRepository is a mock type for the CurrencyRepository interface
type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepository = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, accountID, updatedByUserID, updatedAt)
	return args.Error(0)
}

// MockPostingRepository is a mock type for the PostingRepositoryWithTx interface
type MockPostingRepository struct {
	mock.Mock
}

var _ portsrepo.PostingRepositoryWithTx = (*MockPostingRepository)(nil)

func (m *MockPostingRepository) SavePostingGroup(ctx context.Context, group domain.PostingGroup, lines []domain.Line) error {
	args := m.Called(ctx, group, lines)
	return args.Error(0)
}

func (m *MockPostingRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.PostingGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingGroup), args.Error(1)
}

func (m *MockPostingRepository) FindLinesByGroupID(ctx context.Context, groupID string) ([]domain.Line, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Line), args.Error(1)
}

func (m *MockPostingRepository) UpdateGroupStatus(ctx context.Context, groupID string, status domain.GroupStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, groupID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockPostingRepository) ListGroups(ctx context.Context, limit int, nextToken *string) ([]domain.PostingGroup, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var groups []domain.PostingGroup
	if args.Get(0) != nil {
		groups = args.Get(0).([]domain.PostingGroup)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return groups, token, args.Error(2)
}

func (m *MockPostingRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPostingRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPostingRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockSnapshotRepository is a mock type for the SnapshotRepository interface
type MockSnapshotRepository struct {
	mock.Mock
}

var _ portsrepo.SnapshotRepository = (*MockSnapshotRepository)(nil)

func (m *MockSnapshotRepository) FetchSnapshot(ctx context.Context, filter portsrepo.SnapshotFilter) (*portsrepo.LedgerSnapshot, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.LedgerSnapshot), args.Error(1)
}
