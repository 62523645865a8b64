package repositories

import (
	"context"
	"time"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
)

// AccountRepository defines persistence operations for ledger accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID retrieves an account by its ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves a batch of accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, accountID string, updatedByUserID string, updatedAt time.Time) error
}
