package services

import (
	"context"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/dafatir/dafatir_backend/internal/dto"
)

// AccountSvcFacade defines ledger account administration operations.
type AccountSvcFacade interface {
	// CreateAccount creates a new account after validating its currency.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves an account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// DeactivateAccount marks an account inactive; its history stays in reports.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}
