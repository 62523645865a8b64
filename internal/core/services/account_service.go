package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	portsrepo "github.com/dafatir/dafatir_backend/internal/core/ports/repositories"
	portssvc "github.com/dafatir/dafatir_backend/internal/core/ports/services"
	"github.com/dafatir/dafatir_backend/internal/dto"
	"github.com/google/uuid"
)

// accountService provides business logic for ledger accounts.
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepository
	currencyRepo portsrepo.CurrencyRepository
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithCurrencyRepository wires the currency table for document-currency checks.
func WithCurrencyRepository(repo portsrepo.CurrencyRepository) AccountServiceOption {
	return func(s *accountService) {
		s.currencyRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options.
func NewAccountService(accountRepo portsrepo.AccountRepository, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: accountRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account after validating its document currency.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if s.currencyRepo != nil {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency %s not found", apperrors.ErrValidation, req.CurrencyCode)
			}
			return nil, fmt.Errorf("failed to validate currency %s: %w", req.CurrencyCode, err)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		Code:          req.Code,
		Name:          req.Name,
		CurrencyCode:  req.CurrencyCode,
		IsCashBook:    req.IsCashBook,
		IsBank:        req.IsBank,
		ZakatEligible: req.ZakatEligible,
		IsActive:      true,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: req.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves all accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account inactive. Its lines stay in the log and
// in historical reports.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrValidation, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	return nil
}
