package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	portsrepo "github.com/dafatir/dafatir_backend/internal/core/ports/repositories"
	portssvc "github.com/dafatir/dafatir_backend/internal/core/ports/services"
	"github.com/dafatir/dafatir_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// currencyService provides business logic for the currency table.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepository
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepository) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency adds a currency, enforcing the single-base invariant and the
// direction rules the conversion function depends on.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	direction := domain.ConversionDirection(req.Direction)

	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.IsBase && direction != domain.ConvertNone {
		return nil, fmt.Errorf("%w: base currency must use direction NONE", apperrors.ErrValidation)
	}
	if !req.IsBase && direction == domain.ConvertNone {
		return nil, fmt.Errorf("%w: direction NONE is only valid for the base currency", apperrors.ErrValidation)
	}
	if req.IsBase && !req.Rate.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: base currency rate is definitionally 1", apperrors.ErrValidation)
	}

	existing, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check currency %s: %w", req.CurrencyCode, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, req.CurrencyCode)
	}

	if req.IsBase {
		all, err := s.currencyRepo.ListCurrencies(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list currencies: %w", err)
		}
		for _, c := range all {
			if c.IsBase {
				return nil, fmt.Errorf("%w: %s is already the base currency", apperrors.ErrDuplicate, c.CurrencyCode)
			}
		}
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Rate:         req.Rate,
		IsBase:       req.IsBase,
		Direction:    direction,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: req.UserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency")
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its 3-letter code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currencyCode = strings.ToUpper(currencyCode)
	if len(currencyCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

// ListCurrencies retrieves all currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}
