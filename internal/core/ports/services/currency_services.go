package services

import (
	"context"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/dafatir/dafatir_backend/internal/dto"
)

// CurrencySvcFacade defines currency table administration operations.
type CurrencySvcFacade interface {
	// CreateCurrency adds a currency to the table, enforcing the single-base
	// invariant.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its 3-letter code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
