package repositories

import (
	"context"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
)

// CurrencyRepository defines persistence operations for the currency table.
type CurrencyRepository interface {
	// SaveCurrency inserts or updates a currency definition.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// FindCurrencyByCode retrieves a currency by its 3-letter code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies ordered by code.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
