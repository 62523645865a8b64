package ledger

import (
	"fmt"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ToBase converts a document-currency amount into the base currency using the
// currency's configured rate and direction. It is pure and exact: fixed-point
// decimal arithmetic, no rounding beyond the division's significant digits.
func ToBase(amount decimal.Decimal, currency domain.Currency) (decimal.Decimal, error) {
	return toBaseWithRate(amount, currency, currency.Rate)
}

// ToBaseAtRate converts using a rate snapshotted at posting time instead of
// the currency table's current rate. Historical reports depend on this to stay
// stable against later rate edits.
func ToBaseAtRate(amount decimal.Decimal, currency domain.Currency, rate decimal.Decimal) (decimal.Decimal, error) {
	return toBaseWithRate(amount, currency, rate)
}

func toBaseWithRate(amount decimal.Decimal, currency domain.Currency, rate decimal.Decimal) (decimal.Decimal, error) {
	if currency.IsBase {
		return amount, nil
	}
	switch currency.Direction {
	case domain.ConvertMultiply:
		return amount.Mul(rate), nil
	case domain.ConvertDivide:
		if rate.IsZero() {
			return decimal.Decimal{}, &apperrors.ConfigurationError{
				Detail: fmt.Sprintf("currency %s has zero rate under DIVIDE conversion", currency.CurrencyCode),
			}
		}
		return amount.DivRound(rate, conversionScale), nil
	default:
		return decimal.Decimal{}, &apperrors.ConfigurationError{
			Detail: fmt.Sprintf("currency %s has conversion direction %q but is not the base currency", currency.CurrencyCode, currency.Direction),
		}
	}
}

// conversionScale bounds the significant digits kept after a dividing
// conversion. Four minor-unit digits matches the stored amount scale and keeps
// re-aggregated totals inside the 0.01 balance tolerance.
const conversionScale = 4
