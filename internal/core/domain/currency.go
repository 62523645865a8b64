package domain

import "github.com/shopspring/decimal"

// ConversionDirection tells how a document-currency amount is turned into a
// base-currency amount using the currency's rate.
type ConversionDirection string

const (
	// ConvertMultiply converts by multiplying the amount with the rate.
	ConvertMultiply ConversionDirection = "MULTIPLY"
	// ConvertDivide converts by dividing the amount by the rate.
	ConvertDivide ConversionDirection = "DIVIDE"
	// ConvertNone is valid only for the base currency itself.
	ConvertNone ConversionDirection = "NONE"
)

// Currency represents a supported currency and its conversion rule against the
// base currency. Exactly one currency in the table has IsBase set; its rate is
// definitionally 1 and its direction ConvertNone.
type Currency struct {
	CurrencyCode string              `json:"currencyCode"` // Primary Key (e.g., "AED")
	Symbol       string              `json:"symbol"`       // e.g., "د.إ"
	Name         string              `json:"name"`         // e.g., "UAE Dirham"
	Rate         decimal.Decimal     `json:"rate"`         // Exchange rate relative to the base currency
	IsBase       bool                `json:"isBase"`
	Direction    ConversionDirection `json:"direction"`
	AuditFields
}
