package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ConfigurationError indicates invalid reference data, e.g. a zero-rate currency
// configured for division. Fatal for the computation that hit it; never retried
// and never defaulted away.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Detail)
}

// UnbalancedGroupError indicates a posting group whose debit and credit totals do
// not match within tolerance. Imbalance is debit total minus credit total.
type UnbalancedGroupError struct {
	GroupID   string
	Imbalance decimal.Decimal
}

func (e *UnbalancedGroupError) Error() string {
	return fmt.Sprintf("posting group %s is unbalanced by %s", e.GroupID, e.Imbalance.String())
}

// MissingReferenceError indicates a line referencing an account, currency or
// posting group absent from the snapshot it arrived with. This is a
// data-integrity defect in the upstream store; the engine surfaces it instead of
// coercing a default.
type MissingReferenceError struct {
	Kind   string // "account", "currency" or "posting group"
	ID     string
	LineID string // line that held the dangling reference, if known
}

func (e *MissingReferenceError) Error() string {
	if e.LineID != "" {
		return fmt.Sprintf("line %s references unknown %s %q", e.LineID, e.Kind, e.ID)
	}
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}
