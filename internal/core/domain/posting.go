package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupStatus indicates the state of a posting group.
type GroupStatus string

const (
	Draft  GroupStatus = "DRAFT"
	Posted GroupStatus = "POSTED"
	Void   GroupStatus = "VOID"
)

// PostingGroup represents a single balanced financial event composed of at
// least two lines. The group owns its lines; they are stored and deleted
// together.
type PostingGroup struct {
	GroupID         string      `json:"groupID"`         // Primary Key (e.g., UUID)
	TransactionDate time.Time   `json:"transactionDate"` // Date the event occurred
	Status          GroupStatus `json:"status"`
	Description     string      `json:"description"` // Nullable user description
	TypeTag         string      `json:"typeTag"`     // Report filtering tag, e.g. "BANK_TRANSFER"
	AuditFields
}

// Line represents one debit-or-credit entry against one account within a
// posting group. Amounts are carried twice: in the base currency and in the
// document currency the entry was keyed in. ExchangeRate is the currency rate
// snapshotted at posting time, so historical reports stay stable against later
// rate edits.
type Line struct {
	LineID       string          `json:"lineID"`    // Primary Key (e.g., UUID)
	GroupID      string          `json:"groupID"`   // FK -> PostingGroup.groupID (Not Null)
	AccountID    string          `json:"accountID"` // FK -> Account.accountID (Not Null)
	DebitBase    decimal.Decimal `json:"debitBase"` // Non-negative; exclusive with CreditBase
	CreditBase   decimal.Decimal `json:"creditBase"`
	DebitDoc     decimal.Decimal `json:"debitDoc"` // Non-negative; exclusive with CreditDoc
	CreditDoc    decimal.Decimal `json:"creditDoc"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"` // Rate snapshot at posting time
	Seq          int             `json:"seq"`          // Insertion order within the log
	Notes        string          `json:"notes"`        // Nullable
	AuditFields
}

// DeltaBase is the line's signed base-currency effect on its account.
func (l Line) DeltaBase() decimal.Decimal {
	return l.DebitBase.Sub(l.CreditBase)
}

// DeltaDoc is the line's signed document-currency effect on its account.
func (l Line) DeltaDoc() decimal.Decimal {
	return l.DebitDoc.Sub(l.CreditDoc)
}
