package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account's net position in a trial balance
// report. Exactly one of Debit and Credit is nonzero.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport is the full trial balance with its column totals. For a
// log of balanced groups TotalDebit always equals TotalCredit.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// BookRowKind distinguishes the pseudo-rows that frame an account book from the
// posted lines inside it.
type BookRowKind string

const (
	BookRowOpening BookRowKind = "OPENING"
	BookRowLine    BookRowKind = "LINE"
	BookRowClosing BookRowKind = "CLOSING"
)

// BookRow is one row of a ledger, cash book or bank book report. Document
// currency columns are populated only when the report was built with
// DisplayBaseAndDocument.
type BookRow struct {
	Kind            BookRowKind     `json:"kind"`
	LineID          string          `json:"lineID,omitempty"`
	GroupID         string          `json:"groupID,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description,omitempty"`
	DebitBase       decimal.Decimal `json:"debitBase"`
	CreditBase      decimal.Decimal `json:"creditBase"`
	BalanceBase     decimal.Decimal `json:"balanceBase"`
	DebitDoc        decimal.Decimal `json:"debitDoc,omitempty"`
	CreditDoc       decimal.Decimal `json:"creditDoc,omitempty"`
	BalanceDoc      decimal.Decimal `json:"balanceDoc,omitempty"`
	CurrencyCode    string          `json:"currencyCode,omitempty"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate,omitempty"`
}

// AccountBookReport is a ledger/cash-book/bank-book view over one account and
// date range: an opening pseudo-row, the running lines, and a closing
// pseudo-row with period totals.
type AccountBookReport struct {
	AccountID    string          `json:"accountID"`
	AccountName  string          `json:"accountName"`
	CurrencyCode string          `json:"currencyCode"`
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Rows         []BookRow       `json:"rows"`
	PeriodDebit  decimal.Decimal `json:"periodDebit"`
	PeriodCredit decimal.Decimal `json:"periodCredit"`
	Opening      decimal.Decimal `json:"opening"`
	Closing      decimal.Decimal `json:"closing"`
}

// CommissionRow is one commission-bearing posting group broken into its three
// legs. CustomerAmount is the customer leg's gross debit, not net of
// commission.
type CommissionRow struct {
	GroupID           string          `json:"groupID"`
	TransactionDate   time.Time       `json:"transactionDate"`
	Description       string          `json:"description"`
	CustomerAccountID string          `json:"customerAccountID"`
	SupplierAccountID string          `json:"supplierAccountID,omitempty"`
	CustomerAmount    decimal.Decimal `json:"customerAmount"`
	SupplierAmount    decimal.Decimal `json:"supplierAmount"`
	Commission        decimal.Decimal `json:"commission"`
}

// CommissionReport lists commission rows for a period with the commission
// column total.
type CommissionReport struct {
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	Rows            []CommissionRow `json:"rows"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
}

// ZakatAccountRow is one zakat-eligible account's closing balance inside a
// zakat base report.
type ZakatAccountRow struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	Balance     decimal.Decimal `json:"balance"`
}

// ZakatReport is the zakat base and payable amount as of a date.
type ZakatReport struct {
	AsOf    time.Time         `json:"asOf"`
	Rows    []ZakatAccountRow `json:"rows"`
	Base    decimal.Decimal   `json:"base"`
	Payable decimal.Decimal   `json:"payable"`
}
