package domain

// Account represents a ledger account. Accounts are created and maintained by
// ledger administration; report computations reference them read-only.
type Account struct {
	AccountID     string `json:"accountID"`     // Primary Key (e.g., UUID)
	Code          string `json:"code"`          // User-facing account number
	Name          string `json:"name"`          // User-defined name
	CurrencyCode  string `json:"currencyCode"`  // Document currency of the account
	IsCashBook    bool   `json:"isCashBook"`    // Appears in the cash book report
	IsBank        bool   `json:"isBank"`        // Appears in the bank book report
	ZakatEligible bool   `json:"zakatEligible"` // Counted into the zakat base
	IsActive      bool   `json:"isActive"`
	Description   string `json:"description"` // Nullable user description
	AuditFields
}
