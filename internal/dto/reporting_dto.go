package dto

import (
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                   `json:"asOf"`
	Rows   []domain.TrialBalanceRow `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain trial balance report to a DTO response
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: report.AsOf.Format("2006-01-02"),
		Rows: report.Rows,
	}
	response.Totals.Debit = report.TotalDebit
	response.Totals.Credit = report.TotalCredit
	return response
}

// AccountBookResponse represents a ledger/cash-book/bank-book report response
type AccountBookResponse struct {
	AccountID    string           `json:"accountID"`
	AccountName  string           `json:"accountName"`
	CurrencyCode string           `json:"currencyCode"`
	FromDate     string           `json:"fromDate"`
	ToDate       string           `json:"toDate"`
	Rows         []domain.BookRow `json:"rows"`
	Totals       struct {
		Debit   decimal.Decimal `json:"debit"`
		Credit  decimal.Decimal `json:"credit"`
		Opening decimal.Decimal `json:"opening"`
		Closing decimal.Decimal `json:"closing"`
	} `json:"totals"`
}

// ToAccountBookResponse converts a domain account book report to a DTO response
func ToAccountBookResponse(report *domain.AccountBookReport) AccountBookResponse {
	response := AccountBookResponse{
		AccountID:    report.AccountID,
		AccountName:  report.AccountName,
		CurrencyCode: report.CurrencyCode,
		FromDate:     report.From.Format("2006-01-02"),
		ToDate:       report.To.Format("2006-01-02"),
		Rows:         report.Rows,
	}
	response.Totals.Debit = report.PeriodDebit
	response.Totals.Credit = report.PeriodCredit
	response.Totals.Opening = report.Opening
	response.Totals.Closing = report.Closing
	return response
}

// CommissionResponse represents the commission report response
type CommissionResponse struct {
	FromDate        string                 `json:"fromDate"`
	ToDate          string                 `json:"toDate"`
	Rows            []domain.CommissionRow `json:"rows"`
	TotalCommission decimal.Decimal        `json:"totalCommission"`
}

// ToCommissionResponse converts a domain commission report to a DTO response
func ToCommissionResponse(report *domain.CommissionReport) CommissionResponse {
	return CommissionResponse{
		FromDate:        report.From.Format("2006-01-02"),
		ToDate:          report.To.Format("2006-01-02"),
		Rows:            report.Rows,
		TotalCommission: report.TotalCommission,
	}
}

// ZakatResponse represents the zakat base report response
type ZakatResponse struct {
	AsOf    string                   `json:"asOf"`
	Rows    []domain.ZakatAccountRow `json:"rows"`
	Base    decimal.Decimal          `json:"base"`
	Payable decimal.Decimal          `json:"payable"`
}

// ToZakatResponse converts a domain zakat report to a DTO response
func ToZakatResponse(report *domain.ZakatReport) ZakatResponse {
	return ZakatResponse{
		AsOf:    report.AsOf.Format("2006-01-02"),
		Rows:    report.Rows,
		Base:    report.Base,
		Payable: report.Payable,
	}
}
