package services

import (
	"context"
	"time"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/dafatir/dafatir_backend/internal/core/ledger"
)

// ReportingSvcFacade defines the read-only report operations. Every report is
// a pure computation over a freshly fetched snapshot; the status filter is an
// explicit parameter because the individual report screens historically apply
// different policies.
type ReportingSvcFacade interface {
	// TrialBalance computes every active account's net position as of the end
	// of asOf.
	TrialBalance(ctx context.Context, asOf time.Time, filter ledger.StatusFilter) (*domain.TrialBalanceReport, error)

	// AccountBook computes the general ledger view of one account over a
	// date range with running balances.
	AccountBook(ctx context.Context, accountID string, from, to time.Time, filter ledger.StatusFilter, mode ledger.DisplayMode) (*domain.AccountBookReport, error)

	// CashBook is AccountBook restricted to accounts flagged IsCashBook,
	// counting posted groups only.
	CashBook(ctx context.Context, accountID string, from, to time.Time, mode ledger.DisplayMode) (*domain.AccountBookReport, error)

	// BankBook is AccountBook restricted to accounts flagged IsBank,
	// counting posted groups only.
	BankBook(ctx context.Context, accountID string, from, to time.Time, mode ledger.DisplayMode) (*domain.AccountBookReport, error)

	// Commission extracts commission legs from tagged three-line groups.
	Commission(ctx context.Context, from, to time.Time, typeTags []string, commissionAccountID string, mode ledger.DisplayMode) (*domain.CommissionReport, error)

	// Zakat computes the zakat base and payable amount as of the end of asOf.
	Zakat(ctx context.Context, asOf time.Time) (*domain.ZakatReport, error)
}
