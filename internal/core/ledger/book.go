package ledger

import (
	"time"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DisplayMode toggles whether document-currency columns appear on book rows.
type DisplayMode int

const (
	// DisplayBaseOnly shows base-currency amounts and balances.
	DisplayBaseOnly DisplayMode = iota
	// DisplayBaseAndDocument additionally shows the document-currency amount,
	// currency code and snapshotted rate per line.
	DisplayBaseAndDocument
)

// AccountBook builds the general ledger view of a single account over a date
// range: an opening pseudo-row, one row per counted line carrying the running
// balance, and a closing pseudo-row with the period totals. The cash book and
// bank book screens are this same report pointed at an account flagged
// IsCashBook or IsBank.
func AccountBook(snap *Snapshot, accountID string, from, to time.Time, filter StatusFilter, mode DisplayMode, policy UnbalancedPolicy) (*domain.AccountBookReport, error) {
	acc, err := snap.Account(accountID)
	if err != nil {
		return nil, err
	}

	calc := NewCalculator(snap, WithStatusFilter(filter), WithUnbalancedPolicy(policy))
	openingBase, openingDoc, err := calc.openingBalances(accountID, from)
	if err != nil {
		return nil, err
	}
	running, err := calc.RunningBalances(accountID, from, to)
	if err != nil {
		return nil, err
	}

	report := &domain.AccountBookReport{
		AccountID:    acc.AccountID,
		AccountName:  acc.Name,
		CurrencyCode: acc.CurrencyCode,
		From:         from,
		To:           to,
		Opening:      openingBase,
		PeriodDebit:  decimal.Zero,
		PeriodCredit: decimal.Zero,
	}

	opening := domain.BookRow{
		Kind:            domain.BookRowOpening,
		TransactionDate: from,
		Description:     "Opening balance",
		BalanceBase:     openingBase,
	}
	if mode == DisplayBaseAndDocument {
		opening.BalanceDoc = openingDoc
		opening.CurrencyCode = acc.CurrencyCode
	}
	report.Rows = append(report.Rows, opening)

	closingBase := openingBase
	for _, rl := range running {
		row := domain.BookRow{
			Kind:            domain.BookRowLine,
			LineID:          rl.Line.LineID,
			GroupID:         rl.Group.GroupID,
			TransactionDate: rl.Group.TransactionDate,
			Description:     rl.Group.Description,
			DebitBase:       rl.Line.DebitBase,
			CreditBase:      rl.Line.CreditBase,
			BalanceBase:     rl.BalanceBase,
		}
		if mode == DisplayBaseAndDocument {
			row.DebitDoc = rl.Line.DebitDoc
			row.CreditDoc = rl.Line.CreditDoc
			row.BalanceDoc = rl.BalanceDoc
			row.CurrencyCode = rl.Line.CurrencyCode
			row.ExchangeRate = rl.Line.ExchangeRate
		}
		report.Rows = append(report.Rows, row)
		report.PeriodDebit = report.PeriodDebit.Add(rl.Line.DebitBase)
		report.PeriodCredit = report.PeriodCredit.Add(rl.Line.CreditBase)
		closingBase = rl.BalanceBase
	}

	closing := domain.BookRow{
		Kind:            domain.BookRowClosing,
		TransactionDate: to,
		Description:     "Closing balance",
		DebitBase:       report.PeriodDebit,
		CreditBase:      report.PeriodCredit,
		BalanceBase:     closingBase,
	}
	if mode == DisplayBaseAndDocument {
		closing.BalanceDoc = openingDoc
		if len(running) > 0 {
			closing.BalanceDoc = running[len(running)-1].BalanceDoc
		}
		closing.CurrencyCode = acc.CurrencyCode
	}
	report.Rows = append(report.Rows, closing)
	report.Closing = closingBase
	return report, nil
}
