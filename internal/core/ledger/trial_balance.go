package ledger

import (
	"time"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalance computes every active account's net position as of the end of
// asOf (lines dated on asOf count). Accounts with a zero net are omitted; a
// positive net lands in the debit column, a negative net in the credit column
// as its absolute value. With only balanced groups in the snapshot the two
// column totals are equal.
//
// The whole report is one pass over the line log, not one balance query per
// account.
func TrialBalance(snap *Snapshot, asOf time.Time, filter StatusFilter, policy UnbalancedPolicy) (*domain.TrialBalanceReport, error) {
	calc := NewCalculator(snap, WithStatusFilter(filter), WithUnbalancedPolicy(policy))
	cutoff := asOf.AddDate(0, 0, 1)

	nets := make(map[string]decimal.Decimal)
	for _, l := range snap.Lines() {
		g, err := snap.Group(l.GroupID)
		if err != nil {
			return nil, err
		}
		if !g.TransactionDate.Before(cutoff) {
			continue
		}
		include, err := calc.includeGroup(l.GroupID)
		if err != nil {
			return nil, err
		}
		if !include {
			continue
		}
		if _, err := snap.Account(l.AccountID); err != nil {
			return nil, tagLine(err, l.LineID)
		}
		nets[l.AccountID] = nets[l.AccountID].Add(l.DeltaBase())
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, acc := range snap.Accounts() {
		if !acc.IsActive {
			continue
		}
		net, ok := nets[acc.AccountID]
		if !ok || net.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			AccountCode: acc.Code,
			AccountName: acc.Name,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if net.IsPositive() {
			row.Debit = net
			report.TotalDebit = report.TotalDebit.Add(net)
		} else {
			row.Credit = net.Abs()
			report.TotalCredit = report.TotalCredit.Add(net.Abs())
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}
