package ledger

import (
	"time"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ZakatRate is the statutory levy applied to the zakat base: 2.5%.
var ZakatRate = decimal.New(25, -3)

// Zakat sums the closing balances of every active zakat-eligible account as of
// the end of asOf and applies ZakatRate. Only posted groups count.
func Zakat(snap *Snapshot, asOf time.Time, policy UnbalancedPolicy) (*domain.ZakatReport, error) {
	calc := NewCalculator(snap, WithStatusFilter(NewStatusFilter(domain.Posted)), WithUnbalancedPolicy(policy))
	cutoff := asOf.AddDate(0, 0, 1)

	report := &domain.ZakatReport{
		AsOf: asOf,
		Rows: []domain.ZakatAccountRow{},
		Base: decimal.Zero,
	}
	for _, acc := range snap.Accounts() {
		if !acc.ZakatEligible || !acc.IsActive {
			continue
		}
		balance, err := calc.OpeningBalance(acc.AccountID, cutoff)
		if err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, domain.ZakatAccountRow{
			AccountID:   acc.AccountID,
			AccountName: acc.Name,
			Balance:     balance,
		})
		report.Base = report.Base.Add(balance)
	}
	report.Payable = report.Base.Mul(ZakatRate)
	return report, nil
}
