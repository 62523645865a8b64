package ledger

import (
	"time"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Commission extracts the commission leg from three-line posting groups. For
// every posted group in the date range whose type tag is listed, the lines are
// partitioned into the commission line (the configured commission account),
// the customer line (a debit on any other account) and the supplier line (a
// credit on any other account). Groups lacking a customer or a commission line
// are simply not commission-bearing and are skipped.
//
// CustomerAmount is the customer leg's gross debit, not the supplier amount
// plus commission; in document mode it is the leg's document-currency debit.
func Commission(snap *Snapshot, from, to time.Time, typeTags []string, commissionAccountID string, mode DisplayMode, policy UnbalancedPolicy) (*domain.CommissionReport, error) {
	tagged := make(map[string]struct{}, len(typeTags))
	for _, t := range typeTags {
		tagged[t] = struct{}{}
	}

	calc := NewCalculator(snap, WithStatusFilter(NewStatusFilter(domain.Posted)), WithUnbalancedPolicy(policy))

	report := &domain.CommissionReport{
		From:            from,
		To:              to,
		Rows:            []domain.CommissionRow{},
		TotalCommission: decimal.Zero,
	}

	// Collect group IDs in replay order so the report ordering matches the
	// running-balance ordering of the same log.
	seen := make(map[string]struct{})
	var groupIDs []string
	for _, l := range snap.Lines() {
		if _, ok := seen[l.GroupID]; ok {
			continue
		}
		seen[l.GroupID] = struct{}{}
		groupIDs = append(groupIDs, l.GroupID)
	}

	for _, groupID := range groupIDs {
		g, err := snap.Group(groupID)
		if err != nil {
			return nil, err
		}
		if g.TransactionDate.Before(from) || g.TransactionDate.After(to) {
			continue
		}
		if _, ok := tagged[g.TypeTag]; !ok {
			continue
		}
		include, err := calc.includeGroup(groupID)
		if err != nil {
			return nil, err
		}
		if !include {
			continue
		}

		var commissionLine, customerLine, supplierLine *domain.Line
		lines := snap.GroupLines(groupID)
		for i := range lines {
			l := lines[i]
			switch {
			case l.AccountID == commissionAccountID:
				if commissionLine == nil {
					commissionLine = &l
				}
			case l.DebitBase.IsPositive():
				if customerLine == nil {
					customerLine = &l
				}
			case l.CreditBase.IsPositive():
				if supplierLine == nil {
					supplierLine = &l
				}
			}
		}
		// Not a commission-bearing transaction; exclude, don't error.
		if commissionLine == nil || customerLine == nil {
			continue
		}

		commission := commissionLine.DebitBase
		if commission.IsZero() {
			commission = commissionLine.CreditBase
		}
		customerAmount := customerLine.DebitBase
		if mode == DisplayBaseAndDocument {
			customerAmount = customerLine.DebitDoc
		}

		row := domain.CommissionRow{
			GroupID:           g.GroupID,
			TransactionDate:   g.TransactionDate,
			Description:       g.Description,
			CustomerAccountID: customerLine.AccountID,
			CustomerAmount:    customerAmount,
			SupplierAmount:    decimal.Zero,
			Commission:        commission.Abs(),
		}
		if supplierLine != nil {
			row.SupplierAccountID = supplierLine.AccountID
			row.SupplierAmount = supplierLine.CreditBase
		}
		report.Rows = append(report.Rows, row)
		report.TotalCommission = report.TotalCommission.Add(row.Commission)
	}
	return report, nil
}
