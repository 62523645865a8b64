package ledger

import (
	"errors"
	"fmt"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// tagLine attaches the offending line ID to a missing-reference error.
func tagLine(err error, lineID string) error {
	var missing *apperrors.MissingReferenceError
	if errors.As(err, &missing) {
		return &apperrors.MissingReferenceError{Kind: missing.Kind, ID: missing.ID, LineID: lineID}
	}
	return err
}

// Tolerance is the absolute amount by which a posting group's debit and credit
// totals may diverge: one minor currency unit.
var Tolerance = decimal.New(1, -2)

// UnbalancedPolicy tells a computation what to do with a posting group that
// fails the debit=credit invariant. The engine never auto-corrects; the caller
// chooses between aborting the report and excluding the group from it.
type UnbalancedPolicy int

const (
	// FailOnUnbalanced aborts the computation with an UnbalancedGroupError.
	FailOnUnbalanced UnbalancedPolicy = iota
	// SkipUnbalanced excludes the offending group's lines from the computation.
	SkipUnbalanced
)

// CheckGroup verifies a posting group's invariants: at least two lines, per
// line at most one of (debitBase, creditBase) and at most one of (debitDoc,
// creditDoc) nonzero and none negative, each line's base delta consistent with
// its converted document delta under the stored exchange rate, and the group's
// debit total equal to its credit total within Tolerance.
//
// Reports run this on every group they include, not only at write time,
// because stored data may have been altered out of band.
func (s *Snapshot) CheckGroup(groupID string) error {
	lines := s.linesByGroup[groupID]
	if _, ok := s.groups[groupID]; !ok {
		return &apperrors.MissingReferenceError{Kind: "posting group", ID: groupID}
	}
	if len(lines) < 2 {
		return fmt.Errorf("%w: posting group %s has %d line(s), need at least 2", apperrors.ErrValidation, groupID, len(lines))
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, l := range lines {
		if err := s.checkLine(l); err != nil {
			return err
		}
		debits = debits.Add(l.DebitBase)
		credits = credits.Add(l.CreditBase)
	}

	if imbalance := debits.Sub(credits); imbalance.Abs().GreaterThan(Tolerance) {
		return &apperrors.UnbalancedGroupError{GroupID: groupID, Imbalance: imbalance}
	}
	return nil
}

func (s *Snapshot) checkLine(l domain.Line) error {
	if l.DebitBase.IsNegative() || l.CreditBase.IsNegative() || l.DebitDoc.IsNegative() || l.CreditDoc.IsNegative() {
		return fmt.Errorf("%w: line %s carries a negative amount", apperrors.ErrValidation, l.LineID)
	}
	if !l.DebitBase.IsZero() && !l.CreditBase.IsZero() {
		return fmt.Errorf("%w: line %s has both a base debit and a base credit", apperrors.ErrValidation, l.LineID)
	}
	if !l.DebitDoc.IsZero() && !l.CreditDoc.IsZero() {
		return fmt.Errorf("%w: line %s has both a document debit and a document credit", apperrors.ErrValidation, l.LineID)
	}

	currency, err := s.Currency(l.CurrencyCode)
	if err != nil {
		return tagLine(err, l.LineID)
	}
	if _, err := s.Account(l.AccountID); err != nil {
		return tagLine(err, l.LineID)
	}

	// The stored base delta must match the document delta converted at the
	// line's snapshotted rate. Anything else means the row was edited out of
	// band after posting.
	converted, err := ToBaseAtRate(l.DeltaDoc(), currency, l.ExchangeRate)
	if err != nil {
		return err
	}
	if l.DeltaBase().Sub(converted).Abs().GreaterThan(Tolerance) {
		return fmt.Errorf("%w: line %s base delta %s does not match converted document delta %s",
			apperrors.ErrValidation, l.LineID, l.DeltaBase().String(), converted.String())
	}
	return nil
}
