package ledger

import (
	"errors"
	"time"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatusFilter is the set of posting group statuses a computation counts.
// Reports in this application historically disagree on whether draft entries
// count toward balances, so the filter is an explicit per-call parameter and
// never a package default.
type StatusFilter map[domain.GroupStatus]struct{}

// NewStatusFilter builds a filter from the given statuses.
func NewStatusFilter(statuses ...domain.GroupStatus) StatusFilter {
	f := make(StatusFilter, len(statuses))
	for _, st := range statuses {
		f[st] = struct{}{}
	}
	return f
}

// Includes reports whether the filter admits the given status.
func (f StatusFilter) Includes(status domain.GroupStatus) bool {
	_, ok := f[status]
	return ok
}

// RunningLine is one step of a running balance replay: the line, its owning
// group, and the account balance after applying the line, in base and in the
// account's document currency.
type RunningLine struct {
	Line        domain.Line
	Group       domain.PostingGroup
	BalanceBase decimal.Decimal
	BalanceDoc  decimal.Decimal
}

// Calculator computes opening, running and closing balances over one
// snapshot. It is read-only and deterministic: recomputing over an unchanged
// snapshot reproduces identical results.
type Calculator struct {
	snap    *Snapshot
	filter  StatusFilter
	policy  UnbalancedPolicy
	checked map[string]bool // groupID -> passed invariant check
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithStatusFilter sets which posting group statuses count toward balances.
func WithStatusFilter(filter StatusFilter) CalculatorOption {
	return func(c *Calculator) { c.filter = filter }
}

// WithUnbalancedPolicy sets how unbalanced posting groups are handled.
func WithUnbalancedPolicy(policy UnbalancedPolicy) CalculatorOption {
	return func(c *Calculator) { c.policy = policy }
}

// NewCalculator creates a Calculator over the snapshot. By default only
// posted groups count and an unbalanced group aborts the computation.
func NewCalculator(snap *Snapshot, options ...CalculatorOption) *Calculator {
	c := &Calculator{
		snap:    snap,
		filter:  NewStatusFilter(domain.Posted),
		policy:  FailOnUnbalanced,
		checked: make(map[string]bool),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// includeGroup decides whether a group's lines take part in a computation,
// running the balance invariant check the first time each group is seen.
func (c *Calculator) includeGroup(groupID string) (bool, error) {
	g, err := c.snap.Group(groupID)
	if err != nil {
		return false, err
	}
	if !c.filter.Includes(g.Status) {
		return false, nil
	}
	if passed, seen := c.checked[groupID]; seen {
		return passed, nil
	}
	if err := c.snap.CheckGroup(groupID); err != nil {
		if c.policy == SkipUnbalanced && isGroupDefect(err) {
			c.checked[groupID] = false
			return false, nil
		}
		return false, err
	}
	c.checked[groupID] = true
	return true, nil
}

// OpeningBalance returns the account's net base-currency position over all
// counted lines dated strictly before asOf. An account with no matching lines
// has an opening balance of zero.
func (c *Calculator) OpeningBalance(accountID string, asOf time.Time) (decimal.Decimal, error) {
	base, _, err := c.openingBalances(accountID, asOf)
	return base, err
}

func (c *Calculator) openingBalances(accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	if _, err := c.snap.Account(accountID); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	base := decimal.Zero
	doc := decimal.Zero
	for _, l := range c.snap.Lines() {
		if l.AccountID != accountID {
			continue
		}
		g, err := c.snap.Group(l.GroupID)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		if !g.TransactionDate.Before(asOf) {
			continue
		}
		include, err := c.includeGroup(l.GroupID)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		if !include {
			continue
		}
		base = base.Add(l.DeltaBase())
		doc = doc.Add(l.DeltaDoc())
	}
	return base, doc, nil
}

// RunningBalances replays the account's counted lines dated within [from, to]
// in snapshot replay order (ascending transaction date, ties by insertion
// order), starting from the opening balance at from. Both the base-currency
// and document-currency running totals are carried on every step.
func (c *Calculator) RunningBalances(accountID string, from, to time.Time) ([]RunningLine, error) {
	openingBase, openingDoc, err := c.openingBalances(accountID, from)
	if err != nil {
		return nil, err
	}

	var out []RunningLine
	base := openingBase
	doc := openingDoc
	for _, l := range c.snap.Lines() {
		if l.AccountID != accountID {
			continue
		}
		g, err := c.snap.Group(l.GroupID)
		if err != nil {
			return nil, err
		}
		if g.TransactionDate.Before(from) || g.TransactionDate.After(to) {
			continue
		}
		include, err := c.includeGroup(l.GroupID)
		if err != nil {
			return nil, err
		}
		if !include {
			continue
		}
		base = base.Add(l.DeltaBase())
		doc = doc.Add(l.DeltaDoc())
		out = append(out, RunningLine{Line: l, Group: g, BalanceBase: base, BalanceDoc: doc})
	}
	return out, nil
}

// ClosingBalance is the balance after the last counted line in [from, to], or
// the opening balance unchanged when the range holds no lines.
func (c *Calculator) ClosingBalance(accountID string, from, to time.Time) (decimal.Decimal, error) {
	running, err := c.RunningBalances(accountID, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	if len(running) == 0 {
		return c.OpeningBalance(accountID, from)
	}
	return running[len(running)-1].BalanceBase, nil
}

// isGroupDefect reports whether an error is one the SkipUnbalanced policy may
// swallow: a broken debit=credit invariant. Missing references and bad
// currency configuration always abort regardless of policy.
func isGroupDefect(err error) bool {
	var unbalanced *apperrors.UnbalancedGroupError
	return errors.As(err, &unbalanced)
}
