package ledger

import (
	"fmt"
	"sort"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
)

// Snapshot is an immutable in-memory view of the transaction log and its
// reference data, fetched in one batch by the caller. All engine computations
// run against a snapshot; the engine itself performs no I/O and keeps no state
// between calls, so concurrent computations over separate snapshots need no
// synchronization.
type Snapshot struct {
	currencies map[string]domain.Currency
	accounts   map[string]domain.Account
	groups     map[string]domain.PostingGroup
	base       domain.Currency

	// lines in replay order: ascending group transaction date, ties broken by
	// line insertion order (Seq). Running balances are only meaningful as a
	// deterministic replay of this ordering.
	lines        []domain.Line
	linesByGroup map[string][]domain.Line
}

// NewSnapshot builds a snapshot from batch-fetched records. It validates the
// currency table (exactly one base currency, base rate 1, direction NONE only
// on the base) and fixes the deterministic line ordering once, up front.
func NewSnapshot(currencies []domain.Currency, accounts []domain.Account, groups []domain.PostingGroup, lines []domain.Line) (*Snapshot, error) {
	s := &Snapshot{
		currencies:   make(map[string]domain.Currency, len(currencies)),
		accounts:     make(map[string]domain.Account, len(accounts)),
		groups:       make(map[string]domain.PostingGroup, len(groups)),
		linesByGroup: make(map[string][]domain.Line),
	}

	baseSeen := false
	for _, c := range currencies {
		if c.IsBase {
			if baseSeen {
				return nil, &apperrors.ConfigurationError{Detail: fmt.Sprintf("more than one base currency: %s and %s", s.base.CurrencyCode, c.CurrencyCode)}
			}
			baseSeen = true
			s.base = c
		} else if c.Direction == domain.ConvertNone {
			return nil, &apperrors.ConfigurationError{Detail: fmt.Sprintf("currency %s has no conversion direction but is not the base currency", c.CurrencyCode)}
		}
		s.currencies[c.CurrencyCode] = c
	}
	if len(currencies) > 0 && !baseSeen {
		return nil, &apperrors.ConfigurationError{Detail: "currency table has no base currency"}
	}

	for _, a := range accounts {
		s.accounts[a.AccountID] = a
	}
	for _, g := range groups {
		s.groups[g.GroupID] = g
	}

	s.lines = make([]domain.Line, len(lines))
	copy(s.lines, lines)
	for _, l := range s.lines {
		if _, ok := s.groups[l.GroupID]; !ok {
			return nil, &apperrors.MissingReferenceError{Kind: "posting group", ID: l.GroupID, LineID: l.LineID}
		}
	}
	sort.SliceStable(s.lines, func(i, j int) bool {
		gi := s.groups[s.lines[i].GroupID]
		gj := s.groups[s.lines[j].GroupID]
		if !gi.TransactionDate.Equal(gj.TransactionDate) {
			return gi.TransactionDate.Before(gj.TransactionDate)
		}
		return s.lines[i].Seq < s.lines[j].Seq
	})
	for _, l := range s.lines {
		s.linesByGroup[l.GroupID] = append(s.linesByGroup[l.GroupID], l)
	}

	return s, nil
}

// BaseCurrency returns the snapshot's base currency.
func (s *Snapshot) BaseCurrency() domain.Currency {
	return s.base
}

// Currency resolves a currency code or reports a missing reference.
func (s *Snapshot) Currency(code string) (domain.Currency, error) {
	c, ok := s.currencies[code]
	if !ok {
		return domain.Currency{}, &apperrors.MissingReferenceError{Kind: "currency", ID: code}
	}
	return c, nil
}

// Account resolves an account ID or reports a missing reference.
func (s *Snapshot) Account(accountID string) (domain.Account, error) {
	a, ok := s.accounts[accountID]
	if !ok {
		return domain.Account{}, &apperrors.MissingReferenceError{Kind: "account", ID: accountID}
	}
	return a, nil
}

// Group resolves a posting group ID or reports a missing reference.
func (s *Snapshot) Group(groupID string) (domain.PostingGroup, error) {
	g, ok := s.groups[groupID]
	if !ok {
		return domain.PostingGroup{}, &apperrors.MissingReferenceError{Kind: "posting group", ID: groupID}
	}
	return g, nil
}

// Accounts returns all accounts ordered by account code.
func (s *Snapshot) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out
}

// GroupLines returns a group's lines in replay order.
func (s *Snapshot) GroupLines(groupID string) []domain.Line {
	return s.linesByGroup[groupID]
}

// Lines returns every line in replay order.
func (s *Snapshot) Lines() []domain.Line {
	return s.lines
}
