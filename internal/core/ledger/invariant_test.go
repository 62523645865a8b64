package ledger_test

import (
	"testing"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/dafatir/dafatir_backend/internal/core/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckGroup_BalancedGroupPasses(t *testing.T) {
	groups := []domain.PostingGroup{group("g1", date(2024, 1, 5), domain.Posted, "", "cash sale")}
	lines := []domain.Line{
		usdLine("l1", "g1", "acc-cash", "100", "0", 1),
		usdLine("l2", "g1", "acc-sales", "0", "100", 2),
	}
	snap := newTestSnapshot(t, groups, lines)

	assert.NoError(t, snap.CheckGroup("g1"))
}

func TestCheckGroup_UnbalancedGroupReportsMagnitude(t *testing.T) {
	groups := []domain.PostingGroup{group("g1", date(2024, 1, 5), domain.Posted, "", "")}
	lines := []domain.Line{
		usdLine("l1", "g1", "acc-cash", "100", "0", 1),
		usdLine("l2", "g1", "acc-sales", "0", "99", 2),
	}
	snap := newTestSnapshot(t, groups, lines)

	err := snap.CheckGroup("g1")

	var unbalanced *apperrors.UnbalancedGroupError
	require.ErrorAs(t, err, &unbalanced)
	assert.Equal(t, "g1", unbalanced.GroupID)
	assert.True(t, dec("1.00").Equal(unbalanced.Imbalance), "imbalance %s", unbalanced.Imbalance)
}

func TestCheckGroup_ToleranceAdmitsOneMinorUnit(t *testing.T) {
	groups := []domain.PostingGroup{group("g1", date(2024, 1, 5), domain.Posted, "", "")}
	lines := []domain.Line{
		usdLine("l1", "g1", "acc-cash", "100.00", "0", 1),
		usdLine("l2", "g1", "acc-sales", "0", "99.99", 2),
	}
	snap := newTestSnapshot(t, groups, lines)

	assert.NoError(t, snap.CheckGroup("g1"))
}

func TestCheckGroup_SingleLineGroupRejected(t *testing.T) {
	groups := []domain.PostingGroup{group("g1", date(2024, 1, 5), domain.Posted, "", "")}
	lines := []domain.Line{usdLine("l1", "g1", "acc-cash", "0", "0", 1)}
	snap := newTestSnapshot(t, groups, lines)

	err := snap.CheckGroup("g1")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCheckGroup_DoubleSidedLineRejected(t *testing.T) {
	groups := []domain.PostingGroup{group("g1", date(2024, 1, 5), domain.Posted, "", "")}
	bad := usdLine("l1", "g1", "acc-cash", "100", "0", 1)
	bad.CreditBase = dec("5")
	lines := []domain.Line{
		bad,
		usdLine("l2", "g1", "acc-sales", "0", "95", 2),
	}
	snap := newTestSnapshot(t, groups, lines)

	err := snap.CheckGroup("g1")
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "l1")
}

func TestCheckGroup_BaseDocMismatchRejected(t *testing.T) {
	groups := []domain.PostingGroup{group("g1", date(2024, 1, 5), domain.Posted, "", "")}
	tampered := aedLine("l1", "g1", "acc-aed", "100", "0", "3.67", 1)
	tampered.DebitBase = dec("400") // edited out of band, should be 367
	lines := []domain.Line{
		tampered,
		usdLine("l2", "g1", "acc-sales", "0", "400", 2),
	}
	snap := newTestSnapshot(t, groups, lines)

	err := snap.CheckGroup("g1")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCheckGroup_MissingCurrencyIsSurfacedNotDefaulted(t *testing.T) {
	groups := []domain.PostingGroup{group("g1", date(2024, 1, 5), domain.Posted, "", "")}
	orphan := usdLine("l1", "g1", "acc-cash", "100", "0", 1)
	orphan.CurrencyCode = "ZZZ"
	lines := []domain.Line{
		orphan,
		usdLine("l2", "g1", "acc-sales", "0", "100", 2),
	}
	snap := newTestSnapshot(t, groups, lines)

	err := snap.CheckGroup("g1")

	var missing *apperrors.MissingReferenceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "currency", missing.Kind)
	assert.Equal(t, "ZZZ", missing.ID)
	assert.Equal(t, "l1", missing.LineID)
}

func TestCheckGroup_MissingAccountIsSurfaced(t *testing.T) {
	groups := []domain.PostingGroup{group("g1", date(2024, 1, 5), domain.Posted, "", "")}
	orphan := usdLine("l1", "g1", "acc-gone", "100", "0", 1)
	lines := []domain.Line{
		orphan,
		usdLine("l2", "g1", "acc-sales", "0", "100", 2),
	}
	snap := newTestSnapshot(t, groups, lines)

	err := snap.CheckGroup("g1")

	var missing *apperrors.MissingReferenceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "account", missing.Kind)
}

func TestNewSnapshot_RejectsTwoBaseCurrencies(t *testing.T) {
	currencies := []domain.Currency{
		{CurrencyCode: "USD", Rate: dec("1"), IsBase: true, Direction: domain.ConvertNone},
		{CurrencyCode: "EUR", Rate: dec("1"), IsBase: true, Direction: domain.ConvertNone},
	}

	_, err := ledger.NewSnapshot(currencies, nil, nil, nil)

	var confErr *apperrors.ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

func TestNewSnapshot_RejectsLineWithUnknownGroup(t *testing.T) {
	lines := []domain.Line{usdLine("l1", "g-gone", "acc-cash", "1", "0", 1)}

	_, err := ledger.NewSnapshot(testCurrencies(), testAccounts(), nil, lines)

	var missing *apperrors.MissingReferenceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "posting group", missing.Kind)
}
