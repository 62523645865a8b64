package ledger_test

import (
	"testing"
	"time"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/dafatir/dafatir_backend/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Shared fixture data for the engine tests. USD is the base currency; AED
// converts by multiplying with 3.67 and JPY by dividing by 150.

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testCurrencies() []domain.Currency {
	return []domain.Currency{
		{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Rate: dec("1"), IsBase: true, Direction: domain.ConvertNone},
		{CurrencyCode: "AED", Symbol: "د.إ", Name: "UAE Dirham", Rate: dec("3.67"), Direction: domain.ConvertMultiply},
		{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Rate: dec("150"), Direction: domain.ConvertDivide},
	}
}

func testAccounts() []domain.Account {
	return []domain.Account{
		{AccountID: "acc-cash", Code: "1010", Name: "Cash on hand", CurrencyCode: "USD", IsCashBook: true, ZakatEligible: true, IsActive: true},
		{AccountID: "acc-bank", Code: "1020", Name: "Bank current", CurrencyCode: "USD", IsBank: true, ZakatEligible: true, IsActive: true},
		{AccountID: "acc-aed", Code: "1030", Name: "Dirham wallet", CurrencyCode: "AED", IsActive: true},
		{AccountID: "acc-sales", Code: "4010", Name: "Sales", CurrencyCode: "USD", IsActive: true},
		{AccountID: "acc-commission", Code: "4020", Name: "Commission income", CurrencyCode: "USD", IsActive: true},
		{AccountID: "acc-supplier", Code: "2010", Name: "Supplier payable", CurrencyCode: "USD", IsActive: true},
		{AccountID: "acc-dormant", Code: "9090", Name: "Dormant", CurrencyCode: "USD", IsActive: false},
	}
}

// group builds a posted group unless a status override is given.
func group(id string, day time.Time, status domain.GroupStatus, typeTag, description string) domain.PostingGroup {
	return domain.PostingGroup{
		GroupID:         id,
		TransactionDate: day,
		Status:          status,
		TypeTag:         typeTag,
		Description:     description,
	}
}

// usdLine builds a base-currency line; document amounts mirror base amounts.
func usdLine(lineID, groupID, accountID string, debit, credit string, seq int) domain.Line {
	return domain.Line{
		LineID:       lineID,
		GroupID:      groupID,
		AccountID:    accountID,
		DebitBase:    dec(debit),
		CreditBase:   dec(credit),
		DebitDoc:     dec(debit),
		CreditDoc:    dec(credit),
		CurrencyCode: "USD",
		ExchangeRate: dec("1"),
		Seq:          seq,
	}
}

// aedLine builds an AED line with base amounts converted at the given rate.
func aedLine(lineID, groupID, accountID string, debitDoc, creditDoc, rate string, seq int) domain.Line {
	r := dec(rate)
	return domain.Line{
		LineID:       lineID,
		GroupID:      groupID,
		AccountID:    accountID,
		DebitBase:    dec(debitDoc).Mul(r),
		CreditBase:   dec(creditDoc).Mul(r),
		DebitDoc:     dec(debitDoc),
		CreditDoc:    dec(creditDoc),
		CurrencyCode: "AED",
		ExchangeRate: r,
		Seq:          seq,
	}
}

func newTestSnapshot(t *testing.T, groups []domain.PostingGroup, lines []domain.Line) *ledger.Snapshot {
	t.Helper()
	snap, err := ledger.NewSnapshot(testCurrencies(), testAccounts(), groups, lines)
	require.NoError(t, err)
	return snap
}

func postedOnly() ledger.StatusFilter {
	return ledger.NewStatusFilter(domain.Posted)
}
