package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/dafatir/dafatir_backend/internal/core/ledger"
	portsrepo "github.com/dafatir/dafatir_backend/internal/core/ports/repositories"
	portssvc "github.com/dafatir/dafatir_backend/internal/core/ports/services"
)

// reportingService implements the report builders over batched snapshots. One
// fetch per report; the engine then works entirely in memory.
type reportingService struct {
	BaseService
	snapshotRepo portsrepo.SnapshotRepository
	policy       ledger.UnbalancedPolicy
	maxLines     int
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithUnbalancedPolicy sets how reports treat posting groups that fail the
// debit=credit invariant. The default aborts the report.
func WithUnbalancedPolicy(policy ledger.UnbalancedPolicy) ReportingServiceOption {
	return func(s *reportingService) {
		s.policy = policy
	}
}

// WithSnapshotMaxLines caps how many lines a single report fetch may load.
// Zero leaves the repository default in place.
func WithSnapshotMaxLines(maxLines int) ReportingServiceOption {
	return func(s *reportingService) {
		s.maxLines = maxLines
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(snapshotRepo portsrepo.SnapshotRepository, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		snapshotRepo: snapshotRepo,
		policy:       ledger.FailOnUnbalanced,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// snapshot fetches one batch through the cutoff and builds the engine's view.
func (s *reportingService) snapshot(ctx context.Context, through time.Time, filter ledger.StatusFilter) (*ledger.Snapshot, error) {
	statuses := make([]domain.GroupStatus, 0, len(filter))
	for st := range filter {
		statuses = append(statuses, st)
	}
	raw, err := s.snapshotRepo.FetchSnapshot(ctx, portsrepo.SnapshotFilter{
		Through:  through,
		Statuses: statuses,
		MaxLines: s.maxLines,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger snapshot: %w", err)
	}
	snap, err := ledger.NewSnapshot(raw.Currencies, raw.Accounts, raw.Groups, raw.Lines)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time, filter ledger.StatusFilter) (*domain.TrialBalanceReport, error) {
	snap, err := s.snapshot(ctx, asOf.AddDate(0, 0, 1), filter)
	if err != nil {
		return nil, err
	}

	report, err := ledger.TrialBalance(snap, asOf, filter, s.policy)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute trial balance", slog.String("asOf", asOf.Format("2006-01-02")))
		return nil, err
	}

	s.LogInfo(ctx, "Trial balance report generated",
		slog.String("asOf", asOf.Format("2006-01-02")),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// AccountBook generates the general ledger view of one account.
func (s *reportingService) AccountBook(ctx context.Context, accountID string, from, to time.Time, filter ledger.StatusFilter, mode ledger.DisplayMode) (*domain.AccountBookReport, error) {
	snap, err := s.snapshot(ctx, to.AddDate(0, 0, 1), filter)
	if err != nil {
		return nil, err
	}
	if _, err := snap.Account(accountID); err != nil {
		// The account ID came from the caller, not from stored lines.
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}

	report, err := ledger.AccountBook(snap, accountID, from, to, filter, mode, s.policy)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute account book",
			slog.String("account_id", accountID),
			slog.String("from", from.Format("2006-01-02")),
			slog.String("to", to.Format("2006-01-02")))
		return nil, err
	}

	s.LogInfo(ctx, "Account book generated",
		slog.String("account_id", accountID),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// CashBook is AccountBook restricted to cash book accounts, posted groups only.
func (s *reportingService) CashBook(ctx context.Context, accountID string, from, to time.Time, mode ledger.DisplayMode) (*domain.AccountBookReport, error) {
	return s.flaggedBook(ctx, accountID, from, to, mode, func(acc domain.Account) bool { return acc.IsCashBook }, "cash book")
}

// BankBook is AccountBook restricted to bank accounts, posted groups only.
func (s *reportingService) BankBook(ctx context.Context, accountID string, from, to time.Time, mode ledger.DisplayMode) (*domain.AccountBookReport, error) {
	return s.flaggedBook(ctx, accountID, from, to, mode, func(acc domain.Account) bool { return acc.IsBank }, "bank book")
}

func (s *reportingService) flaggedBook(ctx context.Context, accountID string, from, to time.Time, mode ledger.DisplayMode, eligible func(domain.Account) bool, bookName string) (*domain.AccountBookReport, error) {
	filter := ledger.NewStatusFilter(domain.Posted)
	snap, err := s.snapshot(ctx, to.AddDate(0, 0, 1), filter)
	if err != nil {
		return nil, err
	}

	account, err := snap.Account(accountID)
	if err != nil {
		// The account ID came from the caller, not from stored lines.
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	if !eligible(account) {
		return nil, fmt.Errorf("%w: account %s is not a %s account", apperrors.ErrValidation, accountID, bookName)
	}

	report, err := ledger.AccountBook(snap, accountID, from, to, filter, mode, s.policy)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute "+bookName, slog.String("account_id", accountID))
		return nil, err
	}
	return report, nil
}

// Commission extracts commission legs from tagged groups in the period.
func (s *reportingService) Commission(ctx context.Context, from, to time.Time, typeTags []string, commissionAccountID string, mode ledger.DisplayMode) (*domain.CommissionReport, error) {
	snap, err := s.snapshot(ctx, to.AddDate(0, 0, 1), ledger.NewStatusFilter(domain.Posted))
	if err != nil {
		return nil, err
	}

	report, err := ledger.Commission(snap, from, to, typeTags, commissionAccountID, mode, s.policy)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute commission report",
			slog.String("commission_account_id", commissionAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Commission report generated", slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// Zakat computes the zakat base and payable amount as of the end of asOf.
func (s *reportingService) Zakat(ctx context.Context, asOf time.Time) (*domain.ZakatReport, error) {
	snap, err := s.snapshot(ctx, asOf.AddDate(0, 0, 1), ledger.NewStatusFilter(domain.Posted))
	if err != nil {
		return nil, err
	}

	report, err := ledger.Zakat(snap, asOf, s.policy)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute zakat report", slog.String("asOf", asOf.Format("2006-01-02")))
		return nil, err
	}

	s.LogInfo(ctx, "Zakat report generated",
		slog.String("asOf", asOf.Format("2006-01-02")),
		slog.String("base", report.Base.String()))
	return report, nil
}
