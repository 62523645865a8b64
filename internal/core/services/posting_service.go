package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/dafatir/dafatir_backend/internal/core/ledger"
	portsrepo "github.com/dafatir/dafatir_backend/internal/core/ports/repositories"
	portssvc "github.com/dafatir/dafatir_backend/internal/core/ports/services"
	"github.com/dafatir/dafatir_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Validation sentinels wrap apperrors.ErrValidation so handlers can map all
// of them to a 400 with a single errors.Is check.
var (
	ErrGroupMinEntries = fmt.Errorf("%w: posting group must have at least two lines", apperrors.ErrValidation)
	ErrLineAmbiguous   = fmt.Errorf("%w: line must carry exactly one of debit and credit", apperrors.ErrValidation)
	ErrAccountInactive = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrGroupNotPosted  = fmt.Errorf("%w: only posted groups can be voided", apperrors.ErrValidation)
)

// postingService provides the write side of the ledger: validated, balanced
// posting groups entered through the forms.
type postingService struct {
	BaseService
	postingRepo  portsrepo.PostingRepositoryWithTx
	accountRepo  portsrepo.AccountRepository
	currencyRepo portsrepo.CurrencyRepository
}

// NewPostingService creates a new posting service.
func NewPostingService(postingRepo portsrepo.PostingRepositoryWithTx, accountRepo portsrepo.AccountRepository, currencyRepo portsrepo.CurrencyRepository) portssvc.PostingSvcFacade {
	return &postingService{
		postingRepo:  postingRepo,
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// CreatePostingGroup validates the request, converts each line's document
// amount to the base currency at the current table rate, snapshots that rate
// onto the line, checks the debit=credit invariant, and persists group and
// lines atomically.
func (s *postingService) CreatePostingGroup(ctx context.Context, req dto.CreatePostingGroupRequest) (*domain.PostingGroup, []domain.Line, error) {
	if len(req.Lines) < 2 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrGroupMinEntries, len(req.Lines))
	}

	transactionDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}

	status := domain.Posted
	if req.Status != "" {
		status = domain.GroupStatus(req.Status)
	}

	// Batch-fetch the referenced accounts, then their currencies.
	accountIDs := make([]string, 0, len(req.Lines))
	for _, lr := range req.Lines {
		accountIDs = append(accountIDs, lr.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	now := time.Now().UTC()
	groupID := uuid.NewString()

	lines := make([]domain.Line, 0, len(req.Lines))
	debits := decimal.Zero
	credits := decimal.Zero
	for i, lr := range req.Lines {
		account, ok := accounts[lr.AccountID]
		if !ok {
			return nil, nil, &apperrors.MissingReferenceError{Kind: "account", ID: lr.AccountID}
		}
		if !account.IsActive {
			return nil, nil, fmt.Errorf("%w: %s", ErrAccountInactive, lr.AccountID)
		}
		if lr.Debit.IsNegative() || lr.Credit.IsNegative() {
			return nil, nil, fmt.Errorf("%w: amounts must be non-negative", apperrors.ErrValidation)
		}
		if lr.Debit.IsPositive() == lr.Credit.IsPositive() {
			return nil, nil, fmt.Errorf("%w: line %d", ErrLineAmbiguous, i)
		}

		currency, err := s.currencyRepo.FindCurrencyByCode(ctx, account.CurrencyCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil, &apperrors.MissingReferenceError{Kind: "currency", ID: account.CurrencyCode}
			}
			return nil, nil, fmt.Errorf("failed to fetch currency %s: %w", account.CurrencyCode, err)
		}

		debitBase, err := ledger.ToBase(lr.Debit, *currency)
		if err != nil {
			return nil, nil, err
		}
		creditBase, err := ledger.ToBase(lr.Credit, *currency)
		if err != nil {
			return nil, nil, err
		}

		line := domain.Line{
			LineID:       uuid.NewString(),
			GroupID:      groupID,
			AccountID:    lr.AccountID,
			DebitBase:    debitBase,
			CreditBase:   creditBase,
			DebitDoc:     lr.Debit,
			CreditDoc:    lr.Credit,
			CurrencyCode: currency.CurrencyCode,
			ExchangeRate: currency.Rate,
			Notes:        lr.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     req.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: req.UserID,
			},
		}
		lines = append(lines, line)
		debits = debits.Add(debitBase)
		credits = credits.Add(creditBase)
	}

	if imbalance := debits.Sub(credits); imbalance.Abs().GreaterThan(ledger.Tolerance) {
		return nil, nil, &apperrors.UnbalancedGroupError{GroupID: groupID, Imbalance: imbalance}
	}

	group := domain.PostingGroup{
		GroupID:         groupID,
		TransactionDate: transactionDate,
		Status:          status,
		Description:     req.Description,
		TypeTag:         req.TypeTag,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: req.UserID,
		},
	}

	if err := s.postingRepo.SavePostingGroup(ctx, group, lines); err != nil {
		s.LogError(ctx, err, "Failed to save posting group", slog.String("group_id", groupID))
		return nil, nil, fmt.Errorf("failed to save posting group: %w", err)
	}

	s.LogInfo(ctx, "Posting group created",
		slog.String("group_id", groupID),
		slog.Int("lines", len(lines)),
		slog.String("status", string(status)))
	return &group, lines, nil
}

// GetPostingGroup retrieves a group and its lines.
func (s *postingService) GetPostingGroup(ctx context.Context, groupID string) (*domain.PostingGroup, []domain.Line, error) {
	group, err := s.postingRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find posting group %s: %w", groupID, err)
	}
	lines, err := s.postingRepo.FindLinesByGroupID(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find lines for group %s: %w", groupID, err)
	}
	return group, lines, nil
}

// VoidPostingGroup transitions a posted group to VOID. The group and its
// lines stay in the log; reports filter them out by status.
func (s *postingService) VoidPostingGroup(ctx context.Context, groupID string, userID string) error {
	group, err := s.postingRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to find posting group %s: %w", groupID, err)
	}
	if group.Status != domain.Posted {
		return fmt.Errorf("%w: group %s is %s", ErrGroupNotPosted, groupID, group.Status)
	}

	if err := s.postingRepo.UpdateGroupStatus(ctx, groupID, domain.Void, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to void posting group", slog.String("group_id", groupID))
		return fmt.Errorf("failed to void posting group %s: %w", groupID, err)
	}

	s.LogInfo(ctx, "Posting group voided", slog.String("group_id", groupID))
	return nil
}

// ListPostingGroups pages through groups in transaction date order.
func (s *postingService) ListPostingGroups(ctx context.Context, limit int, nextToken *string) ([]domain.PostingGroup, *string, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	groups, token, err := s.postingRepo.ListGroups(ctx, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list posting groups: %w", err)
	}
	return groups, token, nil
}
