package pgsql

import (
	"context"
	"fmt"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	portsrepo "github.com/dafatir/dafatir_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultMaxLines bounds a snapshot fetch when the caller does not set a cap.
const defaultMaxLines = 500_000

type PgxSnapshotRepository struct {
	BaseRepository
}

// newPgxSnapshotRepository creates a new repository for ledger snapshot reads.
func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepository {
	return &PgxSnapshotRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SnapshotRepository = (*PgxSnapshotRepository)(nil)

// FetchSnapshot loads everything a report computation needs in one round of
// queries: the currency table, the account table, and the matching groups
// with their lines. There is no per-account or per-group querying; the
// computation happens in memory against this batch.
func (r *PgxSnapshotRepository) FetchSnapshot(ctx context.Context, filter portsrepo.SnapshotFilter) (*portsrepo.LedgerSnapshot, error) {
	maxLines := filter.MaxLines
	if maxLines <= 0 {
		maxLines = defaultMaxLines
	}

	statuses := make([]string, 0, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses = append(statuses, string(s))
	}
	if len(statuses) == 0 {
		statuses = []string{string(domain.Draft), string(domain.Posted), string(domain.Void)}
	}

	currencies, err := r.fetchCurrencies(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := r.fetchAccounts(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := r.fetchGroups(ctx, filter, statuses)
	if err != nil {
		return nil, err
	}

	// Fetch one line past the cap so a snapshot of exactly maxLines still loads.
	lines, err := r.fetchLines(ctx, filter, statuses, maxLines+1)
	if err != nil {
		return nil, err
	}
	if err := checkLineCap(len(lines), maxLines); err != nil {
		return nil, err
	}

	return &portsrepo.LedgerSnapshot{
		Currencies: currencies,
		Accounts:   accounts,
		Groups:     groups,
		Lines:      lines,
	}, nil
}

// checkLineCap rejects a snapshot fetch that came back with more lines than
// the cap. Exactly maxLines is still a valid snapshot.
func checkLineCap(fetched, maxLines int) error {
	if fetched > maxLines {
		return fmt.Errorf("%w: snapshot exceeds %d lines, narrow the report window", apperrors.ErrValidation, maxLines)
	}
	return nil
}

func (r *PgxSnapshotRepository) fetchCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT currency_code, symbol, name, rate, is_base, direction, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot currencies: %w", err)
	}
	defer rows.Close()

	currencies, err := pgx.CollectRows(rows, scanCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to collect snapshot currency rows: %w", err)
	}
	return currencies, nil
}

func (r *PgxSnapshotRepository) fetchAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := pgx.CollectRows(rows, scanAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to collect snapshot account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxSnapshotRepository) fetchGroups(ctx context.Context, filter portsrepo.SnapshotFilter, statuses []string) ([]domain.PostingGroup, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM posting_groups
		WHERE transaction_date <= $1
		  AND status = ANY($2)
	`
	args := []interface{}{filter.Through, statuses}
	if len(filter.TypeTags) > 0 {
		query += ` AND type_tag = ANY($3)`
		args = append(args, filter.TypeTags)
	}
	query += ` ORDER BY transaction_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot groups: %w", err)
	}
	defer rows.Close()

	groups, err := pgx.CollectRows(rows, scanGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to collect snapshot group rows: %w", err)
	}
	return groups, nil
}

func (r *PgxSnapshotRepository) fetchLines(ctx context.Context, filter portsrepo.SnapshotFilter, statuses []string, maxLines int) ([]domain.Line, error) {
	query := `
		SELECT l.line_id, l.group_id, l.account_id, l.debit_base, l.credit_base, l.debit_doc, l.credit_doc, l.currency_code, l.exchange_rate, l.seq, l.notes, l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM posting_lines l
		JOIN posting_groups g ON g.group_id = l.group_id
		WHERE g.transaction_date <= $1
		  AND g.status = ANY($2)
	`
	args := []interface{}{filter.Through, statuses}
	argN := 3
	if len(filter.TypeTags) > 0 {
		query += fmt.Sprintf(` AND g.type_tag = ANY($%d)`, argN)
		args = append(args, filter.TypeTags)
		argN++
	}
	query += fmt.Sprintf(` ORDER BY l.seq LIMIT $%d;`, argN)
	args = append(args, maxLines)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot lines: %w", err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, scanLine)
	if err != nil {
		return nil, fmt.Errorf("failed to collect snapshot line rows: %w", err)
	}
	return lines, nil
}
