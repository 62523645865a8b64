package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	portsrepo "github.com/dafatir/dafatir_backend/internal/core/ports/repositories"
	"github.com/dafatir/dafatir_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPostingRepository struct {
	BaseRepository
}

// newPgxPostingRepository creates a new repository for posting group and line data.
func newPgxPostingRepository(pool *pgxpool.Pool) portsrepo.PostingRepositoryWithTx {
	return &PgxPostingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PostingRepositoryWithTx = (*PgxPostingRepository)(nil)

const groupColumns = `group_id, transaction_date, status, description, type_tag, created_at, created_by, last_updated_at, last_updated_by`

// lineColumns deliberately includes seq even though it is database-assigned;
// reads need it for deterministic replay order.
const lineColumns = `line_id, group_id, account_id, debit_base, credit_base, debit_doc, credit_doc, currency_code, exchange_rate, seq, notes, created_at, created_by, last_updated_at, last_updated_by`

// SavePostingGroup persists a group and its lines atomically. Line seq values
// are assigned by the database sequence in insertion order, which gives a
// stable global tie-break for lines sharing a transaction date; the generated
// values are written back into lines so callers return what a later read sees.
func (r *PgxPostingRepository) SavePostingGroup(ctx context.Context, group domain.PostingGroup, lines []domain.Line) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction commits

	groupQuery := `
		INSERT INTO posting_groups (` + groupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, groupQuery,
		group.GroupID,
		group.TransactionDate,
		string(group.Status),
		group.Description,
		group.TypeTag,
		group.CreatedAt,
		group.CreatedBy,
		group.LastUpdatedAt,
		group.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: posting group with ID %s already exists", apperrors.ErrDuplicate, group.GroupID)
		}
		return fmt.Errorf("failed to insert posting group %s: %w", group.GroupID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO posting_lines (line_id, group_id, account_id, debit_base, credit_base, debit_doc, credit_doc, currency_code, exchange_rate, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING seq;
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.GroupID,
			line.AccountID,
			line.DebitBase,
			line.CreditBase,
			line.DebitDoc,
			line.CreditDoc,
			line.CurrencyCode,
			line.ExchangeRate,
			line.Notes,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range lines {
		if err := br.QueryRow().Scan(&lines[i].Seq); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert posting line %s: %w", lines[i].LineID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close posting line batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindGroupByID retrieves a posting group by its ID.
func (r *PgxPostingRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.PostingGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM posting_groups WHERE group_id = $1;`

	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posting group %s: %w", groupID, err)
	}
	defer rows.Close()

	group, err := pgx.CollectOneRow(rows, scanGroup)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find posting group by ID %s: %w", groupID, err)
	}
	return &group, nil
}

// FindLinesByGroupID retrieves a group's lines in insertion order.
func (r *PgxPostingRepository) FindLinesByGroupID(ctx context.Context, groupID string) ([]domain.Line, error) {
	query := `SELECT ` + lineColumns + ` FROM posting_lines WHERE group_id = $1 ORDER BY seq;`

	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for group %s: %w", groupID, err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, scanLine)
	if err != nil {
		return nil, fmt.Errorf("failed to collect line rows: %w", err)
	}
	return lines, nil
}

// UpdateGroupStatus transitions a group's status. The caller is responsible
// for validating the transition; this only guards against missing groups.
func (r *PgxPostingRepository) UpdateGroupStatus(ctx context.Context, groupID string, status domain.GroupStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE posting_groups
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE group_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, groupID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update status for group %s: %w", groupID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListGroups retrieves a page of posting groups ordered by transaction date
// then creation time, using token-based keyset pagination.
func (r *PgxPostingRepository) ListGroups(ctx context.Context, limit int, nextToken *string) ([]domain.PostingGroup, *string, error) {
	args := []interface{}{limit + 1} // Fetch one extra row to detect whether more pages exist
	query := `
		SELECT ` + groupColumns + `
		FROM posting_groups
	`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		query += ` WHERE (transaction_date, created_at) > ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}

	query += `
		ORDER BY transaction_date, created_at
		LIMIT $1;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query posting groups: %w", err)
	}
	defer rows.Close()

	groups, err := pgx.CollectRows(rows, scanGroup)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect posting group rows: %w", err)
	}

	var nextTokenVal *string
	if len(groups) > limit {
		groups = groups[:limit]
		last := groups[len(groups)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
	}

	return groups, nextTokenVal, nil
}

func scanGroup(row pgx.CollectableRow) (domain.PostingGroup, error) {
	var group domain.PostingGroup
	err := row.Scan(
		&group.GroupID,
		&group.TransactionDate,
		&group.Status,
		&group.Description,
		&group.TypeTag,
		&group.CreatedAt,
		&group.CreatedBy,
		&group.LastUpdatedAt,
		&group.LastUpdatedBy,
	)
	return group, err
}

func scanLine(row pgx.CollectableRow) (domain.Line, error) {
	var line domain.Line
	err := row.Scan(
		&line.LineID,
		&line.GroupID,
		&line.AccountID,
		&line.DebitBase,
		&line.CreditBase,
		&line.DebitDoc,
		&line.CreditDoc,
		&line.CurrencyCode,
		&line.ExchangeRate,
		&line.Seq,
		&line.Notes,
		&line.CreatedAt,
		&line.CreatedBy,
		&line.LastUpdatedAt,
		&line.LastUpdatedBy,
	)
	return line, err
}
