package repositories

import (
	"context"
	"time"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
)

// PostingRepository defines persistence operations for posting groups and
// their lines. A group and its lines are written and deleted together.
type PostingRepository interface {
	// SavePostingGroup persists a group and its lines atomically. The store
	// assigns each line's Seq and writes it back into lines.
	SavePostingGroup(ctx context.Context, group domain.PostingGroup, lines []domain.Line) error

	// FindGroupByID retrieves a posting group by its ID.
	FindGroupByID(ctx context.Context, groupID string) (*domain.PostingGroup, error)

	// FindLinesByGroupID retrieves a group's lines in insertion order.
	FindLinesByGroupID(ctx context.Context, groupID string) ([]domain.Line, error)

	// UpdateGroupStatus transitions a group's status (e.g. voiding).
	UpdateGroupStatus(ctx context.Context, groupID string, status domain.GroupStatus, updatedByUserID string, updatedAt time.Time) error

	// ListGroups retrieves groups ordered by transaction date then creation,
	// with keyset pagination via nextToken.
	ListGroups(ctx context.Context, limit int, nextToken *string) ([]domain.PostingGroup, *string, error)
}

// PostingRepositoryWithTx combines posting persistence with transaction control.
type PostingRepositoryWithTx interface {
	PostingRepository
	TransactionManager
}
