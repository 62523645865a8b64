package services

import (
	"context"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/dafatir/dafatir_backend/internal/dto"
)

// PostingSvcFacade defines operations on posting groups: the write side the
// entry forms talk to.
type PostingSvcFacade interface {
	// CreatePostingGroup validates and persists a balanced group of lines,
	// converting document amounts to the base currency and snapshotting each
	// line's exchange rate.
	CreatePostingGroup(ctx context.Context, req dto.CreatePostingGroupRequest) (*domain.PostingGroup, []domain.Line, error)

	// GetPostingGroup retrieves a group and its lines.
	GetPostingGroup(ctx context.Context, groupID string) (*domain.PostingGroup, []domain.Line, error)

	// VoidPostingGroup transitions a posted group to VOID. Voided groups stay
	// in the log but no report counts them.
	VoidPostingGroup(ctx context.Context, groupID string, userID string) error

	// ListPostingGroups pages through groups in transaction date order.
	ListPostingGroups(ctx context.Context, limit int, nextToken *string) ([]domain.PostingGroup, *string, error)
}
