package repositories

import (
	"context"
	"time"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
)

// SnapshotFilter bounds a snapshot fetch. Reports need every line up to and
// including Through for opening balances, so there is deliberately no lower
// date bound. MaxLines caps the fetch; a report over a larger log must be
// narrowed by the caller rather than silently truncated.
type SnapshotFilter struct {
	Through  time.Time
	Statuses []domain.GroupStatus
	TypeTags []string // empty means all
	MaxLines int      // zero means the repository default
}

// LedgerSnapshot is the raw batch a snapshot fetch returns. The engine builds
// its indexed view from these slices.
type LedgerSnapshot struct {
	Currencies []domain.Currency
	Accounts   []domain.Account
	Groups     []domain.PostingGroup
	Lines      []domain.Line
}

// SnapshotRepository fetches a read-only snapshot of the ledger in one batch:
// one query for groups and lines, one for accounts, one for currencies. Report
// computations never query the store themselves.
type SnapshotRepository interface {
	FetchSnapshot(ctx context.Context, filter SnapshotFilter) (*LedgerSnapshot, error)
}
