package pgsql

import (
	portsrepo "github.com/dafatir/dafatir_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	currencyRepo := newPgxCurrencyRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	postingRepo := newPgxPostingRepository(dbPool)
	snapshotRepo := newPgxSnapshotRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CurrencyRepo: currencyRepo,
		AccountRepo:  accountRepo,
		PostingRepo:  postingRepo,
		SnapshotRepo: snapshotRepo,
	}
}
