package services

import (
	"github.com/dafatir/dafatir_backend/internal/core/ledger"
	portsrepo "github.com/dafatir/dafatir_backend/internal/core/ports/repositories"
	portssvc "github.com/dafatir/dafatir_backend/internal/core/ports/services"
	"github.com/dafatir/dafatir_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Account = NewAccountService(
		repos.AccountRepo,
		WithCurrencyRepository(repos.CurrencyRepo),
	)
	container.Posting = NewPostingService(repos.PostingRepo, repos.AccountRepo, repos.CurrencyRepo)

	policy := ledger.FailOnUnbalanced
	if cfg.SkipUnbalancedGroups {
		policy = ledger.SkipUnbalanced
	}
	container.Reporting = NewReportingService(repos.SnapshotRepo,
		WithUnbalancedPolicy(policy),
		WithSnapshotMaxLines(cfg.SnapshotMaxLines),
	)

	return container
}
