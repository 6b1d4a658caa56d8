package services

import (
	portsrepo "github.com/tvhoang/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tvhoang/wallet_ledger_app/internal/core/ports/services"
	"github.com/tvhoang/wallet_ledger_app/internal/platform/clock"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, clk clock.Clock) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, repos.EntryRepo, clk)
	container.Ledger = NewLedgerService(repos.EntryRepo, repos.AccountRepo, repos.CategoryRepo, clk)
	container.Debt = NewDebtService(repos.DebtRepo, repos.EntryRepo, repos.AccountRepo, clk)
	container.Category = NewCategoryService(repos.CategoryRepo, clk)
	container.User = NewUserService(repos.UserRepo, repos.AccountRepo, clk)
	container.Analytics = NewAnalyticsService(repos.AnalyticsRepo, repos.AccountRepo, repos.DebtRepo, repos.UserRepo)

	return container
}
