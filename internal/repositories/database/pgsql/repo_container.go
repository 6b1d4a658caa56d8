package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/tvhoang/wallet_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := NewPgxAccountRepository(dbPool)
	entryRepo := NewPgxEntryRepository(dbPool, accountRepo)
	debtRepo := NewPgxDebtRepository(dbPool)
	categoryRepo := NewPgxCategoryRepository(dbPool)
	userRepo := NewPgxUserRepository(dbPool)
	analyticsRepo := NewPgxAnalyticsRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		EntryRepo:     entryRepo,
		DebtRepo:      debtRepo,
		CategoryRepo:  categoryRepo,
		UserRepo:      userRepo,
		AnalyticsRepo: analyticsRepo,
	}
}
