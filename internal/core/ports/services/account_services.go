package services

import (
	"context"

	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account, verifying ownership.
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts owned by the user.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account. Accounts referenced by entries are
	// refused.
	DeleteAccount(ctx context.Context, userID string, accountID string) error
}

// AccountSettlementSvc defines the credit card statement settlement operation
type AccountSettlementSvc interface {
	// SettleStatement settles a credit card's outstanding balance, either
	// paying it in full from another account or refinancing it for a fee.
	SettleStatement(ctx context.Context, userID string, accountID string, req dto.SettleStatementRequest) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountSettlementSvc
}
