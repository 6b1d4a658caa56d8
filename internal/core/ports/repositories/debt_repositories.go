package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
)

// DebtReader defines read operations for debt data
type DebtReader interface {
	// FindDebtByID retrieves a specific debt by its unique identifier.
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)

	// ListDebtsByUser retrieves all debts owned by a user, optionally
	// filtered by status.
	ListDebtsByUser(ctx context.Context, userID string, status *domain.DebtStatus) ([]domain.Debt, error)

	// FindInstallmentsByDebtID retrieves all installments of a debt ordered
	// by due date ascending.
	FindInstallmentsByDebtID(ctx context.Context, debtID string) ([]domain.Installment, error)

	// FindInstallmentByID retrieves a specific installment.
	FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error)

	// FindPendingInstallments retrieves the pending installment of every
	// ongoing debt owned by a user.
	FindPendingInstallments(ctx context.Context, userID string) ([]domain.Installment, error)
}

// DebtWriter defines write operations for debt data
type DebtWriter interface {
	// SaveDebtWithInstallments persists a debt and its generated installment
	// schedule within a single transaction.
	SaveDebtWithInstallments(ctx context.Context, debt domain.Debt, installments []domain.Installment) error

	// UpdateDebt updates an existing debt's details.
	UpdateDebt(ctx context.Context, debt domain.Debt) error

	// DeleteDebt removes a debt and all of its installments within a single
	// transaction.
	DeleteDebt(ctx context.Context, debtID string) error
}

// DebtTransactionSupport defines operations composing the installment payment
// transaction.
type DebtTransactionSupport interface {
	// UpdateDebtInTx updates a debt row within a given transaction.
	UpdateDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error

	// MarkInstallmentPaidInTx marks an installment PAID within a given
	// transaction, recording when and from which account it was settled.
	MarkInstallmentPaidInTx(ctx context.Context, tx pgx.Tx, installmentID string, settlingAccountID string, paidAt time.Time, userID string) error

	// InsertInstallmentInTx inserts a new installment row within a given
	// transaction.
	InsertInstallmentInTx(ctx context.Context, tx pgx.Tx, installment domain.Installment) error
}

// DebtRepositoryFacade combines all debt-related repository interfaces
// This is a facade for clients that need access to all operations
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
	DebtTransactionSupport
}

// DebtRepositoryWithTx extends DebtRepositoryFacade with transaction capabilities
type DebtRepositoryWithTx interface {
	DebtRepositoryFacade
	TransactionManager
}
