package services

import (
	"context"

	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
)

// DebtReaderSvc defines read operations for debt data
type DebtReaderSvc interface {
	// GetDebtByID retrieves a debt and its installments, verifying ownership.
	// Pending installments past their due date are reported as OVERDUE.
	GetDebtByID(ctx context.Context, userID string, debtID string) (*domain.Debt, []domain.Installment, error)

	// ListDebts retrieves the user's debts, optionally filtered by status.
	ListDebts(ctx context.Context, userID string, status *domain.DebtStatus) ([]domain.Debt, error)
}

// DebtWriterSvc defines write operations for debt data
type DebtWriterSvc interface {
	// CreateDebt persists a new debt. Installment debts get their schedule
	// generated up front: past periods PAID and exactly one PENDING.
	CreateDebt(ctx context.Context, userID string, req dto.CreateDebtRequest) (*domain.Debt, error)

	// UpdateDebt updates a debt's non-structural details.
	UpdateDebt(ctx context.Context, userID string, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error)

	// DeleteDebt removes a debt and its installments.
	DeleteDebt(ctx context.Context, userID string, debtID string) error
}

// DebtPaymentSvc defines the installment settlement operation
type DebtPaymentSvc interface {
	// PayInstallment settles the pending installment of a debt from an
	// account: the ledger entry, balance delta, installment state, debt
	// progress and the next pending installment are all written in one
	// transaction.
	PayInstallment(ctx context.Context, userID string, debtID string, req dto.PayInstallmentRequest) (*domain.Debt, error)
}

// DebtSvcFacade combines all debt-related service interfaces
// This is a facade for clients that need access to all operations
type DebtSvcFacade interface {
	DebtReaderSvc
	DebtWriterSvc
	DebtPaymentSvc
}
